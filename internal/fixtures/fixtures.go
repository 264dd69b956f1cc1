/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package fixtures builds protobuf message descriptors entirely in memory
// (no .proto files, no protoc) for use in package protarrow's tests. It
// mirrors the descriptor-driven construction core/protoloader uses against
// real .proto files, but the descriptors here are literal
// descriptorpb.FileDescriptorProto values.
package fixtures

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	_ "google.golang.org/protobuf/types/known/timestamppb"
	_ "google.golang.org/protobuf/types/known/wrapperspb"
)

// Set is the collection of message descriptors tests build requests
// against.
type Set struct {
	Leaf     protoreflect.MessageDescriptor // {label string, count int32}
	Scalars  protoreflect.MessageDescriptor // one field per supported primitive kind, plus an enum
	Wrapped  protoreflect.MessageDescriptor // {value google.protobuf.Int32Value}
	Temporal protoreflect.MessageDescriptor // {day Date, at Timestamp, clock TimeOfDay}
	Nested   protoreflect.MessageDescriptor // {leaf Leaf}
	Repeated protoreflect.MessageDescriptor // {values []int32, leaves []Leaf, days []Date}
	Mapped   protoreflect.MessageDescriptor // {counts map[string]int32, items map[string]Leaf}
}

func scalarField(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func msgField(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(num),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
	}
}

func repeatedScalarField(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:   typ.Enum(),
	}
}

func repeatedMsgField(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		Number:   proto.Int32(num),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
		TypeName: proto.String(typeName),
	}
}

// mapEntryType builds the synthetic "FooEntry" nested message protoc
// generates for a `map<string, V> foo` field.
func mapEntryType(name string, valueField *descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String(name),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			valueField,
		},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
}

// Build assembles the fixture descriptors, resolving their dependencies
// against a scratch registry seeded with the well-known wrapper and
// timestamp files (already present in protoregistry.GlobalFiles because
// this package blank-imports their packages) plus the fake google.type
// file. The main testdata file itself is not registered.
func Build() (*Set, error) {
	files := new(protoregistry.Files)
	for _, path := range []string{"google/protobuf/wrappers.proto", "google/protobuf/timestamp.proto"} {
		fd, err := protoregistry.GlobalFiles.FindFileByPath(path)
		if err != nil {
			return nil, fmt.Errorf("fixtures: locating %s: %w", path, err)
		}
		if err := files.RegisterFile(fd); err != nil {
			return nil, fmt.Errorf("fixtures: registering %s: %w", path, err)
		}
	}

	fakeTypeProto := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("protarrow/testdata/faketype.proto"),
		Package: proto.String("google.type"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Date"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("year", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("month", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("day", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				},
			},
			{
				Name: proto.String("TimeOfDay"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("hours", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("minutes", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("seconds", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					scalarField("nanos", 4, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				},
			},
		},
	}
	fakeTypeFD, err := protodesc.NewFile(fakeTypeProto, files)
	if err != nil {
		return nil, fmt.Errorf("fixtures: building faketype.proto: %w", err)
	}
	if err := files.RegisterFile(fakeTypeFD); err != nil {
		return nil, fmt.Errorf("fixtures: registering faketype.proto: %w", err)
	}

	leafType := &descriptorpb.DescriptorProto{
		Name: proto.String("Leaf"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("label", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("count", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
		},
	}
	scalarsType := &descriptorpb.DescriptorProto{
		Name: proto.String("Scalars"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("b", 1, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
			scalarField("i32", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			scalarField("i64", 3, descriptorpb.FieldDescriptorProto_TYPE_INT64),
			scalarField("u32", 4, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
			scalarField("u64", 5, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
			scalarField("f32", 6, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalarField("f64", 7, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
			scalarField("s", 8, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalarField("bs", 9, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
			{
				Name:     proto.String("status"),
				Number:   proto.Int32(10),
				Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
				Type:     descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum(),
				TypeName: proto.String(".protarrow.testdata.Status"),
			},
		},
	}
	wrappedType := &descriptorpb.DescriptorProto{
		Name: proto.String("Wrapped"),
		Field: []*descriptorpb.FieldDescriptorProto{
			msgField("value", 1, ".google.protobuf.Int32Value"),
		},
	}
	temporalType := &descriptorpb.DescriptorProto{
		Name: proto.String("Temporal"),
		Field: []*descriptorpb.FieldDescriptorProto{
			msgField("day", 1, ".google.type.Date"),
			msgField("at", 2, ".google.protobuf.Timestamp"),
			msgField("clock", 3, ".google.type.TimeOfDay"),
		},
	}
	nestedType := &descriptorpb.DescriptorProto{
		Name: proto.String("Nested"),
		Field: []*descriptorpb.FieldDescriptorProto{
			msgField("leaf", 1, ".protarrow.testdata.Leaf"),
		},
	}
	repeatedType := &descriptorpb.DescriptorProto{
		Name: proto.String("Repeated"),
		Field: []*descriptorpb.FieldDescriptorProto{
			repeatedScalarField("values", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			repeatedMsgField("leaves", 2, ".protarrow.testdata.Leaf"),
			repeatedMsgField("days", 3, ".google.type.Date"),
		},
	}
	mappedType := &descriptorpb.DescriptorProto{
		Name: proto.String("Mapped"),
		Field: []*descriptorpb.FieldDescriptorProto{
			repeatedMsgField("counts", 1, ".protarrow.testdata.Mapped.CountsEntry"),
			repeatedMsgField("items", 2, ".protarrow.testdata.Mapped.ItemsEntry"),
		},
		NestedType: []*descriptorpb.DescriptorProto{
			mapEntryType("CountsEntry", scalarField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32)),
			mapEntryType("ItemsEntry", msgField("value", 2, ".protarrow.testdata.Leaf")),
		},
	}

	mainProto := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("protarrow/testdata/testdata.proto"),
		Package: proto.String("protarrow.testdata"),
		Syntax:  proto.String("proto3"),
		Dependency: []string{
			"protarrow/testdata/faketype.proto",
			"google/protobuf/wrappers.proto",
			"google/protobuf/timestamp.proto",
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: proto.String("Status"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: proto.String("STATUS_UNSPECIFIED"), Number: proto.Int32(0)},
					{Name: proto.String("STATUS_ACTIVE"), Number: proto.Int32(1)},
					{Name: proto.String("STATUS_INACTIVE"), Number: proto.Int32(2)},
				},
			},
		},
		MessageType: []*descriptorpb.DescriptorProto{
			leafType, scalarsType, wrappedType, temporalType, nestedType, repeatedType, mappedType,
		},
	}
	mainFD, err := protodesc.NewFile(mainProto, files)
	if err != nil {
		return nil, fmt.Errorf("fixtures: building testdata.proto: %w", err)
	}

	msgs := mainFD.Messages()
	byName := func(name string) protoreflect.MessageDescriptor {
		return msgs.ByName(protoreflect.Name(name))
	}
	return &Set{
		Leaf:     byName("Leaf"),
		Scalars:  byName("Scalars"),
		Wrapped:  byName("Wrapped"),
		Temporal: byName("Temporal"),
		Nested:   byName("Nested"),
		Repeated: byName("Repeated"),
		Mapped:   byName("Mapped"),
	}, nil
}

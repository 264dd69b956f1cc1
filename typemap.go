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

package protarrow

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// fieldIsNullableAsStructChild reports the schema-level nullability of fd
// when fd is a child of a struct column, per spec.md §3's invariant table:
// singular sub-message and wrapper types (including temporal specials) are
// nullable; primitive scalars, enums, repeated fields and map fields are
// non-null at the column level.
func fieldIsNullableAsStructChild(fd protoreflect.FieldDescriptor) bool {
	if fd.IsMap() || fd.IsList() {
		return false
	}
	switch classifyLeaf(fd).kind {
	case leafSubMessage, leafWrapper, leafTemporal:
		return true
	default:
		return false
	}
}

// wrapperValueKind returns the protobuf kind of a well-known wrapper
// message's sole "value" field.
func wrapperValueKind(desc protoreflect.MessageDescriptor) (protoreflect.Kind, error) {
	fd := desc.Fields().ByName("value")
	if fd == nil {
		return 0, fmt.Errorf("%w: %s has no value field", ErrUnsupportedFieldKind, desc.FullName())
	}
	return fd.Kind(), nil
}

// elementArrowType resolves the Arrow type of a single element of fd,
// ignoring fd's own cardinality — this is the per-item type used both for
// singular fields and as the child type of list/map columns.
func elementArrowType(fd protoreflect.FieldDescriptor, cat leafCategory, cfg Config) (arrow.DataType, error) {
	switch cat.kind {
	case leafPrimitive:
		if !isSupportedPrimitive(fd.Kind()) {
			return nil, fmt.Errorf("%w: %s on field %s", ErrUnsupportedFieldKind, fd.Kind(), fd.FullName())
		}
		return primitiveArrowType(fd.Kind())
	case leafEnum:
		return enumArrowType(cfg)
	case leafWrapper:
		k, err := wrapperValueKind(fd.Message())
		if err != nil {
			return nil, err
		}
		return primitiveArrowType(k)
	case leafTemporal:
		switch cat.wellKnown {
		case wkDate:
			return arrow.FixedWidthTypes.Date32, nil
		case wkTimestamp:
			return timestampArrowType(cfg), nil
		case wkTimeOfDay:
			return timeOfDayArrowType(cfg), nil
		}
		return nil, fmt.Errorf("%w: unrecognized temporal special on %s", ErrUnsupportedFieldKind, fd.FullName())
	case leafSubMessage:
		return messageStructType(fd.Message(), cfg)
	default:
		return nil, fmt.Errorf("%w: field %s", ErrUnsupportedFieldKind, fd.FullName())
	}
}

// FieldArrowType is the TypeMap of spec.md §4.1: a total function from a
// field descriptor (plus configuration) to its columnar Arrow type,
// accounting for cardinality adaptation (repeated -> list, map-entry ->
// map).
func FieldArrowType(fd protoreflect.FieldDescriptor, cfg Config) (arrow.DataType, error) {
	if fd.IsMap() {
		keyFd, valueFd := fd.MapKey(), fd.MapValue()
		keyType, err := elementArrowType(keyFd, classifyLeaf(keyFd), cfg)
		if err != nil {
			return nil, err
		}
		valueCat := classifyLeaf(valueFd)
		valueType, err := elementArrowType(valueFd, valueCat, cfg)
		if err != nil {
			return nil, err
		}
		return mapType(keyType, valueType), nil
	}
	cat := classifyLeaf(fd)
	if fd.IsList() {
		elem, err := elementArrowType(fd, cat, cfg)
		if err != nil {
			return nil, err
		}
		// "sub-message" here is the §4.1 TypeMap sense: Date/Timestamp/
		// TimeOfDay/wrapper fields are all "sub-message = X" rows of that
		// table, so their list items are nullable too (Date's year==0
		// quirk actually produces a null item; wrapper/Timestamp/TimeOfDay
		// items never do, but share the same declared nullability).
		itemNullable := cat.kind == leafSubMessage || cat.kind == leafWrapper || cat.kind == leafTemporal
		return listType(elem, itemNullable), nil
	}
	return elementArrowType(fd, cat, cfg)
}

// messageStructType builds the struct<...> Arrow type for a non-special
// message descriptor, recursing field by field.
func messageStructType(desc protoreflect.MessageDescriptor, cfg Config) (*arrow.StructType, error) {
	fields := desc.Fields()
	arrowFields := make([]arrow.Field, 0, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		dt, err := FieldArrowType(fd, cfg)
		if err != nil {
			return nil, err
		}
		arrowFields = append(arrowFields, arrow.Field{
			Name:     string(fd.Name()),
			Type:     dt,
			Nullable: fieldIsNullableAsStructChild(fd),
		})
	}
	return structFieldType(arrowFields), nil
}

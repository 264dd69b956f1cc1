/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package protarrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func TestFieldArrowTypePrimitives(t *testing.T) {
	set := newFixtures(t)
	cfg := DefaultConfig()
	fields := set.Scalars.Fields()

	cases := []struct {
		field string
		want  arrow.DataType
	}{
		{"b", arrow.FixedWidthTypes.Boolean},
		{"i32", arrow.PrimitiveTypes.Int32},
		{"i64", arrow.PrimitiveTypes.Int64},
		{"u32", arrow.PrimitiveTypes.Uint32},
		{"u64", arrow.PrimitiveTypes.Uint64},
		{"f32", arrow.PrimitiveTypes.Float32},
		{"f64", arrow.PrimitiveTypes.Float64},
		{"s", arrow.BinaryTypes.String},
		{"bs", arrow.BinaryTypes.Binary},
	}
	for _, c := range cases {
		fd := fields.ByName(protoreflect.Name(c.field))
		dt, err := FieldArrowType(fd, cfg)
		if err != nil {
			t.Fatalf("field %s: %v", c.field, err)
		}
		if !arrow.TypeEqual(dt, c.want) {
			t.Errorf("field %s: type = %s, want %s", c.field, dt, c.want)
		}
	}
}

func TestFieldArrowTypeEnumDefaultBinary(t *testing.T) {
	set := newFixtures(t)
	fd := set.Scalars.Fields().ByName(protoreflect.Name("status"))
	dt, err := FieldArrowType(fd, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !arrow.TypeEqual(dt, arrow.BinaryTypes.Binary) {
		t.Errorf("enum default type = %s, want binary", dt)
	}
}

func TestFieldArrowTypeEnumDictionary(t *testing.T) {
	set := newFixtures(t)
	fd := set.Scalars.Fields().ByName(protoreflect.Name("status"))
	cfg := DefaultConfig()
	cfg.EnumRepr = EnumAsDictionaryString
	dt, err := FieldArrowType(fd, cfg)
	if err != nil {
		t.Fatal(err)
	}
	dict, ok := dt.(*arrow.DictionaryType)
	if !ok {
		t.Fatalf("enum dictionary type = %T, want *arrow.DictionaryType", dt)
	}
	if !arrow.TypeEqual(dict.ValueType, arrow.BinaryTypes.String) {
		t.Errorf("dictionary value type = %s, want string", dict.ValueType)
	}
}

func TestFieldArrowTypeWrapper(t *testing.T) {
	set := newFixtures(t)
	fd := set.Wrapped.Fields().ByName(protoreflect.Name("value"))
	dt, err := FieldArrowType(fd, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !arrow.TypeEqual(dt, arrow.PrimitiveTypes.Int32) {
		t.Errorf("wrapper field type = %s, want int32", dt)
	}
}

func TestFieldArrowTypeList(t *testing.T) {
	set := newFixtures(t)
	fd := set.Repeated.Fields().ByName(protoreflect.Name("values"))
	dt, err := FieldArrowType(fd, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	lt, ok := dt.(*arrow.ListType)
	if !ok {
		t.Fatalf("repeated field type = %T, want *arrow.ListType", dt)
	}
	if lt.Elem().ID() != arrow.INT32 {
		t.Errorf("list element type = %s, want int32", lt.Elem())
	}
}

func TestFieldArrowTypeListOfDateItemsNullable(t *testing.T) {
	set := newFixtures(t)
	fd := set.Repeated.Fields().ByName(protoreflect.Name("days"))
	dt, err := FieldArrowType(fd, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	lt, ok := dt.(*arrow.ListType)
	if !ok {
		t.Fatalf("repeated Date field type = %T, want *arrow.ListType", dt)
	}
	if lt.Elem().ID() != arrow.DATE32 {
		t.Errorf("list element type = %s, want date32", lt.Elem())
	}
	if !lt.ElemField().Nullable {
		t.Error("repeated Date list item should be nullable (year==0 quirk produces a null element)")
	}
}

func TestFieldArrowTypeMap(t *testing.T) {
	set := newFixtures(t)
	fd := set.Mapped.Fields().ByName(protoreflect.Name("counts"))
	dt, err := FieldArrowType(fd, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := dt.(*arrow.MapType); !ok {
		t.Fatalf("map field type = %T, want *arrow.MapType", dt)
	}
}

func TestFieldIsNullableAsStructChild(t *testing.T) {
	set := newFixtures(t)
	if fieldIsNullableAsStructChild(set.Scalars.Fields().ByName(protoreflect.Name("i32"))) {
		t.Error("primitive field should not be nullable as a struct child")
	}
	if !fieldIsNullableAsStructChild(set.Wrapped.Fields().ByName(protoreflect.Name("value"))) {
		t.Error("wrapper field should be nullable as a struct child")
	}
	if !fieldIsNullableAsStructChild(set.Nested.Fields().ByName(protoreflect.Name("leaf"))) {
		t.Error("sub-message field should be nullable as a struct child")
	}
	if fieldIsNullableAsStructChild(set.Repeated.Fields().ByName(protoreflect.Name("values"))) {
		t.Error("repeated field should not be nullable as a struct child")
	}
}

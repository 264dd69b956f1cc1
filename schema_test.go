/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package protarrow

import (
	"testing"

	"google.golang.org/protobuf/reflect/protoreflect"
)

func TestDescriptorToSchemaColumnsMatchFields(t *testing.T) {
	set := newFixtures(t)
	schema, err := DescriptorToSchema(set.Scalars, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := schema.NumFields(), set.Scalars.Fields().Len(); got != want {
		t.Errorf("schema has %d fields, want %d", got, want)
	}
	for i := 0; i < schema.NumFields(); i++ {
		name := schema.Field(i).Name
		if set.Scalars.Fields().ByName(protoreflect.Name(name)) == nil {
			t.Errorf("schema field %q has no matching descriptor field", name)
		}
	}
}

func TestDescriptorToSchemaNullability(t *testing.T) {
	set := newFixtures(t)
	schema, err := DescriptorToSchema(set.Wrapped, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	f, ok := schema.FieldsByName("value")
	if !ok || len(f) != 1 {
		t.Fatalf("expected exactly one 'value' field, got %v", f)
	}
	if !f[0].Nullable {
		t.Error("wrapper column should be nullable")
	}
}

func TestDescriptorToStructType(t *testing.T) {
	set := newFixtures(t)
	st, err := DescriptorToStructType(set.Nested, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if st.NumFields() != 1 {
		t.Fatalf("Nested struct type has %d fields, want 1", st.NumFields())
	}
	if st.Field(0).Name != "leaf" {
		t.Errorf("field name = %q, want leaf", st.Field(0).Name)
	}
}

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

// primitiveArrowType maps a protobuf primitive kind to its pyarrow-equivalent
// Arrow type, per the table in spec.md §4.1.
func primitiveArrowType(k protoreflect.Kind) (arrow.DataType, error) {
	switch k {
	case protoreflect.DoubleKind:
		return arrow.PrimitiveTypes.Float64, nil
	case protoreflect.FloatKind:
		return arrow.PrimitiveTypes.Float32, nil
	case protoreflect.Int64Kind, protoreflect.Sfixed64Kind, protoreflect.Sint64Kind:
		return arrow.PrimitiveTypes.Int64, nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return arrow.PrimitiveTypes.Uint64, nil
	case protoreflect.Int32Kind, protoreflect.Sfixed32Kind, protoreflect.Sint32Kind:
		return arrow.PrimitiveTypes.Int32, nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return arrow.PrimitiveTypes.Uint32, nil
	case protoreflect.BoolKind:
		return arrow.FixedWidthTypes.Boolean, nil
	case protoreflect.StringKind:
		return arrow.BinaryTypes.String, nil
	case protoreflect.BytesKind:
		return arrow.BinaryTypes.Binary, nil
	default:
		return nil, fmt.Errorf("%w: primitive kind %s", ErrUnsupportedFieldKind, k)
	}
}

// timestampArrowType builds the timestamp(unit, tz) type for cfg.
func timestampArrowType(cfg Config) arrow.DataType {
	return &arrow.TimestampType{Unit: cfg.TimestampUnit.arrowUnit(), TimeZone: cfg.TimestampTZ}
}

// timeOfDayArrowType builds the time64(unit) type for cfg.
func timeOfDayArrowType(cfg Config) arrow.DataType {
	return &arrow.Time64Type{Unit: cfg.TimeUnit.arrowUnit()}
}

// enumArrowType builds the column type for an enum field per cfg.EnumRepr.
func enumArrowType(cfg Config) (arrow.DataType, error) {
	switch cfg.EnumRepr {
	case EnumAsInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case EnumAsBinary:
		return arrow.BinaryTypes.Binary, nil
	case EnumAsString:
		return arrow.BinaryTypes.String, nil
	case EnumAsDictionaryBinary:
		return &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: arrow.BinaryTypes.Binary}, nil
	case EnumAsDictionaryString:
		return &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: arrow.BinaryTypes.String}, nil
	default:
		return nil, fmt.Errorf("%w: enum representation %d", ErrUnsupportedFieldKind, cfg.EnumRepr)
	}
}

// listType builds list<item: elem>, with item nullability set per spec.md
// §3 ("repeated → list<item: T, nullable = (kind is sub-message)>"), where
// "sub-message" is the descriptor-kind sense of spec.md §4.1's TypeMap table
// (kind ∈ {primitive, enum, sub-message}) — Date/Timestamp/TimeOfDay and the
// wrapper types are all "sub-message = X" rows of that table, so their list
// items are nullable too, not just plain nested-struct items.
func listType(elem arrow.DataType, itemNullable bool) *arrow.ListType {
	return arrow.ListOfField(arrow.Field{Name: "item", Type: elem, Nullable: itemNullable})
}

// mapType builds map<key: K non-null, value: V>. The key field of an
// arrow.MapType is always non-nullable; the value field's declared
// nullability follows arrow-go's MapOf default (nullable), matching the
// common case (value kind is sub-message) — the non-nullable case (scalar
// map values) still round-trips correctly since the array builder never
// emits a null value slot for scalar-valued maps.
func mapType(key, value arrow.DataType) *arrow.MapType {
	return arrow.MapOf(key, value)
}

// structFieldType builds a struct<...> type from the given child fields.
func structFieldType(fields []arrow.Field) *arrow.StructType {
	return arrow.StructOf(fields...)
}

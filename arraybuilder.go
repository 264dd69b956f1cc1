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
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// encoded is a single converted element plus its validity bit, the unit of
// work ScalarCodec hands to a builder.
type encoded struct {
	value any
	valid bool
}

// encodeLeafValue converts a single already-dereferenced protoreflect.Value
// (a struct field's value, a list element, or a map key/value) according to
// its leaf category. The returned validity is only ever false for the
// Date(year=0) quirk; presence gating for wrappers/temporal specials on a
// singular field happens one level up, in fieldScalarValue.
func encodeLeafValue(val protoreflect.Value, fd protoreflect.FieldDescriptor, cat leafCategory, cfg Config) (encoded, error) {
	switch cat.kind {
	case leafPrimitive:
		v, err := encodePrimitive(val, fd.Kind())
		return encoded{value: v, valid: true}, err
	case leafEnum:
		v, err := encodeEnum(val.Enum(), fd.Enum(), cfg)
		return encoded{value: v, valid: true}, err
	case leafWrapper:
		v, err := encodeWrapperValue(val.Message())
		return encoded{value: v, valid: true}, err
	case leafTemporal:
		switch cat.wellKnown {
		case wkDate:
			d, ok := encodeDate(val.Message())
			return encoded{value: d, valid: ok}, nil
		case wkTimestamp:
			t, err := encodeTimestamp(val.Message(), cfg)
			return encoded{value: t, valid: true}, err
		case wkTimeOfDay:
			t := encodeTimeOfDay(val.Message(), cfg)
			return encoded{value: t, valid: true}, nil
		}
	}
	return encoded{}, fmt.Errorf("%w: field %s", ErrUnsupportedFieldKind, fd.FullName())
}

// fieldScalarValue resolves the value (and validity) of a singular
// primitive/enum/wrapper/temporal field on parent, where parent may be nil
// (an absent ancestor, cascading all the way down per spec.md §4.3's
// validity-propagation note). Primitive and enum fields are always valid —
// case 4 of §4.3 ("for primitives in a struct context: always set") — using
// the field's default value when the field (or an ancestor) is absent.
// Wrapper and temporal-special fields are presence-gated by HasField.
func fieldScalarValue(parent protoreflect.Message, fd protoreflect.FieldDescriptor, cat leafCategory, cfg Config) (encoded, error) {
	if cat.kind == leafPrimitive || cat.kind == leafEnum {
		val := fd.Default()
		if parent != nil {
			val = parent.Get(fd)
		}
		return encodeLeafValue(val, fd, cat, cfg)
	}
	if parent == nil || !parent.Has(fd) {
		return encoded{valid: false}, nil
	}
	return encodeLeafValue(parent.Get(fd), fd, cat, cfg)
}

// appendScalarValue appends one converted element to a flat (non-nested)
// builder, dispatching on its concrete Arrow type.
func appendScalarValue(b array.Builder, enc encoded) error {
	if !enc.valid {
		b.AppendNull()
		return nil
	}
	switch bb := b.(type) {
	case *array.BooleanBuilder:
		bb.Append(enc.value.(bool))
	case *array.Int32Builder:
		bb.Append(enc.value.(int32))
	case *array.Int64Builder:
		bb.Append(enc.value.(int64))
	case *array.Uint32Builder:
		bb.Append(enc.value.(uint32))
	case *array.Uint64Builder:
		bb.Append(enc.value.(uint64))
	case *array.Float32Builder:
		bb.Append(enc.value.(float32))
	case *array.Float64Builder:
		bb.Append(enc.value.(float64))
	case *array.StringBuilder:
		bb.Append(enc.value.(string))
	case *array.BinaryBuilder:
		bb.Append(enc.value.([]byte))
	case *array.Date32Builder:
		bb.Append(arrow.Date32(enc.value.(int32)))
	case *array.TimestampBuilder:
		bb.Append(arrow.Timestamp(enc.value.(int64)))
	case *array.Time64Builder:
		bb.Append(arrow.Time64(enc.value.(int64)))
	case *array.BinaryDictionaryBuilder:
		switch v := enc.value.(type) {
		case []byte:
			return bb.Append(v)
		case string:
			return bb.AppendString(v)
		default:
			return fmt.Errorf("%w: dictionary value %T", ErrUnsupportedFieldKind, enc.value)
		}
	default:
		return fmt.Errorf("%w: unsupported builder %T", ErrUnsupportedFieldKind, b)
	}
	return nil
}

// appendSingleStructValue appends exactly one row to a struct builder used
// as a list item or map value (always valid — spec.md §4.3/§4.4: repeated
// message elements and map values are never individually null on encode).
func appendSingleStructValue(sb *array.StructBuilder, msg protoreflect.Message, desc protoreflect.MessageDescriptor, cfg Config) error {
	sb.Append(true)
	fields := desc.Fields()
	one := []protoreflect.Message{msg}
	for i := 0; i < fields.Len(); i++ {
		if err := appendFieldColumn(sb.FieldBuilder(i), one, fields.Get(i), cfg); err != nil {
			return err
		}
	}
	return nil
}

// appendStructFieldColumn builds the column for a singular non-special
// sub-message field (§4.3 dispatch rule 3): a struct validity mask computed
// from HasField, followed by each child field built as a full-length
// column over the (possibly absent) child messages.
func appendStructFieldColumn(sb *array.StructBuilder, parents []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	desc := fd.Message()
	childParents := make([]protoreflect.Message, len(parents))
	for i, parent := range parents {
		present := parent != nil && parent.Has(fd)
		sb.Append(present)
		if present {
			childParents[i] = parent.Get(fd).Message()
		}
	}
	fields := desc.Fields()
	for i := 0; i < fields.Len(); i++ {
		if err := appendFieldColumn(sb.FieldBuilder(i), childParents, fields.Get(i), cfg); err != nil {
			return err
		}
	}
	return nil
}

// appendListColumn builds the column for a repeated non-map field (§4.3
// dispatch rule 2). Offsets are captured by the ListBuilder itself at each
// Append call, so a null parent must contribute zero elements without
// advancing, and a struct-valued element must be fully appended to the
// item builder before the next row's Append call.
func appendListColumn(lb *array.ListBuilder, parents []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	cat := classifyLeaf(fd)
	if cat.kind == leafSubMessage {
		vb := lb.ValueBuilder().(*array.StructBuilder)
		desc := fd.Message()
		for _, parent := range parents {
			lb.Append(true)
			if parent == nil {
				continue
			}
			list := parent.Get(fd).List()
			for j := 0; j < list.Len(); j++ {
				if err := appendSingleStructValue(vb, list.Get(j).Message(), desc, cfg); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, parent := range parents {
		lb.Append(true)
		if parent == nil {
			continue
		}
		list := parent.Get(fd).List()
		for j := 0; j < list.Len(); j++ {
			enc, err := encodeLeafValue(list.Get(j), fd, cat, cfg)
			if err != nil {
				return err
			}
			if err := appendScalarValue(lb.ValueBuilder(), enc); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendMapColumn builds the column for a map field (§4.3 dispatch rule 1).
// Map keys are always scalar (protobuf forbids message/float map keys), so
// only the value side can recurse into a struct builder.
func appendMapColumn(mb *array.MapBuilder, parents []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	keyFd, valFd := fd.MapKey(), fd.MapValue()
	keyCat := classifyLeaf(keyFd)
	valCat := classifyLeaf(valFd)

	if valCat.kind == leafSubMessage {
		vb := mb.ItemBuilder().(*array.StructBuilder)
		desc := valFd.Message()
		var rangeErr error
		for _, parent := range parents {
			mb.Append(true)
			if parent == nil {
				continue
			}
			parent.Get(fd).Map().Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
				kenc, err := encodeLeafValue(k.Value(), keyFd, keyCat, cfg)
				if err != nil {
					rangeErr = err
					return false
				}
				if err := appendScalarValue(mb.KeyBuilder(), kenc); err != nil {
					rangeErr = err
					return false
				}
				if err := appendSingleStructValue(vb, v.Message(), desc, cfg); err != nil {
					rangeErr = err
					return false
				}
				return true
			})
			if rangeErr != nil {
				return rangeErr
			}
		}
		return nil
	}

	var rangeErr error
	for _, parent := range parents {
		mb.Append(true)
		if parent == nil {
			continue
		}
		parent.Get(fd).Map().Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
			kenc, err := encodeLeafValue(k.Value(), keyFd, keyCat, cfg)
			if err != nil {
				rangeErr = err
				return false
			}
			if err := appendScalarValue(mb.KeyBuilder(), kenc); err != nil {
				rangeErr = err
				return false
			}
			venc, err := encodeLeafValue(v, valFd, valCat, cfg)
			if err != nil {
				rangeErr = err
				return false
			}
			if err := appendScalarValue(mb.ItemBuilder(), venc); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
	}
	return nil
}

// appendFieldColumn is the recursive entry point of ArrayBuilder (§4.3):
// given a builder already typed to match fd's columnar type, fill it with
// one element per parent. parents may contain nil entries representing an
// absent ancestor; absence cascades into zero-length lists/maps, null
// struct/wrapper/temporal columns, and default-valued primitive/enum
// columns, without needing a separately threaded validity mask (protobuf's
// default-instance semantics already make every field of an absent
// ancestor read back as its zero value or empty container).
func appendFieldColumn(b array.Builder, parents []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	if fd.IsMap() {
		mb, ok := b.(*array.MapBuilder)
		if !ok {
			return fmt.Errorf("%w: expected MapBuilder for %s, got %T", ErrTypeMismatch, fd.FullName(), b)
		}
		return appendMapColumn(mb, parents, fd, cfg)
	}
	if fd.IsList() {
		lb, ok := b.(*array.ListBuilder)
		if !ok {
			return fmt.Errorf("%w: expected ListBuilder for %s, got %T", ErrTypeMismatch, fd.FullName(), b)
		}
		return appendListColumn(lb, parents, fd, cfg)
	}
	cat := classifyLeaf(fd)
	if cat.kind == leafSubMessage {
		sb, ok := b.(*array.StructBuilder)
		if !ok {
			return fmt.Errorf("%w: expected StructBuilder for %s, got %T", ErrTypeMismatch, fd.FullName(), b)
		}
		return appendStructFieldColumn(sb, parents, fd, cfg)
	}
	for _, parent := range parents {
		enc, err := fieldScalarValue(parent, fd, cat, cfg)
		if err != nil {
			return err
		}
		if err := appendScalarValue(b, enc); err != nil {
			return err
		}
	}
	return nil
}

// buildRecordBatch is the forward direction of TopLevelCodec (§4.6): derive
// the schema, then build each top-level column, one per descriptor field.
func buildRecordBatch(mem memory.Allocator, messages []protoreflect.Message, desc protoreflect.MessageDescriptor, cfg Config) (arrow.Record, error) {
	schema, err := DescriptorToSchema(desc, cfg)
	if err != nil {
		return nil, err
	}
	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	fields := desc.Fields()
	for i := 0; i < fields.Len(); i++ {
		if err := appendFieldColumn(rb.Field(i), messages, fields.Get(i), cfg); err != nil {
			return nil, err
		}
	}
	return rb.NewRecord(), nil
}

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
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// arrayValueAt extracts the raw Go value backing a flat (non-nested)
// array's element at idx. Callers must only invoke this on a non-null
// position.
func arrayValueAt(col arrow.Array, idx int) any {
	switch c := col.(type) {
	case *array.Boolean:
		return c.Value(idx)
	case *array.Int32:
		return c.Value(idx)
	case *array.Int64:
		return c.Value(idx)
	case *array.Uint32:
		return c.Value(idx)
	case *array.Uint64:
		return c.Value(idx)
	case *array.Float32:
		return c.Value(idx)
	case *array.Float64:
		return c.Value(idx)
	case *array.String:
		return c.Value(idx)
	case *array.Binary:
		return c.Value(idx)
	case *array.Date32:
		return int32(c.Value(idx))
	case *array.Timestamp:
		return int64(c.Value(idx))
	case *array.Time64:
		return int64(c.Value(idx))
	default:
		return nil
	}
}

// decodeEnumElement resolves the enum number stored at col[idx]. The bool
// return is the MissingEnumValue outcome (§7): the stored name or number
// names no value in enumDesc.
func decodeEnumElement(col arrow.Array, idx int, enumDesc protoreflect.EnumDescriptor, cfg Config) (protoreflect.EnumNumber, bool, error) {
	if dict, ok := col.(*array.Dictionary); ok {
		var name string
		switch v := arrayValueAt(dict.Dictionary(), dict.GetValueIndex(idx)).(type) {
		case []byte:
			name = string(v)
		case string:
			name = v
		}
		num, ok := decodeEnumByName(name, enumDesc)
		return num, ok, nil
	}
	switch cfg.EnumRepr {
	case EnumAsInt32:
		num := protoreflect.EnumNumber(arrayValueAt(col, idx).(int32))
		if enumDesc.Values().ByNumber(num) == nil {
			return 0, false, nil
		}
		return num, true, nil
	case EnumAsBinary:
		b := arrayValueAt(col, idx).([]byte)
		num, ok := decodeEnumByName(string(b), enumDesc)
		return num, ok, nil
	case EnumAsString:
		s := arrayValueAt(col, idx).(string)
		num, ok := decodeEnumByName(s, enumDesc)
		return num, ok, nil
	default:
		return 0, false, fmt.Errorf("%w: enum representation %d", ErrUnsupportedFieldKind, cfg.EnumRepr)
	}
}

func setDateFields(msg protoreflect.Message, year, month, day int) {
	fields := msg.Descriptor().Fields()
	msg.Set(fields.ByName("year"), protoreflect.ValueOfInt32(int32(year)))
	msg.Set(fields.ByName("month"), protoreflect.ValueOfInt32(int32(month)))
	msg.Set(fields.ByName("day"), protoreflect.ValueOfInt32(int32(day)))
}

func setTimestampFields(msg protoreflect.Message, seconds, nanos int64) {
	fields := msg.Descriptor().Fields()
	msg.Set(fields.ByName("seconds"), protoreflect.ValueOfInt64(seconds))
	msg.Set(fields.ByName("nanos"), protoreflect.ValueOfInt32(int32(nanos)))
}

func setTimeOfDayFields(msg protoreflect.Message, hours, minutes, seconds, nanos int64) {
	fields := msg.Descriptor().Fields()
	msg.Set(fields.ByName("hours"), protoreflect.ValueOfInt32(int32(hours)))
	msg.Set(fields.ByName("minutes"), protoreflect.ValueOfInt32(int32(minutes)))
	msg.Set(fields.ByName("seconds"), protoreflect.ValueOfInt32(int32(seconds)))
	msg.Set(fields.ByName("nanos"), protoreflect.ValueOfInt32(int32(nanos)))
}

// decodeNullLeafElement produces the value for a list element or map
// key/value whose column slot is null. Wrapper and temporal-special items
// are nullable at the column level (typemap.go's FieldArrowType) because
// Date encodes year==0 to null (scalarcodec.go's documented quirk); there is
// no presence concept to restore here, so the symmetric decode is a
// default-valued sub-message — for Date that default is exactly year=0,
// the sentinel encodeDate produced. Primitive/enum items are never null
// (list items of those kinds are declared non-nullable, and the builder
// never appends a null primitive/enum map value), but are handled
// defensively the same way, matching §4.4's "null value column entry ... create the key with
// default sub-message" rule generalized to list/map elements.
func decodeNullLeafElement(fd protoreflect.FieldDescriptor, cat leafCategory) protoreflect.Value {
	switch cat.kind {
	case leafWrapper, leafTemporal:
		return protoreflect.ValueOfMessage(dynamicpb.NewMessage(fd.Message()))
	case leafEnum:
		return protoreflect.ValueOfEnum(0)
	default:
		return fd.Default()
	}
}

// decodeLeafElement decodes one non-struct element at col[idx] into the
// value appended to a repeated field or assigned to a map key/value. Unlike
// setSingularScalarField, there is no presence concept here — a list
// element or map entry always holds some value — but the column slot can
// still be null (Date's year==0 quirk makes repeated/mapped Date columns
// nullable), in which case decodeNullLeafElement supplies the value instead
// of reading the null slot's zero-padded backing buffer. A MissingEnumValue
// falls back to enum number 0 rather than being skipped.
func decodeLeafElement(col arrow.Array, idx int, fd protoreflect.FieldDescriptor, cat leafCategory, cfg Config) (protoreflect.Value, error) {
	if col.IsNull(idx) {
		return decodeNullLeafElement(fd, cat), nil
	}
	switch cat.kind {
	case leafPrimitive:
		return decodePrimitive(arrayValueAt(col, idx), fd.Kind())
	case leafEnum:
		num, ok, err := decodeEnumElement(col, idx, fd.Enum(), cfg)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if !ok {
			num = 0
		}
		return protoreflect.ValueOfEnum(num), nil
	case leafWrapper:
		vk, err := wrapperValueKind(fd.Message())
		if err != nil {
			return protoreflect.Value{}, err
		}
		val, err := decodePrimitive(arrayValueAt(col, idx), vk)
		if err != nil {
			return protoreflect.Value{}, err
		}
		wrapper := dynamicpb.NewMessage(fd.Message())
		wrapper.Set(wrapper.Descriptor().Fields().ByName("value"), val)
		return protoreflect.ValueOfMessage(wrapper), nil
	case leafTemporal:
		sub := dynamicpb.NewMessage(fd.Message())
		switch cat.wellKnown {
		case wkDate:
			y, m, d := decodeDate(arrayValueAt(col, idx).(int32))
			setDateFields(sub, y, m, d)
		case wkTimestamp:
			s, n := decodeTimestamp(arrayValueAt(col, idx).(int64), cfg.TimestampUnit)
			setTimestampFields(sub, s, n)
		case wkTimeOfDay:
			h, mi, s, n := decodeTimeOfDay(arrayValueAt(col, idx).(int64), cfg.TimeUnit)
			setTimeOfDayFields(sub, h, mi, s, n)
		}
		return protoreflect.ValueOfMessage(sub), nil
	}
	return protoreflect.Value{}, fmt.Errorf("%w: field %s", ErrUnsupportedFieldKind, fd.FullName())
}

// setSingularScalarField decodes col[idx] onto msg's singular
// primitive/enum/wrapper/temporal field fd. Wrapper and temporal-special
// fields are left unset when col[idx] is null, the inverse of the
// HasField-gated encode path in arraybuilder.go. A MissingEnumValue (§7)
// also leaves the field unset.
func setSingularScalarField(msg protoreflect.Message, fd protoreflect.FieldDescriptor, cat leafCategory, col arrow.Array, idx int, cfg Config) error {
	switch cat.kind {
	case leafPrimitive:
		if col.IsNull(idx) {
			return nil
		}
		val, err := decodePrimitive(arrayValueAt(col, idx), fd.Kind())
		if err != nil {
			return err
		}
		msg.Set(fd, val)
		return nil
	case leafEnum:
		if col.IsNull(idx) {
			return nil
		}
		num, ok, err := decodeEnumElement(col, idx, fd.Enum(), cfg)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		msg.Set(fd, protoreflect.ValueOfEnum(num))
		return nil
	case leafWrapper:
		if col.IsNull(idx) {
			return nil
		}
		vk, err := wrapperValueKind(fd.Message())
		if err != nil {
			return err
		}
		val, err := decodePrimitive(arrayValueAt(col, idx), vk)
		if err != nil {
			return err
		}
		wrapper := msg.NewField(fd).Message()
		wrapper.Set(wrapper.Descriptor().Fields().ByName("value"), val)
		msg.Set(fd, protoreflect.ValueOfMessage(wrapper))
		return nil
	case leafTemporal:
		if col.IsNull(idx) {
			return nil
		}
		sub := msg.NewField(fd).Message()
		switch cat.wellKnown {
		case wkDate:
			y, m, d := decodeDate(arrayValueAt(col, idx).(int32))
			setDateFields(sub, y, m, d)
		case wkTimestamp:
			s, n := decodeTimestamp(arrayValueAt(col, idx).(int64), cfg.TimestampUnit)
			setTimestampFields(sub, s, n)
		case wkTimeOfDay:
			h, mi, s, n := decodeTimeOfDay(arrayValueAt(col, idx).(int64), cfg.TimeUnit)
			setTimeOfDayFields(sub, h, mi, s, n)
		}
		msg.Set(fd, protoreflect.ValueOfMessage(sub))
		return nil
	}
	return fmt.Errorf("%w: field %s", ErrUnsupportedFieldKind, fd.FullName())
}

// extractStructInto populates child (a newly allocated message of desc's
// type) from row idx of structCol.
func extractStructInto(structCol *array.Struct, idx int, child protoreflect.Message, desc protoreflect.MessageDescriptor, cfg Config) error {
	// extractFieldColumn reads row i of a column for msgs[i], so child sits
	// at position idx and every earlier (nil) slot is skipped.
	msgs := make([]protoreflect.Message, idx+1)
	msgs[idx] = child
	fields := desc.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		col := structCol.Field(i)
		if err := extractFieldColumn(col, msgs, fd, cfg); err != nil {
			return err
		}
	}
	return nil
}

// extractStructFieldColumn is the inverse of appendStructFieldColumn: build
// a fresh sub-message per present row and assign it to fd.
func extractStructFieldColumn(structCol *array.Struct, msgs []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	desc := fd.Message()
	children := make([]protoreflect.Message, len(msgs))
	for i, msg := range msgs {
		if msg == nil || structCol.IsNull(i) {
			continue
		}
		children[i] = msg.NewField(fd).Message()
	}
	fields := desc.Fields()
	for i := 0; i < fields.Len(); i++ {
		if err := extractFieldColumn(structCol.Field(i), children, fields.Get(i), cfg); err != nil {
			return err
		}
	}
	for i, msg := range msgs {
		if children[i] != nil {
			msg.Set(fd, protoreflect.ValueOfMessage(children[i]))
		}
	}
	return nil
}

// extractFieldColumn recursively populates children[i] where non-nil, handling
// an internal batch of one struct/list/map value the same way as a full
// top-level column; a nil entry in msgs/children means "nothing to
// populate for this row" and is skipped uniformly at every recursion
// level, symmetric with appendFieldColumn's nil-parent handling.
func extractFieldColumn(col arrow.Array, msgs []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	if fd.IsMap() {
		mc, ok := col.(*array.Map)
		if !ok {
			return fmt.Errorf("%w: expected Map array for %s, got %T", ErrTypeMismatch, fd.FullName(), col)
		}
		return extractMapColumn(mc, msgs, fd, cfg)
	}
	if fd.IsList() {
		lc, ok := col.(*array.List)
		if !ok {
			return fmt.Errorf("%w: expected List array for %s, got %T", ErrTypeMismatch, fd.FullName(), col)
		}
		return extractListColumn(lc, msgs, fd, cfg)
	}
	cat := classifyLeaf(fd)
	if cat.kind == leafSubMessage {
		sc, ok := col.(*array.Struct)
		if !ok {
			return fmt.Errorf("%w: expected Struct array for %s, got %T", ErrTypeMismatch, fd.FullName(), col)
		}
		return extractStructFieldColumn(sc, msgs, fd, cfg)
	}
	for i, msg := range msgs {
		if msg == nil {
			continue
		}
		if err := setSingularScalarField(msg, fd, cat, col, i, cfg); err != nil {
			return err
		}
	}
	return nil
}

// extractListColumn is the inverse of appendListColumn (§4.4 case 3): a
// null list contributes no elements (symmetric with an empty list — there
// is no distinguishable "null list" at this layer), otherwise each element
// in [offsets[i], offsets[i+1]) is appended to the repeated field in order.
func extractListColumn(lc *array.List, msgs []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	cat := classifyLeaf(fd)
	offsets := lc.Offsets()
	values := lc.ListValues()
	desc := fd.Message()

	for i, msg := range msgs {
		if msg == nil || lc.IsNull(i) {
			continue
		}
		start, end := offsets[i], offsets[i+1]
		if start == end {
			continue
		}
		list := msg.Mutable(fd).List()
		if cat.kind == leafSubMessage {
			sc, ok := values.(*array.Struct)
			if !ok {
				return fmt.Errorf("%w: expected Struct values for %s, got %T", ErrTypeMismatch, fd.FullName(), values)
			}
			for j := start; j < end; j++ {
				elem := list.NewElement()
				if err := extractStructInto(sc, int(j), elem.Message(), desc, cfg); err != nil {
					return err
				}
				list.Append(elem)
			}
			continue
		}
		for j := start; j < end; j++ {
			val, err := decodeLeafElement(values, int(j), fd, cat, cfg)
			if err != nil {
				return err
			}
			list.Append(val)
		}
	}
	return nil
}

// extractMapColumn is the inverse of appendMapColumn (§4.4 case 2): a null
// key is rejected with ErrInvalidMapKey, duplicate keys overwrite (last
// write wins, protoreflect.Map.Set's native behavior), and a null
// sub-message value produces a default-valued entry rather than an error.
func extractMapColumn(mc *array.Map, msgs []protoreflect.Message, fd protoreflect.FieldDescriptor, cfg Config) error {
	keyFd, valFd := fd.MapKey(), fd.MapValue()
	keyCat, valCat := classifyLeaf(keyFd), classifyLeaf(valFd)
	offsets := mc.Offsets()
	keys := mc.Keys()
	items := mc.Items()

	var valDesc protoreflect.MessageDescriptor
	var itemStruct *array.Struct
	if valCat.kind == leafSubMessage {
		valDesc = valFd.Message()
		sc, ok := items.(*array.Struct)
		if !ok {
			return fmt.Errorf("%w: expected Struct items for %s, got %T", ErrTypeMismatch, fd.FullName(), items)
		}
		itemStruct = sc
	}

	for i, msg := range msgs {
		if msg == nil || mc.IsNull(i) {
			continue
		}
		start, end := offsets[i], offsets[i+1]
		if start == end {
			continue
		}
		m := msg.Mutable(fd).Map()
		for j := start; j < end; j++ {
			if keys.IsNull(int(j)) {
				return fmt.Errorf("%w: field %s", ErrInvalidMapKey, fd.FullName())
			}
			keyVal, err := decodeLeafElement(keys, int(j), keyFd, keyCat, cfg)
			if err != nil {
				return err
			}
			var valVal protoreflect.Value
			if valCat.kind == leafSubMessage {
				valVal = m.NewValue()
				if !items.IsNull(int(j)) {
					if err := extractStructInto(itemStruct, int(j), valVal.Message(), valDesc, cfg); err != nil {
						return err
					}
				}
			} else {
				valVal, err = decodeLeafElement(items, int(j), valFd, valCat, cfg)
				if err != nil {
					return err
				}
			}
			m.Set(keyVal.MapKey(), valVal)
		}
	}
	return nil
}

// extractMessages is the reverse direction of TopLevelCodec (§4.6): build
// one fresh message per row of rec, populating only the fields named in
// both desc and rec's schema — a descriptor field absent from the record
// is left unset, and a record column absent from the descriptor (an
// UnknownColumn, §7) is silently skipped by never being visited. A matched
// column whose type differs from FieldArrowType(fd, cfg) is rejected with
// ErrTypeMismatch.
func extractMessages(rec arrow.Record, desc protoreflect.MessageDescriptor, cfg Config) ([]protoreflect.Message, error) {
	n := int(rec.NumRows())
	msgs := make([]protoreflect.Message, n)
	for i := range msgs {
		msgs[i] = dynamicpb.NewMessage(desc)
	}

	schema := rec.Schema()
	fields := desc.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		idxs := schema.FieldIndices(string(fd.Name()))
		if len(idxs) == 0 {
			continue
		}
		col := rec.Column(idxs[0])
		want, err := FieldArrowType(fd, cfg)
		if err != nil {
			return nil, err
		}
		if !arrow.TypeEqual(col.DataType(), want) {
			return nil, fmt.Errorf("%w: column %s is %s, want %s", ErrTypeMismatch, fd.Name(), col.DataType(), want)
		}
		if err := extractFieldColumn(col, msgs, fd, cfg); err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

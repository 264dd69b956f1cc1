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
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"
)

const nanosPerSecond = 1_000_000_000

// floorDiv divides a by b truncating toward negative infinity, as spec.md
// §4.2 requires for timestamp unit rescaling (plain Go "/" truncates
// toward zero, which is wrong for negative dividends).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// secondsNanosToNanos combines a Timestamp's (seconds, nanos) pair into a
// single nanosecond count, reporting ErrNumericRange on int64 overflow.
func secondsNanosToNanos(seconds, nanos int64) (int64, error) {
	total := seconds * nanosPerSecond
	if seconds != 0 && total/nanosPerSecond != seconds {
		return 0, fmt.Errorf("%w: timestamp seconds=%d overflows nanoseconds", ErrNumericRange, seconds)
	}
	sum := total + nanos
	if (sum < total) != (nanos < 0) {
		return 0, fmt.Errorf("%w: timestamp seconds=%d nanos=%d overflows nanoseconds", ErrNumericRange, seconds, nanos)
	}
	return sum, nil
}

// encodePrimitive converts a protoreflect scalar value to the Go value
// appended to the matching Arrow builder.
func encodePrimitive(val protoreflect.Value, kind protoreflect.Kind) (any, error) {
	switch kind {
	case protoreflect.BoolKind:
		return val.Bool(), nil
	case protoreflect.Int32Kind, protoreflect.Sfixed32Kind, protoreflect.Sint32Kind:
		return int32(val.Int()), nil
	case protoreflect.Int64Kind, protoreflect.Sfixed64Kind, protoreflect.Sint64Kind:
		return val.Int(), nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return uint32(val.Uint()), nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return val.Uint(), nil
	case protoreflect.FloatKind:
		return float32(val.Float()), nil
	case protoreflect.DoubleKind:
		return val.Float(), nil
	case protoreflect.StringKind:
		return val.String(), nil
	case protoreflect.BytesKind:
		return val.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: primitive kind %s", ErrUnsupportedFieldKind, kind)
	}
}

// enumName resolves an enum number to its declared name for the
// binary/string/dictionary representations. Returns an error: unlike
// decode, encode has a concrete in-memory number that must name a value to
// be representable as text.
func enumName(enumDesc protoreflect.EnumDescriptor, num protoreflect.EnumNumber) (string, error) {
	ev := enumDesc.Values().ByNumber(num)
	if ev == nil {
		return "", fmt.Errorf("%w: enum number %d has no name in %s", ErrUnsupportedFieldKind, num, enumDesc.FullName())
	}
	return string(ev.Name()), nil
}

// encodeEnum converts an enum value to the Go value appended to the
// matching Arrow builder, per cfg.EnumRepr.
func encodeEnum(num protoreflect.EnumNumber, enumDesc protoreflect.EnumDescriptor, cfg Config) (any, error) {
	switch cfg.EnumRepr {
	case EnumAsInt32:
		return int32(num), nil
	case EnumAsBinary, EnumAsDictionaryBinary:
		name, err := enumName(enumDesc, num)
		if err != nil {
			return nil, err
		}
		return []byte(name), nil
	case EnumAsString, EnumAsDictionaryString:
		name, err := enumName(enumDesc, num)
		if err != nil {
			return nil, err
		}
		return name, nil
	default:
		return nil, fmt.Errorf("%w: enum representation %d", ErrUnsupportedFieldKind, cfg.EnumRepr)
	}
}

// encodeWrapperValue extracts and converts the `.value` field of a wrapper
// message (Int32Value, StringValue, ...).
func encodeWrapperValue(msg protoreflect.Message) (any, error) {
	fd := msg.Descriptor().Fields().ByName("value")
	if fd == nil {
		return nil, fmt.Errorf("%w: %s has no value field", ErrUnsupportedFieldKind, msg.Descriptor().FullName())
	}
	return encodePrimitive(msg.Get(fd), fd.Kind())
}

// daysSinceEpoch converts a proleptic Gregorian (year, month, day) to days
// since the Unix epoch, matching pyarrow's date32 semantics.
func daysSinceEpoch(year, month, day int) int32 {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int32(t.Unix() / 86400)
}

// encodeDate converts a google.type.Date message to a date32 value. Per
// spec.md §4.2 and the "Date(year=0) quirk" design note (§9), year == 0
// encodes to null (ok == false) rather than a date value.
func encodeDate(msg protoreflect.Message) (value int32, ok bool) {
	fields := msg.Descriptor().Fields()
	year := msg.Get(fields.ByName("year")).Int()
	if year == 0 {
		return 0, false
	}
	month := msg.Get(fields.ByName("month")).Int()
	day := msg.Get(fields.ByName("day")).Int()
	return daysSinceEpoch(int(year), int(month), int(day)), true
}

// encodeTimestamp converts a google.protobuf.Timestamp message to a tick
// count in cfg's configured unit, truncating toward negative infinity.
func encodeTimestamp(msg protoreflect.Message, cfg Config) (int64, error) {
	fields := msg.Descriptor().Fields()
	seconds := msg.Get(fields.ByName("seconds")).Int()
	nanos := msg.Get(fields.ByName("nanos")).Int()
	totalNanos, err := secondsNanosToNanos(seconds, nanos)
	if err != nil {
		return 0, err
	}
	return floorDiv(totalNanos, cfg.TimestampUnit.nanosPerUnit()), nil
}

// encodeTimeOfDay converts a google.type.TimeOfDay message to a tick count
// in cfg's configured unit.
func encodeTimeOfDay(msg protoreflect.Message, cfg Config) int64 {
	fields := msg.Descriptor().Fields()
	hours := msg.Get(fields.ByName("hours")).Int()
	minutes := msg.Get(fields.ByName("minutes")).Int()
	seconds := msg.Get(fields.ByName("seconds")).Int()
	nanos := msg.Get(fields.ByName("nanos")).Int()
	totalNanos := ((hours*60+minutes)*60+seconds)*nanosPerSecond + nanos
	return floorDiv(totalNanos, cfg.TimeUnit.nanosPerUnit())
}

// decodePrimitive converts a raw Arrow element back to a protoreflect.Value
// of the given kind.
func decodePrimitive(v any, kind protoreflect.Kind) (protoreflect.Value, error) {
	switch kind {
	case protoreflect.BoolKind:
		return protoreflect.ValueOfBool(v.(bool)), nil
	case protoreflect.Int32Kind, protoreflect.Sfixed32Kind, protoreflect.Sint32Kind:
		return protoreflect.ValueOfInt32(v.(int32)), nil
	case protoreflect.Int64Kind, protoreflect.Sfixed64Kind, protoreflect.Sint64Kind:
		return protoreflect.ValueOfInt64(v.(int64)), nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return protoreflect.ValueOfUint32(v.(uint32)), nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return protoreflect.ValueOfUint64(v.(uint64)), nil
	case protoreflect.FloatKind:
		return protoreflect.ValueOfFloat32(v.(float32)), nil
	case protoreflect.DoubleKind:
		return protoreflect.ValueOfFloat64(v.(float64)), nil
	case protoreflect.StringKind:
		return protoreflect.ValueOfString(v.(string)), nil
	case protoreflect.BytesKind:
		return protoreflect.ValueOfBytes(v.([]byte)), nil
	default:
		return protoreflect.Value{}, fmt.Errorf("%w: primitive kind %s", ErrUnsupportedFieldKind, kind)
	}
}

// decodeEnumByName resolves a decoded enum value name back to an
// EnumNumber. The bool return is false for the MissingEnumValue case (§7):
// the name does not exist in the enum, which callers handle without
// raising an error.
func decodeEnumByName(name string, enumDesc protoreflect.EnumDescriptor) (protoreflect.EnumNumber, bool) {
	ev := enumDesc.Values().ByName(protoreflect.Name(name))
	if ev == nil {
		return 0, false
	}
	return ev.Number(), true
}

// decodeDate converts a date32 day count to (year, month, day).
func decodeDate(days int32) (year, month, day int) {
	t := time.Unix(int64(days)*86400, 0).UTC()
	return t.Year(), int(t.Month()), t.Day()
}

// decodeTimestamp converts a tick count in unit u to a Timestamp's
// (seconds, nanos), with nanos normalized to [0, 1e9).
func decodeTimestamp(ticks int64, u TimestampUnit) (seconds, nanos int64) {
	totalNanos := ticks * u.nanosPerUnit()
	seconds = floorDiv(totalNanos, nanosPerSecond)
	nanos = totalNanos - seconds*nanosPerSecond
	return seconds, nanos
}

// decodeTimeOfDay converts a tick count in unit u to (hours, minutes,
// seconds, nanos) per spec.md §4.2's decode formulas.
func decodeTimeOfDay(ticks int64, u TimeUnit) (hours, minutes, seconds, nanos int64) {
	totalNanos := ticks * u.nanosPerUnit()
	hours = totalNanos / 3_600_000_000_000
	minutes = (totalNanos / 60_000_000_000) % 60
	seconds = (totalNanos / nanosPerSecond) % 60
	nanos = totalNanos % nanosPerSecond
	return hours, minutes, seconds, nanos
}

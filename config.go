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

// Package protarrow is a schema-driven codec between protobuf messages and
// Arrow record batches. It derives an Arrow schema from a protobuf message
// descriptor, builds a record batch from a sequence of messages, and
// reconstructs messages from a record batch.
package protarrow

import "github.com/apache/arrow-go/v18/arrow"

// TimestampUnit is the time resolution used for google.protobuf.Timestamp columns.
type TimestampUnit int

const (
	Nanosecond TimestampUnit = iota
	Microsecond
	Millisecond
	Second
)

// arrowUnit returns the arrow.TimeUnit equivalent of u.
func (u TimestampUnit) arrowUnit() arrow.TimeUnit {
	switch u {
	case Second:
		return arrow.Second
	case Millisecond:
		return arrow.Millisecond
	case Microsecond:
		return arrow.Microsecond
	default:
		return arrow.Nanosecond
	}
}

// nanosPerUnit is the number of nanoseconds in one tick of u.
func (u TimestampUnit) nanosPerUnit() int64 {
	switch u {
	case Second:
		return 1_000_000_000
	case Millisecond:
		return 1_000_000
	case Microsecond:
		return 1_000
	default:
		return 1
	}
}

// TimeUnit is the resolution used for google.type.TimeOfDay columns.
// Only microsecond and nanosecond precision are supported, matching the
// range of pyarrow's time64 type.
type TimeUnit int

const (
	TimeNanosecond TimeUnit = iota
	TimeMicrosecond
)

func (u TimeUnit) arrowUnit() arrow.TimeUnit {
	if u == TimeMicrosecond {
		return arrow.Microsecond
	}
	return arrow.Nanosecond
}

func (u TimeUnit) nanosPerUnit() int64 {
	if u == TimeMicrosecond {
		return 1_000
	}
	return 1
}

// EnumRepr selects how enum fields are represented as columns.
type EnumRepr int

const (
	// EnumAsBinary represents enum values as the UTF-8 name, stored as bytes.
	EnumAsBinary EnumRepr = iota
	// EnumAsInt32 represents enum values as their raw numeric value.
	EnumAsInt32
	// EnumAsString represents enum values as the name, stored as a string.
	EnumAsString
	// EnumAsDictionaryBinary dictionary-encodes the name as bytes.
	EnumAsDictionaryBinary
	// EnumAsDictionaryString dictionary-encodes the name as a string.
	EnumAsDictionaryString
)

// Config controls the lossy/variant parts of the descriptor-to-column
// mapping: enum representation and temporal column resolution. The zero
// value is not meaningful on its own; use DefaultConfig.
type Config struct {
	// TimestampUnit is the resolution of Timestamp columns. Default: Nanosecond.
	TimestampUnit TimestampUnit
	// TimestampTZ is the IANA zone stamped on the Timestamp column type. Default: "UTC".
	TimestampTZ string
	// TimeUnit is the resolution of TimeOfDay columns. Default: TimeNanosecond.
	TimeUnit TimeUnit
	// EnumRepr controls how enum fields appear as columns. Default: EnumAsBinary.
	EnumRepr EnumRepr
}

// DefaultConfig returns the default configuration: nanosecond timestamps in
// UTC, nanosecond time-of-day, and enums represented as name bytes.
func DefaultConfig() Config {
	return Config{
		TimestampUnit: Nanosecond,
		TimestampTZ:   "UTC",
		TimeUnit:      TimeNanosecond,
		EnumRepr:      EnumAsBinary,
	}
}

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

import "google.golang.org/protobuf/reflect/protoreflect"

// wellKnownKind identifies one of the closed set of message descriptors
// recognized specially by the codec instead of being treated as a nested
// struct.
type wellKnownKind int

const (
	notWellKnown wellKnownKind = iota
	wkDate
	wkTimestamp
	wkTimeOfDay
	wkWrapper
)

// wrapperFullNames is the closed set of single-field {T}Value wrapper
// messages, keyed by descriptor full name per the static registry design
// recommended in spec.md §9 ("Special-case table vs. open extension").
// Matching by full name (rather than importing the generated wrapperspb
// types and comparing *protoreflect.MessageDescriptor pointers) lets the
// codec recognize wrapper/temporal messages regardless of whether the
// caller's descriptor came from wrapperspb, a local .proto, or dynamicpb —
// all three produce distinct Go types sharing only their full name.
var wrapperFullNames = map[protoreflect.FullName]bool{
	"google.protobuf.BoolValue":   true,
	"google.protobuf.BytesValue":  true,
	"google.protobuf.DoubleValue": true,
	"google.protobuf.FloatValue":  true,
	"google.protobuf.Int32Value":  true,
	"google.protobuf.Int64Value":  true,
	"google.protobuf.StringValue": true,
	"google.protobuf.UInt32Value": true,
	"google.protobuf.UInt64Value": true,
}

const (
	dateFullName      protoreflect.FullName = "google.type.Date"
	timestampFullName protoreflect.FullName = "google.protobuf.Timestamp"
	timeOfDayFullName protoreflect.FullName = "google.type.TimeOfDay"
)

// classifyWellKnown reports which well-known kind, if any, desc belongs to.
func classifyWellKnown(desc protoreflect.MessageDescriptor) wellKnownKind {
	switch desc.FullName() {
	case dateFullName:
		return wkDate
	case timestampFullName:
		return wkTimestamp
	case timeOfDayFullName:
		return wkTimeOfDay
	}
	if wrapperFullNames[desc.FullName()] {
		return wkWrapper
	}
	return notWellKnown
}

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

// leafKind is the tagged union over field categories recommended by
// spec.md §9 ("A tagged union over field categories ... is a cleaner
// structure than nested conditional chains"). Cardinality (singular,
// repeated, map) is orthogonal and is inspected separately via
// protoreflect.FieldDescriptor.Cardinality/IsMap — protoreflect already
// carries that tag, so re-wrapping it here would just be a second copy of
// the same bit.
type leafKind int

const (
	leafPrimitive leafKind = iota
	leafEnum
	leafWrapper
	leafTemporal
	leafSubMessage
)

// leafCategory is the classification of a field's element type, ignoring
// cardinality.
type leafCategory struct {
	kind      leafKind
	wellKnown wellKnownKind // set when kind is leafWrapper or leafTemporal
}

// classifyLeaf classifies fd's element type. For map fields, pass the key
// or value FieldDescriptor (fd.MapKey()/fd.MapValue()), not fd itself.
func classifyLeaf(fd protoreflect.FieldDescriptor) leafCategory {
	switch fd.Kind() {
	case protoreflect.EnumKind:
		return leafCategory{kind: leafEnum}
	case protoreflect.MessageKind, protoreflect.GroupKind:
		wk := classifyWellKnown(fd.Message())
		switch wk {
		case wkWrapper:
			return leafCategory{kind: leafWrapper, wellKnown: wk}
		case wkDate, wkTimestamp, wkTimeOfDay:
			return leafCategory{kind: leafTemporal, wellKnown: wk}
		default:
			return leafCategory{kind: leafSubMessage}
		}
	default:
		return leafCategory{kind: leafPrimitive}
	}
}

// isSupportedPrimitive reports whether k is one of the primitive protobuf
// kinds spec.md §4.1 maps explicitly.
func isSupportedPrimitive(k protoreflect.Kind) bool {
	switch k {
	case protoreflect.DoubleKind, protoreflect.FloatKind,
		protoreflect.Int64Kind, protoreflect.Sfixed64Kind, protoreflect.Sint64Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind,
		protoreflect.Int32Kind, protoreflect.Sfixed32Kind, protoreflect.Sint32Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.BoolKind, protoreflect.StringKind, protoreflect.BytesKind:
		return true
	default:
		return false
	}
}

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
	"github.com/apache/arrow-go/v18/arrow"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// DescriptorToStructType derives the struct<...> Arrow type for a message
// descriptor (spec.md §4.5 SchemaDeriver), without the top-level unwrap
// into a record schema. Useful when the message in question is itself
// nested inside another schema being built by a caller.
func DescriptorToStructType(desc protoreflect.MessageDescriptor, cfg Config) (*arrow.StructType, error) {
	return messageStructType(desc, cfg)
}

// DescriptorToSchema derives the arrow.Schema a message descriptor maps to
// under cfg: the descriptor's top-level fields become the schema's columns,
// each nullable per fieldIsNullableAsStructChild.
func DescriptorToSchema(desc protoreflect.MessageDescriptor, cfg Config) (*arrow.Schema, error) {
	st, err := messageStructType(desc, cfg)
	if err != nil {
		return nil, err
	}
	fields := make([]arrow.Field, st.NumFields())
	for i := range fields {
		fields[i] = st.Field(i)
	}
	return arrow.NewSchema(fields, nil), nil
}

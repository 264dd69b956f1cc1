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
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// MessagesToRecordBatch is the forward entry point of TopLevelCodec (§4.6):
// it derives the schema from desc and builds one column per field,
// flattening messages into a single arrow.Record. A nil entry in messages
// is accepted and encodes as an entirely absent top-level row (struct,
// wrapper and temporal columns null, list and map columns empty, and
// primitive/enum columns their zero value).
func MessagesToRecordBatch(messages []protoreflect.Message, desc protoreflect.MessageDescriptor, cfg Config) (arrow.Record, error) {
	return buildRecordBatch(memory.NewGoAllocator(), messages, desc, cfg)
}

// MessagesToTable wraps MessagesToRecordBatch's output in a single-chunk
// arrow.Table.
func MessagesToTable(messages []protoreflect.Message, desc protoreflect.MessageDescriptor, cfg Config) (arrow.Table, error) {
	rec, err := MessagesToRecordBatch(messages, desc, cfg)
	if err != nil {
		return nil, err
	}
	defer rec.Release()
	return array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec}), nil
}

// RecordBatchToMessages is the reverse entry point of TopLevelCodec (§4.6):
// one message per row of rec, populated field by field from rec's columns.
func RecordBatchToMessages(rec arrow.Record, desc protoreflect.MessageDescriptor, cfg Config) ([]protoreflect.Message, error) {
	return extractMessages(rec, desc, cfg)
}

// TableToMessages extracts every chunk of tbl in row order, concatenating
// the resulting messages.
func TableToMessages(tbl arrow.Table, desc protoreflect.MessageDescriptor, cfg Config) ([]protoreflect.Message, error) {
	tr := array.NewTableReader(tbl, tbl.NumRows())
	defer tr.Release()

	var all []protoreflect.Message
	for tr.Next() {
		msgs, err := extractMessages(tr.Record(), desc, cfg)
		if err != nil {
			return nil, err
		}
		all = append(all, msgs...)
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

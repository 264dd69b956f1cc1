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

import "errors"

// Sentinel errors identifying the taxonomy a caller can match with errors.Is.
// MissingEnumValue and UnknownColumn are deliberately absent: per spec they
// are not errors, they are silently-handled decode outcomes.
var (
	// ErrUnsupportedFieldKind is returned for a primitive type outside the
	// supported set, or an enum representation outside Config.EnumRepr.
	ErrUnsupportedFieldKind = errors.New("protarrow: unsupported field kind")

	// ErrTypeMismatch is returned when a column's Arrow type does not match
	// the type the descriptor prescribes for it.
	ErrTypeMismatch = errors.New("protarrow: column type does not match descriptor")

	// ErrInvalidMapKey is returned when a null key is encountered while
	// extracting a map column.
	ErrInvalidMapKey = errors.New("protarrow: map column has a null key")

	// ErrNumericRange is returned when rescaling a temporal value to the
	// configured unit would overflow an int64.
	ErrNumericRange = errors.New("protarrow: numeric value out of range during unit rescale")
)

/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package protarrow

import (
	"testing"

	"github.com/chasezheng/protarrow/internal/fixtures"
)

func newFixtures(t *testing.T) *fixtures.Set {
	t.Helper()
	set, err := fixtures.Build()
	if err != nil {
		t.Fatalf("building fixture descriptors: %v", err)
	}
	return set
}

/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package protarrow

import (
	"testing"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{0, 5, 0},
		{6, 3, 2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSecondsNanosToNanos(t *testing.T) {
	if _, err := secondsNanosToNanos(1<<62, 0); err == nil {
		t.Error("expected overflow error for huge seconds, got nil")
	}
	got, err := secondsNanosToNanos(5, 500_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := int64(5_500_000_000); got != want {
		t.Errorf("secondsNanosToNanos(5, 5e8) = %d, want %d", got, want)
	}
}

func TestEncodeDateYearZeroQuirk(t *testing.T) {
	set := newFixtures(t)
	dateDesc := set.Temporal.Fields().ByName("day").Message()

	zero := dynamicpb.NewMessage(dateDesc)
	if _, ok := encodeDate(zero); ok {
		t.Error("encodeDate with year=0 should report ok=false")
	}

	real := dynamicpb.NewMessage(dateDesc)
	fields := dateDesc.Fields()
	real.Set(fields.ByName("year"), protoreflect.ValueOfInt32(2024))
	real.Set(fields.ByName("month"), protoreflect.ValueOfInt32(3))
	real.Set(fields.ByName("day"), protoreflect.ValueOfInt32(15))
	days, ok := encodeDate(real)
	if !ok {
		t.Fatal("encodeDate with a real date should report ok=true")
	}
	y, m, d := decodeDate(days)
	if y != 2024 || m != 3 || d != 15 {
		t.Errorf("round trip = (%d,%d,%d), want (2024,3,15)", y, m, d)
	}
}

func TestDecodeTimeOfDayFormulas(t *testing.T) {
	ticks := int64(((1*60+2)*60+3)*nanosPerSecond + 4)
	h, m, s, n := decodeTimeOfDay(ticks, TimeNanosecond)
	if h != 1 || m != 2 || s != 3 || n != 4 {
		t.Errorf("decodeTimeOfDay = (%d,%d,%d,%d), want (1,2,3,4)", h, m, s, n)
	}
}

func TestEncodeTimeOfDayUnitRescale(t *testing.T) {
	totalNanos := int64(((1*60+2)*60+3)*nanosPerSecond + 4)
	got := floorDiv(totalNanos, TimeMicrosecond.nanosPerUnit())
	want := totalNanos / 1000
	if got != want {
		t.Errorf("unit rescale = %d, want %d", got, want)
	}
}

func TestTimestampRoundTripAcrossUnits(t *testing.T) {
	for _, u := range []TimestampUnit{Second, Millisecond, Microsecond, Nanosecond} {
		ticks := floorDiv(1_234_500_000_000, u.nanosPerUnit())
		seconds, nanos := decodeTimestamp(ticks, u)
		gotTotal, err := secondsNanosToNanos(seconds, nanos)
		if err != nil {
			t.Fatalf("unit %d: %v", u, err)
		}
		wantTotal := floorDiv(1_234_500_000_000, u.nanosPerUnit()) * u.nanosPerUnit()
		if gotTotal != wantTotal {
			t.Errorf("unit %d: round trip total = %d, want %d", u, gotTotal, wantTotal)
		}
	}
}

package dexshare

import (
	"errors"
	"math"
	"testing"
	"time"
)

func validRecord() RawRecord {
	return RawRecord{
		WT:    "Date(1691455258000)",
		ST:    "Date(1691455258000)",
		DT:    "Date(1691455258000-0400)",
		Value: 120,
		Trend: "Flat",
	}
}

func TestParseReading(t *testing.T) {
	reading, err := ParseReading(validRecord())
	if err != nil {
		t.Fatalf("ParseReading error: %v", err)
	}

	if reading.MgDl() != 120 {
		t.Fatalf("MgDl() = %d, want 120", reading.MgDl())
	}
	if reading.Trend() != TrendFlat {
		t.Fatalf("Trend() = %v, want TrendFlat", reading.Trend())
	}
	if got := reading.MmolL(); got != 6.7 {
		t.Fatalf("MmolL() = %v, want 6.7", got)
	}
	if reading.String() != "120" {
		t.Fatalf("String() = %q, want %q", reading.String(), "120")
	}

	wantTime := time.UnixMilli(1691455258000)
	if !reading.Timestamp().Equal(wantTime) {
		t.Fatalf("Timestamp() = %v, want %v", reading.Timestamp(), wantTime)
	}
	_, offset := reading.Timestamp().Zone()
	if offset != -4*3600 {
		t.Fatalf("zone offset = %d, want %d", offset, -4*3600)
	}
}

func TestParseReadingTimestampWithoutZone(t *testing.T) {
	record := validRecord()
	record.DT = "/Date(1691455258000)/"

	reading, err := ParseReading(record)
	if err != nil {
		t.Fatalf("ParseReading error: %v", err)
	}

	_, offset := reading.Timestamp().Zone()
	if offset != 0 {
		t.Fatalf("zone offset = %d, want 0 (UTC)", offset)
	}
}

func TestParseReadingInvalid(t *testing.T) {
	cases := map[string]RawRecord{
		"unknown trend": func() RawRecord {
			r := validRecord()
			r.Trend = "Sideways"
			return r
		}(),
		"bad timestamp": func() RawRecord {
			r := validRecord()
			r.DT = "2023-08-08T00:00:58Z"
			return r
		}(),
		"negative value": func() RawRecord {
			r := validRecord()
			r.Value = -1
			return r
		}(),
	}

	for name, record := range cases {
		_, err := ParseReading(record)
		if err == nil {
			t.Fatalf("%s: ParseReading should fail", name)
		}
		var argErr *ArgumentError
		if !errors.As(err, &argErr) {
			t.Fatalf("%s: error = %T, want *ArgumentError", name, err)
		}
		if argErr.Reason != ReasonReadingInvalid {
			t.Fatalf("%s: reason = %q, want %q", name, argErr.Reason, ReasonReadingInvalid)
		}
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	for mgdl := 20; mgdl <= 400; mgdl++ {
		mmol := MmolLFromMgDl(mgdl)
		back := MgDlFromMmolL(mmol)

		// One decimal of mmol/L is about 1.8 mg/dL of resolution.
		if math.Abs(float64(back-mgdl)) > 1 {
			t.Fatalf("round trip %d mg/dL -> %v mmol/L -> %d mg/dL", mgdl, mmol, back)
		}
	}
}

func TestMmolLRounding(t *testing.T) {
	cases := []struct {
		mgdl int
		want float64
	}{
		{100, 5.6},
		{120, 6.7},
		{55, 3.1},
		{400, 22.2},
		{0, 0},
	}

	for _, tc := range cases {
		if got := MmolLFromMgDl(tc.mgdl); got != tc.want {
			t.Fatalf("MmolLFromMgDl(%d) = %v, want %v", tc.mgdl, got, tc.want)
		}
	}
}

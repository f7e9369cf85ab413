package dexshare

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// RawRecord is one glucose reading exactly as the Share API returns it.
type RawRecord struct {
	WT    string `json:"WT"`
	ST    string `json:"ST"`
	DT    string `json:"DT"`
	Value int    `json:"Value"`
	Trend string `json:"Trend"`
}

// Reading is a parsed glucose reading. Immutable; the secondary unit and the
// trend description/arrow are derived on access so they always agree with the
// stored value and trend code.
type Reading struct {
	mgdl      int
	trend     Trend
	timestamp time.Time
	raw       RawRecord
}

// wireDateRe matches the vendor's .NET-style JSON date, e.g.
// "/Date(1691455258000-0400)/". The timezone suffix is absent on some
// deployments; those timestamps are taken as UTC.
var wireDateRe = regexp.MustCompile(`Date\((\d+)([+-]\d{4})?\)`)

// ParseReading converts one raw Share API record into a Reading. A negative
// value, an unknown trend direction, or an unparseable timestamp fails with an
// ArgumentError rather than producing a partially valid reading.
func ParseReading(raw RawRecord) (*Reading, error) {
	if raw.Value < 0 {
		return nil, newArgumentError(ReasonReadingInvalid, "negative glucose value")
	}

	trend, err := ParseTrend(raw.Trend)
	if err != nil {
		return nil, newArgumentError(ReasonReadingInvalid, "trend "+strconv.Quote(raw.Trend))
	}

	timestamp, err := parseWireDate(raw.DT)
	if err != nil {
		return nil, newArgumentError(ReasonReadingInvalid, "timestamp "+strconv.Quote(raw.DT))
	}

	return &Reading{
		mgdl:      raw.Value,
		trend:     trend,
		timestamp: timestamp,
		raw:       raw,
	}, nil
}

func parseWireDate(s string) (time.Time, error) {
	match := wireDateRe.FindStringSubmatch(s)
	if match == nil {
		return time.Time{}, fmt.Errorf("timestamp %q not in Date(ms) form", s)
	}

	millis, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}

	loc := time.UTC
	if tz := match[2]; tz != "" {
		hours, _ := strconv.Atoi(tz[1:3])
		minutes, _ := strconv.Atoi(tz[3:5])
		offset := hours*3600 + minutes*60
		if tz[0] == '-' {
			offset = -offset
		}
		loc = time.FixedZone(tz, offset)
	}

	return time.UnixMilli(millis).In(loc), nil
}

// MgDl returns the glucose value in mg/dL, the unit the API reports.
func (r *Reading) MgDl() int {
	return r.mgdl
}

// MmolL returns the glucose value converted to mmol/L.
func (r *Reading) MmolL() float64 {
	return MmolLFromMgDl(r.mgdl)
}

// Trend returns the rate-of-change trend code.
func (r *Reading) Trend() Trend {
	return r.trend
}

// Timestamp returns the wall-clock time the reading was recorded, in the
// zone the server reported it.
func (r *Reading) Timestamp() time.Time {
	return r.timestamp
}

// Raw returns the record as received from the API.
func (r *Reading) Raw() RawRecord {
	return r.raw
}

func (r *Reading) String() string {
	return strconv.Itoa(r.mgdl)
}

// MmolLFromMgDl converts mg/dL to mmol/L, rounded to one decimal place.
func MmolLFromMgDl(mgdl int) float64 {
	return math.Round(float64(mgdl)*MmolLFactor*10) / 10
}

// MgDlFromMmolL converts mmol/L back to mg/dL, rounded to the nearest whole
// number. Inverse of MmolLFromMgDl up to rounding.
func MgDlFromMmolL(mmol float64) int {
	return int(math.Round(mmol / MmolLFactor))
}

package dexshare

import "fmt"

// Trend is the rate-of-change direction attached to every reading. The Share
// API reports it as a direction string; older firmware reported the integer
// directly, so the numeric values below are fixed and must not be reordered.
type Trend int

const (
	TrendNone Trend = iota
	TrendDoubleUp
	TrendSingleUp
	TrendFortyFiveUp
	TrendFlat
	TrendFortyFiveDown
	TrendSingleDown
	TrendDoubleDown
	TrendNotComputable
	TrendRateOutOfRange
)

var trendDirections = map[string]Trend{
	"None":           TrendNone,
	"DoubleUp":       TrendDoubleUp,
	"SingleUp":       TrendSingleUp,
	"FortyFiveUp":    TrendFortyFiveUp,
	"Flat":           TrendFlat,
	"FortyFiveDown":  TrendFortyFiveDown,
	"SingleDown":     TrendSingleDown,
	"DoubleDown":     TrendDoubleDown,
	"NotComputable":  TrendNotComputable,
	"RateOutOfRange": TrendRateOutOfRange,
}

var trendNames = [...]string{
	"None",
	"DoubleUp",
	"SingleUp",
	"FortyFiveUp",
	"Flat",
	"FortyFiveDown",
	"SingleDown",
	"DoubleDown",
	"NotComputable",
	"RateOutOfRange",
}

var trendDescriptions = [...]string{
	"",
	"rising quickly",
	"rising",
	"rising slightly",
	"steady",
	"falling slightly",
	"falling",
	"falling quickly",
	"unable to determine trend",
	"trend unavailable",
}

var trendArrows = [...]string{"", "↑↑", "↑", "↗", "→", "↘", "↓", "↓↓", "?", "-"}

// ParseTrend maps a Share API direction string to its Trend. Directions
// outside the closed set fail rather than defaulting.
func ParseTrend(direction string) (Trend, error) {
	trend, ok := trendDirections[direction]
	if !ok {
		return 0, newArgumentError(ReasonTrendInvalid, fmt.Sprintf("unknown trend direction %q", direction))
	}
	return trend, nil
}

// Valid reports whether t is one of the ten known trend codes.
func (t Trend) Valid() bool {
	return t >= TrendNone && t <= TrendRateOutOfRange
}

// String returns the Share API direction name, or a decimal fallback for
// out-of-range codes.
func (t Trend) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Trend(%d)", int(t))
	}
	return trendNames[t]
}

// Description returns a human-readable description of the trend, empty for
// TrendNone.
func (t Trend) Description() string {
	if !t.Valid() {
		return ""
	}
	return trendDescriptions[t]
}

// Arrow returns the unicode arrow for the trend, empty for TrendNone.
func (t Trend) Arrow() string {
	if !t.Valid() {
		return ""
	}
	return trendArrows[t]
}

package record

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Reference-range grammars seen in upstream lab metadata, tried in order.
// The format is not contractually guaranteed, so parsing is best-effort and
// fails open to an unbounded range rather than blocking record assembly.
var (
	refRangeRe   = regexp.MustCompile(`^([0-9.]+)\s*[-–]\s*([0-9.]+)$`)
	refUpToRe    = regexp.MustCompile(`(?i)^(?:hasta|<)\s*([0-9.]+)$`)
	refGreaterRe = regexp.MustCompile(`^>\s*([0-9.]+)$`)
)

// ParseReferenceValue parses a free-text reference range ("0.7 - 1.1",
// "Hasta 200", "< 129", "> 40") into a numeric pair. Unparseable input
// yields {0, +Inf}; it never fails.
func ParseReferenceValue(ref string) (min, max float64) {
	trimmed := strings.TrimSpace(ref)

	if m := refRangeRe.FindStringSubmatch(trimmed); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return lo, hi
		}
	}

	if m := refUpToRe.FindStringSubmatch(trimmed); m != nil {
		if hi, err := strconv.ParseFloat(m[1], 64); err == nil {
			return 0, hi
		}
	}

	if m := refGreaterRe.FindStringSubmatch(trimmed); m != nil {
		if lo, err := strconv.ParseFloat(m[1], 64); err == nil {
			return lo, math.Inf(1)
		}
	}

	return 0, math.Inf(1)
}

// AlertPolicy widens a reference range by fixed factors to separate "flag
// for attention" from "requires urgent attention". The factors are heuristic
// and therefore configurable.
type AlertPolicy struct {
	CritLowFactor  float64
	CritHighFactor float64
}

// DefaultAlertPolicy is the 20% widening used when no override is configured.
var DefaultAlertPolicy = AlertPolicy{CritLowFactor: 0.8, CritHighFactor: 1.2}

// Classify grades a lab value against its reference range. Degenerate
// ranges (negative bounds) are un-evaluable and grade normal. max may be
// +Inf for single-sided ranges.
func (p AlertPolicy) Classify(value, min, max float64) Alert {
	if min < 0 || (max < 0 && !math.IsInf(max, 1)) {
		return AlertNormal
	}
	if math.IsInf(max, 1) && value >= min {
		return AlertNormal
	}

	critLow := min
	if min > 0 {
		critLow = min * p.CritLowFactor
	}
	critHigh := math.Inf(1)
	if !math.IsInf(max, 1) {
		critHigh = max * p.CritHighFactor
	}

	switch {
	case value < critLow || value > critHigh:
		return AlertCritical
	case value < min || value > max:
		return AlertWarning
	default:
		return AlertNormal
	}
}

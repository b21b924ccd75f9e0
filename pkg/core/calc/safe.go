package calc

import "math"

// =============================================================================
// NULL-SAFE ARITHMETIC - Division, trends and traffic lights
// =============================================================================

// SafeDiv divides n by d, returning nil when either operand is nil or the
// divisor is zero. It never returns infinity.
func SafeDiv(n, d *float64) *float64 {
	if n == nil || d == nil || *d == 0 {
		return nil
	}
	v := *n / *d
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Pct is SafeDiv scaled to a percentage.
func Pct(n, d *float64) *float64 {
	v := SafeDiv(n, d)
	if v == nil {
		return nil
	}
	p := *v * 100
	return &p
}

// PctChange is the period-over-period percentage change, nil when the prior
// value is nil or zero.
func PctChange(current, prior *float64) *float64 {
	if current == nil || prior == nil || *prior == 0 {
		return nil
	}
	p := (*current - *prior) / math.Abs(*prior) * 100
	return &p
}

// TrendOf classifies the movement between two values. Differences under
// 0.001 count as flat.
func TrendOf(current, prior *float64, higherIsBetter bool) TrendDir {
	if current == nil || prior == nil {
		return TrendUnknown
	}
	diff := *current - *prior
	if math.Abs(diff) < 0.001 {
		return TrendFlat
	}
	up := diff > 0
	if !higherIsBetter {
		up = !up
	}
	if up {
		return TrendUp
	}
	return TrendDown
}

// trafficHigher grades a higher-is-better value: green at or above the green
// threshold, amber at or above the amber threshold, red below. Grey on nil.
func trafficHigher(v *float64, green, amber float64) Status {
	if v == nil {
		return StatusGrey
	}
	switch {
	case *v >= green:
		return StatusGreen
	case *v >= amber:
		return StatusAmber
	default:
		return StatusRed
	}
}

// trafficLower grades a lower-is-better value.
func trafficLower(v *float64, green, amber float64) Status {
	if v == nil {
		return StatusGrey
	}
	switch {
	case *v <= green:
		return StatusGreen
	case *v <= amber:
		return StatusAmber
	default:
		return StatusRed
	}
}

// trafficRange grades a value against a [low, high] band: green inside,
// amber within slack of either edge, red beyond.
func trafficRange(v *float64, low, high, slack float64) Status {
	if v == nil {
		return StatusGrey
	}
	switch {
	case *v >= low && *v <= high:
		return StatusGreen
	case *v >= low-slack && *v <= high+slack:
		return StatusAmber
	default:
		return StatusRed
	}
}

func ptr(v float64) *float64 { return &v }

func subPtr(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}

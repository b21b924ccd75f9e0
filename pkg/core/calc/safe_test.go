package calc

import "testing"

func f(v float64) *float64 { return &v }

func TestSafeDiv(t *testing.T) {
	if v := SafeDiv(f(10), f(4)); v == nil || *v != 2.5 {
		t.Errorf("10/4 = %v, want 2.5", v)
	}
	if v := SafeDiv(f(10), f(0)); v != nil {
		t.Errorf("division by zero must be nil, got %v", *v)
	}
	if v := SafeDiv(nil, f(4)); v != nil {
		t.Errorf("nil numerator must be nil, got %v", *v)
	}
	if v := SafeDiv(f(10), nil); v != nil {
		t.Errorf("nil divisor must be nil, got %v", *v)
	}
}

func TestPct(t *testing.T) {
	// 1,650,000 / 2,850,000 = 57.894...%
	v := Pct(f(1650000), f(2850000))
	if v == nil || *v < 57.89 || *v > 57.90 {
		t.Errorf("got %v, want ~57.89", v)
	}
}

func TestPctChange(t *testing.T) {
	// (2,850,000 - 2,600,000) / 2,600,000 = 9.615...%
	v := PctChange(f(2850000), f(2600000))
	if v == nil || *v < 9.61 || *v > 9.62 {
		t.Errorf("got %v, want ~9.615", v)
	}
	if v := PctChange(f(100), f(0)); v != nil {
		t.Errorf("zero prior must be nil, got %v", *v)
	}
	// Negative prior: change measured against its magnitude.
	v = PctChange(f(-50), f(-100))
	if v == nil || *v != 50 {
		t.Errorf("got %v, want 50", v)
	}
}

func TestTrendOf(t *testing.T) {
	if got := TrendOf(f(2), f(1), true); got != TrendUp {
		t.Errorf("got %s, want up", got)
	}
	if got := TrendOf(f(2), f(1), false); got != TrendDown {
		t.Errorf("lower-is-better inverts direction, got %s", got)
	}
	if got := TrendOf(f(1.0000001), f(1), true); got != TrendFlat {
		t.Errorf("tiny differences are flat, got %s", got)
	}
	if got := TrendOf(nil, f(1), true); got != TrendUnknown {
		t.Errorf("got %s, want unknown", got)
	}
}

func TestTrafficLights(t *testing.T) {
	if got := trafficHigher(f(2.5), 2.0, 1.0); got != StatusGreen {
		t.Errorf("got %s, want green", got)
	}
	if got := trafficHigher(f(1.5), 2.0, 1.0); got != StatusAmber {
		t.Errorf("got %s, want amber", got)
	}
	if got := trafficHigher(f(0.8), 2.0, 1.0); got != StatusRed {
		t.Errorf("got %s, want red", got)
	}
	if got := trafficHigher(nil, 2.0, 1.0); got != StatusGrey {
		t.Errorf("nil must be grey, never guessed, got %s", got)
	}
	if got := trafficLower(f(25), 30, 60); got != StatusGreen {
		t.Errorf("got %s, want green", got)
	}
	if got := trafficRange(f(35), 30, 40, 2); got != StatusGreen {
		t.Errorf("got %s, want green", got)
	}
	if got := trafficRange(f(41), 30, 40, 2); got != StatusAmber {
		t.Errorf("got %s, want amber", got)
	}
	if got := trafficRange(f(45), 30, 40, 2); got != StatusRed {
		t.Errorf("got %s, want red", got)
	}
}

package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	for _, tier := range Tiers {
		got, err := ParseTier(string(tier))
		if err != nil || got != tier {
			t.Fatalf("ParseTier(%s) = %v, %v", tier, got, err)
		}
	}
	if _, err := ParseTier("enterprise"); err == nil {
		t.Fatal("unknown tier should fail to parse")
	}
	if _, err := ParseTier(""); err == nil {
		t.Fatal("empty tier should fail to parse")
	}
}

func TestParseFeature(t *testing.T) {
	t.Parallel()

	for _, f := range Features {
		got, err := ParseFeature(string(f))
		if err != nil || got != f {
			t.Fatalf("ParseFeature(%s) = %v, %v", f, got, err)
		}
	}
	if _, err := ParseFeature("time_travel"); err == nil {
		t.Fatal("unknown feature should fail to parse")
	}
}

func TestSeriesTail(t *testing.T) {
	t.Parallel()

	s := make(Series, 10)
	if got := s.Tail(3); len(got) != 3 {
		t.Fatalf("Tail(3) length = %d", len(got))
	}
	if got := s.Tail(20); len(got) != 10 {
		t.Fatalf("Tail past length should return everything, got %d", len(got))
	}
	if got := s.Tail(0); len(got) != 10 {
		t.Fatalf("Tail(0) should return everything, got %d", len(got))
	}
}

func TestFloatSeriesJSONRoundTrip(t *testing.T) {
	t.Parallel()

	in := FloatSeries{math.NaN(), 1.5, math.NaN(), -2}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[null,1.5,null,-2]" {
		t.Fatalf("unexpected JSON: %s", data)
	}

	var out FloatSeries
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 || !math.IsNaN(out[0]) || out[1] != 1.5 || !math.IsNaN(out[2]) || out[3] != -2 {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

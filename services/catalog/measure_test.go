package catalog

import (
	"math"
	"testing"
)

func TestParseMeasure(t *testing.T) {
	cases := []struct {
		measure  string
		quantity float64
		unit     string
	}{
		{"1 cup", 1, "cup"},
		{"250g", 250, "g"},
		{"3/4 cup", 0.75, "cup"},
		{"1 1/2 tbsp", 1.5, "tbsp"},
		{"1.5 kg", 1.5, "kg"},
		{".5 tsp", 0.5, "tsp"},
		{"2", 2, "piece"},
		{"  4 large ", 4, "large"},
		{"Pinch", 1, "piece"},
		{"to taste", 1, "piece"},
		{"", 1, "piece"},
		{"1/0 cup", 1, "piece"},
	}
	for _, c := range cases {
		quantity, unit := ParseMeasure(c.measure)
		if math.Abs(quantity-c.quantity) > 1e-9 || unit != c.unit {
			t.Errorf("ParseMeasure(%q) = (%v, %q), want (%v, %q)", c.measure, quantity, unit, c.quantity, c.unit)
		}
	}
}

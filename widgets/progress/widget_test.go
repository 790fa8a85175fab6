package progress

import "testing"

func TestFillWidth(t *testing.T) {
	tests := []struct {
		fraction float64
		want     int32
	}{
		{-1, 0},
		{0, 0},
		{1.0 / 3, 100},
		{0.5, 150},
		{1, 300},
		{2, 300},
	}
	for _, tc := range tests {
		if got := FillWidth(300, tc.fraction); got != tc.want {
			t.Errorf("FillWidth(300, %v) = %d, want %d", tc.fraction, got, tc.want)
		}
	}
}

package ranking

import "testing"

func f(v float64) *float64 { return &v }

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		position *float64
		volume   *float64
		want     int
	}{
		{"top three high volume", f(2), f(12000), 150},
		{"position boundary three", f(3), nil, 100},
		{"position boundary ten", f(10), nil, 70},
		{"position boundary twenty", f(20), nil, 40},
		{"position boundary fifty", f(50), nil, 20},
		{"position beyond fifty", f(51), nil, 5},
		{"fractional position", f(3.4), nil, 70},
		{"nil position", nil, nil, 0},
		{"volume boundary 10000", nil, f(10000), 50},
		{"volume boundary 5000", nil, f(5000), 40},
		{"volume boundary 1000", nil, f(1000), 30},
		{"volume boundary 500", nil, f(500), 20},
		{"volume boundary 100", nil, f(100), 10},
		{"tiny volume", nil, f(1), 5},
		{"zero volume", nil, f(0), 0},
		{"mid position mid volume", f(15), f(800), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.position, tt.volume); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

package analytics

import (
	"reflect"
	"testing"
)

func TestSessionProgress(t *testing.T) {
	tests := []struct {
		name  string
		ticks [][2]float64 // current, duration
		want  [][]float64  // fired per tick
	}{
		{
			name:  "milestones fire in ascending order",
			ticks: [][2]float64{{80, 100}},
			want:  [][]float64{{0.25, 0.50, 0.75}},
		},
		{
			name:  "each threshold fires once",
			ticks: [][2]float64{{30, 100}, {30, 100}, {60, 100}, {60, 100}, {99, 100}},
			want:  [][]float64{{0.25}, nil, {0.50}, nil, {0.75}},
		},
		{
			name:  "zero duration fires nothing",
			ticks: [][2]float64{{50, 0}, {50, -1}},
			want:  [][]float64{nil, nil},
		},
		{
			name:  "progress below first threshold",
			ticks: [][2]float64{{10, 100}, {24.9, 100}},
			want:  [][]float64{nil, nil},
		},
		{
			name:  "seeking backwards does not refire",
			ticks: [][2]float64{{60, 100}, {10, 100}, {80, 100}},
			want:  [][]float64{{0.25, 0.50}, nil, {0.75}},
		},
		{
			name:  "exact threshold boundary fires",
			ticks: [][2]float64{{25, 100}},
			want:  [][]float64{{0.25}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newSession()
			for i, tick := range tt.ticks {
				got := session.Progress(tick[0], tick[1])
				if !reflect.DeepEqual(got, tt.want[i]) {
					t.Errorf("Progress(%v, %v) tick %d = %v, want %v",
						tick[0], tick[1], i, got, tt.want[i])
				}
			}
		})
	}
}

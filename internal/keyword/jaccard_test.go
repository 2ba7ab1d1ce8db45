package keyword

import (
	"math"
	"testing"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
		{"disjoint", []string{"a", "b"}, []string{"c"}, 0},
		{"identical", []string{"a", "b"}, []string{"b", "a"}, 1},
		{"partial", []string{"running", "shoes", "nike"}, []string{"running", "athletic", "nike"}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(NewSet(tt.a), NewSet(tt.b))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}


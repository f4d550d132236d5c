package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   Description
	}{
		{name: "empty", values: nil, want: Description{}},
		{name: "single value has no spread", values: []int{5}, want: Description{Count: 1, Total: 5, Mean: 5}},
		{name: "constant ratings", values: []int{4, 4, 4, 4}, want: Description{Count: 4, Total: 16, Mean: 4}},
		{name: "sample deviation", values: []int{2, 4, 4, 4, 5, 5, 7, 9}, want: Description{Count: 8, Total: 40, Mean: 5, SD: math.Sqrt(32.0 / 7.0)}},
		{name: "two ratings", values: []int{1, 7}, want: Description{Count: 2, Total: 8, Mean: 4, SD: math.Sqrt(18)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.values)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.Equal(t, tt.want.Total, got.Total)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.want.SD, got.SD, 1e-9)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.33, Round(10.0/3.0, 2))
	assert.Equal(t, 1.67, Round(5.0/3.0, 2))
	assert.Equal(t, 2.0, Round(2, 2))
}

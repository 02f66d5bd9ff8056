package reliability_test

import (
	"testing"

	"github.com/library-circulation/go-api-server/internal/reliability"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	testCases := []struct {
		name      string
		onTime    uint32
		completed uint32
		expected  float64
	}{
		{name: "no completed loans", onTime: 0, completed: 0, expected: 0},
		{name: "three of four on time", onTime: 3, completed: 4, expected: 75},
		{name: "all on time", onTime: 5, completed: 5, expected: 100},
		{name: "none on time", onTime: 0, completed: 3, expected: 0},
		{name: "counter above completed is clamped", onTime: 7, completed: 5, expected: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, reliability.Compute(tc.onTime, tc.completed), 1e-9)
		})
	}
}

func TestEligible(t *testing.T) {
	// Brand-new member with score 0 is eligible
	assert.True(t, reliability.Eligible(0, 0, 30))

	// Existing loans gate on the threshold
	assert.False(t, reliability.Eligible(1, 0, 30))
	assert.False(t, reliability.Eligible(4, 29.99, 30))
	assert.True(t, reliability.Eligible(4, 30, 30))
	assert.True(t, reliability.Eligible(4, 75, 30))
}

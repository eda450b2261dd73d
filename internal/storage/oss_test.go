package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		consumed int64
		total    int64
		want     int
	}{
		{"zero total", 100, 0, 0},
		{"negative total", 100, -1, 0},
		{"start", 0, 200, 0},
		{"halfway", 100, 200, 50},
		{"complete", 200, 200, 100},
		{"overshoot clamps", 300, 200, 100},
		{"negative consumed clamps", -10, 200, 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Percent(tc.consumed, tc.total))
		})
	}
}

package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "середина дня",
			in:   time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC),
			want: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "ровно полночь",
			in:   time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "другой часовой пояс приводится к UTC",
			in:   time.Date(2024, 5, 10, 1, 0, 0, 0, msk),
			want: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "последняя наносекунда суток",
			in:   time.Date(2024, 12, 31, 23, 59, 59, 999999999, time.UTC),
			want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startOfDay(tt.in))
		})
	}
}

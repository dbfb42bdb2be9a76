package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     types.TimeString
		want                           bool
	}{
		{name: "identical intervals", aStart: "10:00", aEnd: "10:30", bStart: "10:00", bEnd: "10:30", want: true},
		{name: "partial overlap", aStart: "11:20", aEnd: "11:40", bStart: "11:30", bEnd: "12:00", want: true},
		{name: "contained interval", aStart: "10:00", aEnd: "12:00", bStart: "10:30", bEnd: "11:00", want: true},
		{name: "touching endpoints do not overlap", aStart: "11:00", aEnd: "11:30", bStart: "11:30", bEnd: "12:00", want: false},
		{name: "touching endpoints reversed", aStart: "11:30", aEnd: "12:00", bStart: "11:00", bEnd: "11:30", want: false},
		{name: "disjoint intervals", aStart: "09:00", aEnd: "09:30", bStart: "14:00", bEnd: "14:30", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestCountOverlapping(t *testing.T) {
	lines := []BookingServiceLine{
		{StartTime: "10:00", EndTime: "10:30"},
		{StartTime: "10:00", EndTime: "11:00"},
		{StartTime: "10:30", EndTime: "11:00"},
		{StartTime: "14:00", EndTime: "15:00"},
	}

	tests := []struct {
		name       string
		start, end types.TimeString
		want       int
	}{
		{name: "first slot counts two bookings", start: "10:00", end: "10:30", want: 2},
		{name: "second slot counts two bookings", start: "10:30", end: "11:00", want: 2},
		{name: "touching slot counts none", start: "11:00", end: "11:30", want: 0},
		{name: "afternoon slot counts one", start: "14:30", end: "15:00", want: 1},
		{name: "free slot", start: "12:00", end: "12:30", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountOverlapping(lines, tt.start, tt.end))
		})
	}

	assert.Equal(t, 0, CountOverlapping(nil, "10:00", "10:30"))
}

package domain_test

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/elsabor-web/internal/domain"
)

func TestStartOfTomorrow(t *testing.T) {
	now := time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC)
	got := domain.StartOfTomorrow(now)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestScheduleReservation(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, time.October, 19, 15, 30, 0, 0, loc)

	tests := []struct {
		name    string
		date    string
		hour    string
		wantErr bool
	}{
		{"day after tomorrow", "2026-10-21", "20:30", false},
		{"tomorrow evening", "2026-10-20", "20:30", false},
		{"tomorrow one minute past midnight", "2026-10-20", "00:01", false},
		{"tomorrow at midnight exactly", "2026-10-20", "00:00", true},
		{"later today", "2026-10-19", "22:00", true},
		{"yesterday", "2026-10-18", "20:00", true},
		{"unparseable date", "21/10/2026", "20:30", true},
		{"impossible date", "2026-02-30", "20:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.ReservationReq{Name: "Ana", Date: tt.date, Time: tt.hour, PartySize: 2}
			res, err := domain.ScheduleReservation(req, now, loc)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidDateTime))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", res.Name)
			assert.True(t, res.ScheduledAt.After(domain.StartOfTomorrow(now)))
		})
	}
}

func TestScheduleReservation_UsesLocation(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*60*60)
	// 23:30 UTC on the 19th is already the 20th in Madrid.
	now := time.Date(2026, time.October, 19, 23, 30, 0, 0, time.UTC)

	_, err := domain.ScheduleReservation(domain.ReservationReq{Date: "2026-10-21", Time: "00:00"}, now, madrid)
	require.Error(t, err)

	res, err := domain.ScheduleReservation(domain.ReservationReq{Date: "2026-10-21", Time: "00:30"}, now, madrid)
	require.NoError(t, err)
	assert.Equal(t, madrid, res.ScheduledAt.Location())
}

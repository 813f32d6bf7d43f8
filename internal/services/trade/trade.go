package trade

import (
	"context"
	"time"

	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/BearBump/ShipperBox/internal/clock"
	"github.com/pkg/errors"
)

const (
	// торги идут до 15:30 по местному времени
	tradeCutoff = 15*time.Hour + 30*time.Minute
	// после 15:00 заявка уходит на следующий торговый день
	settlementCutoff = 15 * time.Hour
)

type HolidayRepository interface {
	GetHolidays(ctx context.Context, year int, month time.Month) ([]time.Time, error)
}

// Service answers whether trading is open at the current moment.
type Service struct {
	clock    clock.Clock
	holidays HolidayRepository
	loc      *time.Location
}

// New builds the service. A nil loc means time.Local.
func New(clk clock.Clock, holidays HolidayRepository, loc *time.Location) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{clock: clk, holidays: holidays, loc: loc}
}

// IsTradeNow is false on a holiday and from 15:30 local time onwards.
func (s *Service) IsTradeNow(ctx context.Context) (bool, error) {
	now := s.clock.Now().In(s.loc)

	hs, err := s.holidays.GetHolidays(ctx, now.Year(), now.Month())
	if err != nil {
		return false, errors.Wrap(err, "get holidays")
	}
	for _, h := range hs {
		if sameDate(h, now) {
			return false, nil
		}
	}
	return timeOfDay(now) < tradeCutoff, nil
}

// sameDate compares calendar dates as written; a DATE column carries no zone.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func validateCount(count int) error {
	if count <= 0 {
		return apperr.OutOfRange("count", count)
	}
	return nil
}

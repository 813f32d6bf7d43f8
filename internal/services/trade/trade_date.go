package trade

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/BearBump/ShipperBox/internal/clock"
	"github.com/pkg/errors"
)

var ErrNoTradeDates = errors.New("trade date api returned no dates")

// TradeDateAPI lists the next trading days starting at tradeDate as yyyyMMdd numbers.
type TradeDateAPI interface {
	GetTradeDates(ctx context.Context, tradeDate time.Time, count int) ([]int, error)
}

type DateService struct {
	clock clock.Clock
	api   TradeDateAPI
	loc   *time.Location
}

func NewDateService(clk clock.Clock, api TradeDateAPI, loc *time.Location) *DateService {
	if clk == nil {
		clk = clock.Real{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &DateService{clock: clk, api: api, loc: loc}
}

// Get returns the date (yyyy-MM-dd) an order placed for tradeDate settles on.
// If tradeDate is not a trading day it is the first listed day. Otherwise it is
// tradeDate itself until 15:00 local time and the last listed day after that.
func (s *DateService) Get(ctx context.Context, tradeDate time.Time, count int) (string, error) {
	if err := validateCount(count); err != nil {
		return "", err
	}

	dates, err := s.api.GetTradeDates(ctx, tradeDate, count)
	if err != nil {
		return "", errors.Wrap(err, "get trade dates")
	}
	if len(dates) == 0 {
		return "", ErrNoTradeDates
	}

	want, _ := strconv.Atoi(tradeDate.Format("20060102"))
	exists := false
	for _, d := range dates {
		if d == want {
			exists = true
			break
		}
	}

	picked := dates[0]
	if exists && timeOfDay(s.clock.Now().In(s.loc)) > settlementCutoff {
		picked = dates[len(dates)-1]
	}
	return formatDate(picked), nil
}

func formatDate(yyyymmdd int) string {
	return fmt.Sprintf("%04d-%02d-%02d", yyyymmdd/10000, yyyymmdd/100%100, yyyymmdd%100)
}

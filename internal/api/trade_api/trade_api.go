package trade_api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/BearBump/ShipperBox/internal/api/envelope"
	"github.com/BearBump/ShipperBox/internal/services/trade"
	"github.com/BearBump/ShipperBox/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

type Calendar interface {
	IsTradeNow(ctx context.Context) (bool, error)
}

type Dates interface {
	Get(ctx context.Context, tradeDate time.Time, count int) (string, error)
}

type dateParameter struct {
	TradeDate string `validate:"required"`
	Count     int    `validate:"gt=0,lte=100"`
}

type nowOutput struct {
	IsTradeNow bool `json:"isTradeNow"`
}

type dateOutput struct {
	TradeDate string `json:"tradeDate"`
}

type TradeAPI struct {
	calendar  Calendar
	dates     Dates
	validator *validation.Validator
	loc       *time.Location
	debug     bool
	log       *slog.Logger
}

type Option func(*TradeAPI)

// WithLocation sets the zone tradeDate query values are read in.
func WithLocation(loc *time.Location) Option {
	return func(a *TradeAPI) { a.loc = loc }
}

func WithDebug(debug bool) Option {
	return func(a *TradeAPI) { a.debug = debug }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *TradeAPI) { a.log = l }
}

func New(calendar Calendar, dates Dates, opts ...Option) *TradeAPI {
	a := &TradeAPI{
		calendar:  calendar,
		dates:     dates,
		validator: validation.New(),
		loc:       time.Local,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	a.log = a.log.With("component", "trade_api")
	return a
}

func (a *TradeAPI) Register(r chi.Router) {
	r.Route("/api/trade", func(r chi.Router) {
		r.Get("/now", a.now)
		r.Get("/date", a.date)
	})
}

func (a *TradeAPI) now(w http.ResponseWriter, r *http.Request) {
	open, err := a.calendar.IsTradeNow(r.Context())
	if err != nil {
		envelope.Error(w, r, a.log, a.debug, err)
		return
	}
	envelope.Success(w, r, nowOutput{IsTradeNow: open})
}

func (a *TradeAPI) date(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := dateParameter{TradeDate: q.Get("tradeDate")}

	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			envelope.Violations(w, r, []validation.Violation{{Field: "Count", Message: "The field Count must be a number."}})
			return
		}
		p.Count = n
	}
	if bad := a.validator.Violations(p); len(bad) > 0 {
		envelope.Violations(w, r, bad)
		return
	}

	day, err := time.ParseInLocation(time.DateOnly, p.TradeDate, a.loc)
	if err != nil {
		envelope.Violations(w, r, []validation.Violation{{Field: "TradeDate", Message: "The field TradeDate must be a date in yyyy-MM-dd format."}})
		return
	}

	out, err := a.dates.Get(r.Context(), day, p.Count)
	if errors.Is(err, trade.ErrNoTradeDates) {
		envelope.Failure(w, r, "no trade dates")
		return
	}
	if err != nil {
		envelope.Error(w, r, a.log, a.debug, err)
		return
	}
	envelope.Success(w, r, dateOutput{TradeDate: out})
}

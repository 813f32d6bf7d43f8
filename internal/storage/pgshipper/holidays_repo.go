package pgshipper

import (
	"context"
	"fmt"
	"time"

	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// GetHolidays returns the non-trading dates of the given month in ascending order.
// Dates come back as midnight UTC.
func (s *Storage) GetHolidays(ctx context.Context, year int, month time.Month) ([]time.Time, error) {
	if year <= 0 {
		return nil, apperr.OutOfRange("year", year)
	}
	if month < time.January || month > time.December {
		return nil, apperr.InvalidArgument("month", fmt.Sprintf("must be between 1 and 12, got %d", int(month)))
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	out := make([]time.Time, 0)
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT holiday_date FROM holidays WHERE holiday_date >= $1 AND holiday_date < $2 ORDER BY holiday_date ASC`,
			first, next)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var d time.Time
			if err := rows.Scan(&d); err != nil {
				return errors.Wrap(err, "scan holiday")
			}
			out = append(out, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, "select holidays")
	}
	return out, nil
}

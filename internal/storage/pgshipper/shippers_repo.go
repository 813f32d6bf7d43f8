package pgshipper

import (
	"context"
	"strings"

	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/BearBump/ShipperBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const (
	maxPageSize     = 100
	defaultPageSize = 10
)

const (
	msgCreateError = "record creation error"
	msgUpdateError = "record update error"
	msgDeleteError = "record deletion error"
)

const selectShippers = `SELECT shipper_id, company_name, phone FROM shippers`

func (s *Storage) ExistsByID(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, apperr.OutOfRange("id", id)
	}

	var n int
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT count(*) FROM shippers WHERE shipper_id = $1`, id).Scan(&n)
	})
	if err != nil {
		return false, errors.Wrap(err, "exists shipper")
	}
	return n > 0, nil
}

// GetByID returns nil, nil when there is no such shipper.
func (s *Storage) GetByID(ctx context.Context, id int) (*models.Shipper, error) {
	if id <= 0 {
		return nil, apperr.OutOfRange("id", id)
	}

	var out *models.Shipper
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		var sh models.Shipper
		err := conn.QueryRow(ctx, selectShippers+` WHERE shipper_id = $1`, id).
			Scan(&sh.ShipperID, &sh.CompanyName, &sh.Phone)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		out = &sh
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "select shipper")
	}
	return out, nil
}

func (s *Storage) GetTotalCount(ctx context.Context) (int, error) {
	var n int
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, `SELECT count(*) FROM shippers`).Scan(&n)
	})
	if err != nil {
		return 0, errors.Wrap(err, "count shippers")
	}
	return n, nil
}

func (s *Storage) GetAll(ctx context.Context) ([]*models.Shipper, error) {
	return s.query(ctx, "select shippers", selectShippers+` ORDER BY shipper_id ASC`)
}

// GetPage returns up to size shippers starting at the from-th row (1-based, by id).
// A size above 100 falls back to 10.
func (s *Storage) GetPage(ctx context.Context, from, size int) ([]*models.Shipper, error) {
	if from <= 0 {
		return nil, apperr.OutOfRange("from", from)
	}
	if size <= 0 {
		return nil, apperr.OutOfRange("size", size)
	}
	if size > maxPageSize {
		size = defaultPageSize
	}

	total, err := s.GetTotalCount(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 || from > total {
		return []*models.Shipper{}, nil
	}

	return s.query(ctx, "select shippers page",
		selectShippers+` ORDER BY shipper_id ASC OFFSET $1 LIMIT $2`, from-1, size)
}

// Search matches shippers whose columns contain every non-blank filter.
func (s *Storage) Search(ctx context.Context, companyName, phone string) ([]*models.Shipper, error) {
	if strings.TrimSpace(companyName) == "" && strings.TrimSpace(phone) == "" {
		return nil, apperr.InvalidArgument("companyName", "companyName or phone is required")
	}

	total, err := s.GetTotalCount(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []*models.Shipper{}, nil
	}

	where, args := searchFilter(companyName, phone)
	return s.query(ctx, "search shippers",
		selectShippers+` WHERE `+where+` ORDER BY shipper_id ASC`, args...)
}

// Create inserts sh and stores the generated id back into sh.ShipperID.
func (s *Storage) Create(ctx context.Context, sh *models.Shipper) (models.Result, error) {
	if sh == nil {
		return models.Result{}, apperr.ArgumentNull("shipper")
	}

	var id int
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`INSERT INTO shippers (company_name, phone) VALUES ($1, $2) RETURNING shipper_id`,
			sh.CompanyName, sh.Phone).Scan(&id)
	})
	if err != nil {
		return models.Result{}, errors.Wrap(err, "insert shipper")
	}
	if id <= 0 {
		return models.Failed(0, msgCreateError), nil
	}
	sh.ShipperID = id
	return models.Succeeded(1), nil
}

func (s *Storage) Update(ctx context.Context, sh *models.Shipper) (models.Result, error) {
	if sh == nil {
		return models.Result{}, apperr.ArgumentNull("shipper")
	}
	return s.exec(ctx, "update shipper", msgUpdateError,
		`UPDATE shippers SET company_name = $1, phone = $2 WHERE shipper_id = $3`,
		sh.CompanyName, sh.Phone, sh.ShipperID)
}

func (s *Storage) Delete(ctx context.Context, id int) (models.Result, error) {
	if id <= 0 {
		return models.Result{}, apperr.OutOfRange("id", id)
	}
	return s.exec(ctx, "delete shipper", msgDeleteError,
		`DELETE FROM shippers WHERE shipper_id = $1`, id)
}

func (s *Storage) query(ctx context.Context, op, sql string, args ...any) ([]*models.Shipper, error) {
	out := make([]*models.Shipper, 0)
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var sh models.Shipper
			if err := rows.Scan(&sh.ShipperID, &sh.CompanyName, &sh.Phone); err != nil {
				return errors.Wrap(err, "scan shipper")
			}
			out = append(out, &sh)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return out, nil
}

// exec runs a single-row mutation; anything other than exactly one affected row is a failure.
func (s *Storage) exec(ctx context.Context, op, failMsg, sql string, args ...any) (models.Result, error) {
	var affected int
	err := s.withConn(ctx, func(conn *pgxpool.Conn) error {
		ct, err := conn.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = int(ct.RowsAffected())
		return nil
	})
	if err != nil {
		return models.Result{}, errors.Wrap(err, op)
	}
	if affected != 1 {
		return models.Failed(affected, failMsg), nil
	}
	return models.Succeeded(affected), nil
}

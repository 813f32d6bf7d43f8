package shippers

import (
	"context"
	"strings"

	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/BearBump/ShipperBox/internal/models"
	"github.com/BearBump/ShipperBox/internal/validation"
)

const msgShipperNotExists = "shipper not exists"

type Repository interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
	GetByID(ctx context.Context, id int) (*models.Shipper, error)
	GetTotalCount(ctx context.Context) (int, error)
	GetAll(ctx context.Context) ([]*models.Shipper, error)
	GetPage(ctx context.Context, from, size int) ([]*models.Shipper, error)
	Search(ctx context.Context, companyName, phone string) ([]*models.Shipper, error)
	Create(ctx context.Context, s *models.Shipper) (models.Result, error)
	Update(ctx context.Context, s *models.Shipper) (models.Result, error)
	Delete(ctx context.Context, id int) (models.Result, error)
}

// Validator checks a DTO and returns the first violation as an argument error.
type Validator interface {
	Validate(obj any, param string) error
}

type Service struct {
	repo      Repository
	validator Validator
}

// New builds the service. A nil v falls back to validation.New(), so field
// constraints are always enforced.
func New(repo Repository, v Validator) *Service {
	if v == nil {
		v = validation.New()
	}
	return &Service{repo: repo, validator: v}
}

func (s *Service) Exists(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, apperr.OutOfRange("id", id)
	}
	return s.repo.ExistsByID(ctx, id)
}

// GetByID returns nil, nil when the shipper does not exist.
func (s *Service) GetByID(ctx context.Context, id int) (*ShipperDTO, error) {
	exists, err := s.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toDTO(m), nil
}

func (s *Service) GetTotalCount(ctx context.Context) (int, error) {
	return s.repo.GetTotalCount(ctx)
}

func (s *Service) GetAll(ctx context.Context) ([]*ShipperDTO, error) {
	ms, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(ms), nil
}

func (s *Service) GetPage(ctx context.Context, from, size int) ([]*ShipperDTO, error) {
	if from <= 0 {
		return nil, apperr.OutOfRange("from", from)
	}
	if size <= 0 {
		return nil, apperr.OutOfRange("size", size)
	}

	total, err := s.repo.GetTotalCount(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 || from > total {
		return []*ShipperDTO{}, nil
	}

	ms, err := s.repo.GetPage(ctx, from, size)
	if err != nil {
		return nil, err
	}
	return toDTOs(ms), nil
}

func (s *Service) Search(ctx context.Context, companyName, phone string) ([]*ShipperDTO, error) {
	if strings.TrimSpace(companyName) == "" && strings.TrimSpace(phone) == "" {
		return nil, apperr.InvalidArgument("companyName", "companyName or phone is required")
	}

	total, err := s.repo.GetTotalCount(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []*ShipperDTO{}, nil
	}

	ms, err := s.repo.Search(ctx, companyName, phone)
	if err != nil {
		return nil, err
	}
	return toDTOs(ms), nil
}

// Create validates d and inserts it. On success d.ShipperID holds the new id.
func (s *Service) Create(ctx context.Context, d *ShipperDTO) (models.Result, error) {
	if err := s.validate(d); err != nil {
		return models.Result{}, err
	}

	rec := toRecord(d)
	res, err := s.repo.Create(ctx, rec)
	if err != nil {
		return models.Result{}, err
	}
	if res.Success {
		d.ShipperID = rec.ShipperID
	}
	return res, nil
}

func (s *Service) Update(ctx context.Context, d *ShipperDTO) (models.Result, error) {
	if err := s.validate(d); err != nil {
		return models.Result{}, err
	}

	exists, err := s.Exists(ctx, d.ShipperID)
	if err != nil {
		return models.Result{}, err
	}
	if !exists {
		return models.Failed(0, msgShipperNotExists), nil
	}
	return s.repo.Update(ctx, toRecord(d))
}

func (s *Service) Delete(ctx context.Context, id int) (models.Result, error) {
	exists, err := s.Exists(ctx, id)
	if err != nil {
		return models.Result{}, err
	}
	if !exists {
		return models.Failed(0, msgShipperNotExists), nil
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(d *ShipperDTO) error {
	if d == nil {
		return apperr.ArgumentNull("shipper")
	}
	return s.validator.Validate(d, "shipper")
}

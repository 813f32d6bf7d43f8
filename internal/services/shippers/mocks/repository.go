package mocks

import (
	"context"

	"github.com/BearBump/ShipperBox/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock of shippers.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*models.Shipper, error) {
	args := m.Called(ctx, id)
	sh, _ := args.Get(0).(*models.Shipper)
	return sh, args.Error(1)
}

func (m *MockRepository) GetTotalCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]*models.Shipper, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]*models.Shipper)
	return out, args.Error(1)
}

func (m *MockRepository) GetPage(ctx context.Context, from, size int) ([]*models.Shipper, error) {
	args := m.Called(ctx, from, size)
	out, _ := args.Get(0).([]*models.Shipper)
	return out, args.Error(1)
}

func (m *MockRepository) Search(ctx context.Context, companyName, phone string) ([]*models.Shipper, error) {
	args := m.Called(ctx, companyName, phone)
	out, _ := args.Get(0).([]*models.Shipper)
	return out, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, s *models.Shipper) (models.Result, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(models.Result), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, s *models.Shipper) (models.Result, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(models.Result), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int) (models.Result, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Result), args.Error(1)
}

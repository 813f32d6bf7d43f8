package shippers

import (
	"context"
	"errors"
	"testing"

	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/BearBump/ShipperBox/internal/models"
	"github.com/BearBump/ShipperBox/internal/validation"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	shippersmocks "github.com/BearBump/ShipperBox/internal/services/shippers/mocks"
)

type ServiceSuite struct {
	suite.Suite

	ctx  context.Context
	repo *shippersmocks.MockRepository
	svc  *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = &shippersmocks.MockRepository{}
	s.svc = New(s.repo, validation.New())
}

func (s *ServiceSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *ServiceSuite) requireArgErr(err error, kind error, param string) {
	s.Require().ErrorIs(err, kind)
	ae, ok := apperr.AsArgument(err)
	s.Require().True(ok)
	s.Require().Equal(param, ae.Param)
}

func (s *ServiceSuite) TestIDMustBePositive() {
	for _, id := range []int{0, -1, -100} {
		_, err := s.svc.Exists(s.ctx, id)
		s.requireArgErr(err, apperr.ErrOutOfRange, "id")

		_, err = s.svc.GetByID(s.ctx, id)
		s.requireArgErr(err, apperr.ErrOutOfRange, "id")

		_, err = s.svc.Delete(s.ctx, id)
		s.requireArgErr(err, apperr.ErrOutOfRange, "id")
	}
	s.repo.AssertNotCalled(s.T(), "ExistsByID", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestGetByID_MissingSkipsLookup() {
	s.repo.On("ExistsByID", mock.Anything, 7).Return(false, nil).Once()

	got, err := s.svc.GetByID(s.ctx, 7)
	s.Require().NoError(err)
	s.Require().Nil(got)
	s.repo.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestGetByID_Maps() {
	s.repo.On("ExistsByID", mock.Anything, 1).Return(true, nil).Once()
	s.repo.On("GetByID", mock.Anything, 1).
		Return(&models.Shipper{ShipperID: 1, CompanyName: "demo", Phone: "03123456789"}, nil).
		Once()

	got, err := s.svc.GetByID(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(&ShipperDTO{ShipperID: 1, CompanyName: "demo", Phone: "03123456789"}, got)
}

func (s *ServiceSuite) TestGetByID_InfraErrorPropagates() {
	want := errors.New("conn refused")
	s.repo.On("ExistsByID", mock.Anything, 1).Return(false, want).Once()

	_, err := s.svc.GetByID(s.ctx, 1)
	s.Require().ErrorIs(err, want)
}

func (s *ServiceSuite) TestGetPage_ArgumentErrors() {
	_, err := s.svc.GetPage(s.ctx, 0, 10)
	s.requireArgErr(err, apperr.ErrOutOfRange, "from")

	_, err = s.svc.GetPage(s.ctx, 1, 0)
	s.requireArgErr(err, apperr.ErrOutOfRange, "size")

	s.repo.AssertNotCalled(s.T(), "GetTotalCount", mock.Anything)
}

func (s *ServiceSuite) TestGetPage_ShortCircuits() {
	s.repo.On("GetTotalCount", mock.Anything).Return(0, nil).Once()
	out, err := s.svc.GetPage(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Require().NotNil(out)
	s.Require().Empty(out)

	s.repo.On("GetTotalCount", mock.Anything).Return(10, nil).Once()
	out, err = s.svc.GetPage(s.ctx, 11, 10)
	s.Require().NoError(err)
	s.Require().Empty(out)

	s.repo.AssertNotCalled(s.T(), "GetPage", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestGetPage_Delegates() {
	s.repo.On("GetTotalCount", mock.Anything).Return(10, nil).Once()
	s.repo.On("GetPage", mock.Anything, 6, 10).
		Return([]*models.Shipper{{ShipperID: 6}, {ShipperID: 7}}, nil).
		Once()

	out, err := s.svc.GetPage(s.ctx, 6, 10)
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Require().Equal(6, out[0].ShipperID)
}

func (s *ServiceSuite) TestSearch_BothBlank() {
	for _, tc := range [][2]string{{"", ""}, {" ", "\t"}} {
		_, err := s.svc.Search(s.ctx, tc[0], tc[1])
		s.Require().ErrorIs(err, apperr.ErrInvalidArgument)
	}
	s.repo.AssertNotCalled(s.T(), "GetTotalCount", mock.Anything)
}

func (s *ServiceSuite) TestSearch_EmptyTable() {
	s.repo.On("GetTotalCount", mock.Anything).Return(0, nil).Once()

	out, err := s.svc.Search(s.ctx, "demo", "")
	s.Require().NoError(err)
	s.Require().Empty(out)
	s.repo.AssertNotCalled(s.T(), "Search", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestSearch_Delegates() {
	s.repo.On("GetTotalCount", mock.Anything).Return(3, nil).Once()
	s.repo.On("Search", mock.Anything, "demo", "03123456789").
		Return([]*models.Shipper{{ShipperID: 1, CompanyName: "demo", Phone: "03123456789"}}, nil).
		Once()

	out, err := s.svc.Search(s.ctx, "demo", "03123456789")
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Require().Equal("demo", out[0].CompanyName)
}

func (s *ServiceSuite) TestCreate_Nil() {
	_, err := s.svc.Create(s.ctx, nil)
	s.requireArgErr(err, apperr.ErrArgumentNull, "shipper")
	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestCreate_InvalidFields() {
	_, err := s.svc.Create(s.ctx, &ShipperDTO{CompanyName: "", Phone: "1"})
	s.requireArgErr(err, apperr.ErrInvalidArgument, "CompanyName")

	_, err = s.svc.Create(s.ctx, &ShipperDTO{CompanyName: "demo", Phone: "0123456789012345678901234"})
	s.requireArgErr(err, apperr.ErrInvalidArgument, "Phone")

	s.repo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestCreate_ReturnsRepoResultUnchanged() {
	want := models.Result{Success: false, AffectRows: 0, Message: "record creation error"}
	s.repo.On("Create", mock.Anything, &models.Shipper{CompanyName: "demo", Phone: "1"}).
		Return(want, nil).
		Once()

	res, err := s.svc.Create(s.ctx, &ShipperDTO{CompanyName: "demo", Phone: "1"})
	s.Require().NoError(err)
	s.Require().Equal(want, res)
}

func (s *ServiceSuite) TestCreate_CopiesGeneratedID() {
	s.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Shipper")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Shipper).ShipperID = 17 }).
		Return(models.Succeeded(1), nil).
		Once()

	dto := &ShipperDTO{CompanyName: "demo", Phone: "1"}
	_, err := s.svc.Create(s.ctx, dto)
	s.Require().NoError(err)
	s.Require().Equal(17, dto.ShipperID)
}

func (s *ServiceSuite) TestUpdate_MissingIsShipperNotExists() {
	s.repo.On("ExistsByID", mock.Anything, 99).Return(false, nil).Once()

	res, err := s.svc.Update(s.ctx, &ShipperDTO{ShipperID: 99, CompanyName: "x", Phone: "1"})
	s.Require().NoError(err)
	s.Require().Equal(models.Result{Success: false, Message: "shipper not exists"}, res)
	s.repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *ServiceSuite) TestUpdate_PassesRepoFailureThrough() {
	s.repo.On("ExistsByID", mock.Anything, 5).Return(true, nil).Once()
	s.repo.On("Update", mock.Anything, &models.Shipper{ShipperID: 5, CompanyName: "x", Phone: "1"}).
		Return(models.Result{Success: false, Message: "record update error"}, nil).
		Once()

	res, err := s.svc.Update(s.ctx, &ShipperDTO{ShipperID: 5, CompanyName: "x", Phone: "1"})
	s.Require().NoError(err)
	s.Require().Equal("record update error", res.Message)
}

func (s *ServiceSuite) TestUpdate_BadID() {
	_, err := s.svc.Update(s.ctx, &ShipperDTO{ShipperID: 0, CompanyName: "x", Phone: "1"})
	s.requireArgErr(err, apperr.ErrOutOfRange, "id")
}

func (s *ServiceSuite) TestDelete() {
	s.repo.On("ExistsByID", mock.Anything, 3).Return(false, nil).Once()
	res, err := s.svc.Delete(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Equal("shipper not exists", res.Message)

	s.repo.On("ExistsByID", mock.Anything, 4).Return(true, nil).Once()
	s.repo.On("Delete", mock.Anything, 4).Return(models.Result{Success: true, AffectRows: 1}, nil).Once()
	res, err = s.svc.Delete(s.ctx, 4)
	s.Require().NoError(err)
	s.Require().True(res.Success)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

package shippers

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/BearBump/ShipperBox/internal/broker/messages"
	"github.com/BearBump/ShipperBox/internal/models"
	"github.com/BearBump/ShipperBox/internal/validation"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rows   map[int]models.Shipper
	nextID int
	calls  []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int]models.Shipper{}, nextID: 1}
}

func (f *fakeRepo) sorted() []*models.Shipper {
	out := make([]*models.Shipper, 0, len(f.rows))
	for _, r := range f.rows {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShipperID < out[j].ShipperID })
	return out
}

func (f *fakeRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	f.calls = append(f.calls, "ExistsByID")
	_, ok := f.rows[id]
	return ok, nil
}
func (f *fakeRepo) GetByID(ctx context.Context, id int) (*models.Shipper, error) {
	f.calls = append(f.calls, "GetByID")
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}
func (f *fakeRepo) GetTotalCount(ctx context.Context) (int, error) {
	f.calls = append(f.calls, "GetTotalCount")
	return len(f.rows), nil
}
func (f *fakeRepo) GetAll(ctx context.Context) ([]*models.Shipper, error) {
	f.calls = append(f.calls, "GetAll")
	return f.sorted(), nil
}
func (f *fakeRepo) GetPage(ctx context.Context, from, size int) ([]*models.Shipper, error) {
	f.calls = append(f.calls, "GetPage")
	all := f.sorted()
	end := from - 1 + size
	if end > len(all) {
		end = len(all)
	}
	return all[from-1 : end], nil
}
func (f *fakeRepo) Search(ctx context.Context, companyName, phone string) ([]*models.Shipper, error) {
	f.calls = append(f.calls, "Search")
	out := []*models.Shipper{}
	for _, r := range f.sorted() {
		if strings.Contains(r.CompanyName, strings.TrimSpace(companyName)) && strings.Contains(r.Phone, strings.TrimSpace(phone)) {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRepo) Create(ctx context.Context, s *models.Shipper) (models.Result, error) {
	f.calls = append(f.calls, "Create")
	s.ShipperID = f.nextID
	f.nextID++
	f.rows[s.ShipperID] = *s
	return models.Succeeded(1), nil
}
func (f *fakeRepo) Update(ctx context.Context, s *models.Shipper) (models.Result, error) {
	f.calls = append(f.calls, "Update")
	if _, ok := f.rows[s.ShipperID]; !ok {
		return models.Failed(0, "record update error"), nil
	}
	f.rows[s.ShipperID] = *s
	return models.Succeeded(1), nil
}
func (f *fakeRepo) Delete(ctx context.Context, id int) (models.Result, error) {
	f.calls = append(f.calls, "Delete")
	if _, ok := f.rows[id]; !ok {
		return models.Failed(0, "record deletion error"), nil
	}
	delete(f.rows, id)
	return models.Succeeded(1), nil
}

func TestService_CreateThenGet(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, validation.New())
	ctx := context.Background()

	dto := &ShipperDTO{CompanyName: "demo", Phone: "03123456789"}
	res, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 1, res.AffectRows)
	require.Equal(t, 1, dto.ShipperID)

	got, err := svc.GetByID(ctx, dto.ShipperID)
	require.NoError(t, err)
	require.Equal(t, "demo", got.CompanyName)
	require.Equal(t, "03123456789", got.Phone)

	again, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestService_Pagination(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, validation.New())
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := svc.Create(ctx, &ShipperDTO{CompanyName: "c", Phone: "p"})
		require.NoError(t, err)
	}

	page, err := svc.GetPage(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)

	page, err = svc.GetPage(ctx, 11, 10)
	require.NoError(t, err)
	require.Empty(t, page)

	page, err = svc.GetPage(ctx, 6, 10)
	require.NoError(t, err)
	require.Len(t, page, 5)
	require.Equal(t, 6, page[0].ShipperID)
	require.Equal(t, 10, page[4].ShipperID)
}

func TestService_SearchCombination(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, validation.New())
	ctx := context.Background()
	_, err := svc.Create(ctx, &ShipperDTO{CompanyName: "demo", Phone: "03123456789"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "demo", "03123456789")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = svc.Search(ctx, "demo", "00000000000")
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestService_UpdateAndDeleteMessagesStayInTheirLayer(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, validation.New())
	ctx := context.Background()

	res, err := svc.Update(ctx, &ShipperDTO{ShipperID: 5, CompanyName: "x", Phone: "1"})
	require.NoError(t, err)
	require.Equal(t, "shipper not exists", res.Message)
	require.NotContains(t, repo.calls, "Update")

	res, err = repo.Update(ctx, &models.Shipper{ShipperID: 5, CompanyName: "x", Phone: "1"})
	require.NoError(t, err)
	require.Equal(t, "record update error", res.Message)

	res, err = svc.Delete(ctx, 5)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "shipper not exists", res.Message)
	require.NotContains(t, repo.calls, "Delete")
}

func TestService_GetAllNeverNil(t *testing.T) {
	svc := New(newFakeRepo(), nil)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}

func TestMapping_FieldForField(t *testing.T) {
	d := &ShipperDTO{ShipperID: 3, CompanyName: "a", Phone: "b"}
	require.Equal(t, d, toDTO(toRecord(d)))
}

func TestService_Import(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, validation.New())
	ctx := context.Background()

	res, err := svc.Import(ctx, messages.ShipperImport{CompanyName: "imported", Phone: "123"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "imported", repo.rows[1].CompanyName)

	_, err = svc.Import(ctx, messages.ShipperImport{CompanyName: "", Phone: "123"})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
	require.Len(t, repo.rows, 1)
}

func TestService_NilValidatorStillChecksFields(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, &ShipperDTO{CompanyName: "", Phone: strings.Repeat("1", 31)})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = svc.Create(ctx, &ShipperDTO{CompanyName: "demo", Phone: strings.Repeat("1", 25)})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	repo.rows[1] = models.Shipper{ShipperID: 1, CompanyName: "demo", Phone: "1"}
	_, err = svc.Update(ctx, &ShipperDTO{ShipperID: 1, CompanyName: "   ", Phone: "1"})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	require.NotContains(t, repo.calls, "Create")
	require.NotContains(t, repo.calls, "Update")
	require.Len(t, repo.rows, 1)
}

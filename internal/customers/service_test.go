package customers

import (
	"context"
	"testing"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCustomersRepo struct {
	customers map[uuid.UUID]*models.Customer
	withSales map[uuid.UUID]bool
	writes    int
}

func newStubCustomersRepo() *stubCustomersRepo {
	return &stubCustomersRepo{
		customers: map[uuid.UUID]*models.Customer{},
		withSales: map[uuid.UUID]bool{},
	}
}

func (s *stubCustomersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCustomersRepo) Find(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *customer
	return &copied, nil
}

func (s *stubCustomersRepo) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	copied := *customer
	s.customers[customer.ID] = &copied
	s.writes++
	return nil
}

func (s *stubCustomersRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	customer, ok := s.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["first_name"].(string); ok {
		customer.FirstName = v
	}
	if v, ok := updates["last_name"].(string); ok {
		customer.LastName = v
	}
	s.writes++
	return nil
}

func (s *stubCustomersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.customers, id)
	s.writes++
	return nil
}

func (s *stubCustomersRepo) HasSales(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.withSales[id], nil
}

func (s *stubCustomersRepo) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	panic("not implemented")
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubCustomersRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)
	return svc
}

func TestCreateTrimsNames(t *testing.T) {
	repo := newStubCustomersRepo()
	svc := newTestService(t, repo)

	customer, err := svc.Create(context.Background(), CreateInput{
		FirstName: "  Nora ",
		LastName:  " Hassan ",
		ActorID:   uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nora", customer.FirstName)
	assert.Equal(t, "Hassan", customer.LastName)
}

func TestCreateRequiresActorAndNames(t *testing.T) {
	svc := newTestService(t, newStubCustomersRepo())

	_, err := svc.Create(context.Background(), CreateInput{FirstName: "A", LastName: "B"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))

	_, err = svc.Create(context.Background(), CreateInput{
		FirstName: "   ",
		LastName:  "B",
		ActorID:   uuid.New(),
	})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestUpdateMissingCustomerIsNotFound(t *testing.T) {
	repo := newStubCustomersRepo()
	svc := newTestService(t, repo)

	_, err := svc.Update(context.Background(), UpdateInput{
		CustomerID: uuid.New(),
		FirstName:  "Omar",
		LastName:   "Farid",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Zero(t, repo.writes)
}

func TestDeleteBlockedWhileSalesExist(t *testing.T) {
	repo := newStubCustomersRepo()
	id := uuid.New()
	repo.customers[id] = &models.Customer{ID: id, FirstName: "Lina", LastName: "Said"}
	repo.withSales[id] = true

	svc := newTestService(t, repo)
	err := svc.Delete(context.Background(), id)

	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
	assert.Contains(t, repo.customers, id)
	assert.Zero(t, repo.writes)
}

func TestDeleteRemovesUnreferencedCustomer(t *testing.T) {
	repo := newStubCustomersRepo()
	id := uuid.New()
	repo.customers[id] = &models.Customer{ID: id, FirstName: "Yara", LastName: "Adel"}

	svc := newTestService(t, repo)
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.NotContains(t, repo.customers, id)
}

package products

import (
	"context"
	"testing"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubProductsRepo struct {
	products   map[uuid.UUID]*models.Product
	categories map[uuid.UUID]bool
	brands     map[uuid.UUID]bool
	referenced map[uuid.UUID]bool
	writes     int
}

func newStubProductsRepo() *stubProductsRepo {
	return &stubProductsRepo{
		products:   map[uuid.UUID]*models.Product{},
		categories: map[uuid.UUID]bool{},
		brands:     map[uuid.UUID]bool{},
		referenced: map[uuid.UUID]bool{},
	}
}

func (s *stubProductsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubProductsRepo) Find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	copied := *product
	s.products[product.ID] = &copied
	s.writes++
	return nil
}

func (s *stubProductsRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.writes++
	return nil
}

func (s *stubProductsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.products, id)
	s.writes++
	return nil
}

func (s *stubProductsRepo) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.categories[id], nil
}

func (s *stubProductsRepo) BrandExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.brands[id], nil
}

func (s *stubProductsRepo) HasSaleLines(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.referenced[id], nil
}

func (s *stubProductsRepo) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	panic("not implemented")
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubProductsRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)
	return svc
}

func TestCreateValidatesReferences(t *testing.T) {
	repo := newStubProductsRepo()
	categoryID, brandID := uuid.New(), uuid.New()
	repo.categories[categoryID] = true
	repo.brands[brandID] = true

	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Keyboard",
		Price:      decimal.RequireFromString("49.99"),
		CategoryID: uuid.New(), // unknown
		BrandID:    brandID,
		ActorID:    uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, "invalid selected category", pkgerrors.As(err).Message())
	assert.Zero(t, repo.writes)

	product, err := svc.Create(context.Background(), CreateInput{
		Name:       "Keyboard",
		Price:      decimal.RequireFromString("49.99"),
		CategoryID: categoryID,
		BrandID:    brandID,
		ActorID:    uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", product.Name)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := newTestService(t, newStubProductsRepo())
	_, err := svc.Create(context.Background(), CreateInput{
		Name:       "Keyboard",
		Price:      decimal.RequireFromString("-1"),
		CategoryID: uuid.New(),
		BrandID:    uuid.New(),
		ActorID:    uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestDeleteBlockedWhileReferencedBySales(t *testing.T) {
	repo := newStubProductsRepo()
	id := uuid.New()
	repo.products[id] = &models.Product{ID: id, Name: "Mouse"}
	repo.referenced[id] = true

	svc := newTestService(t, repo)
	err := svc.Delete(context.Background(), id)

	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
	assert.Contains(t, repo.products, id)
}

func TestDeleteRemovesUnreferencedProduct(t *testing.T) {
	repo := newStubProductsRepo()
	id := uuid.New()
	repo.products[id] = &models.Product{ID: id, Name: "Cable"}

	svc := newTestService(t, repo)
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.NotContains(t, repo.products, id)
}

func TestUpdateMissingProductIsNotFound(t *testing.T) {
	repo := newStubProductsRepo()
	categoryID, brandID := uuid.New(), uuid.New()
	repo.categories[categoryID] = true
	repo.brands[brandID] = true

	svc := newTestService(t, repo)
	_, err := svc.Update(context.Background(), UpdateInput{
		ProductID:  uuid.New(),
		Name:       "Monitor",
		Price:      decimal.RequireFromString("120"),
		CategoryID: categoryID,
		BrandID:    brandID,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
}

package sales

import (
	"context"
	"testing"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/enums"
	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSalesRepo struct {
	customers map[uuid.UUID]bool
	products  map[uuid.UUID]decimal.Decimal
	sale      *models.Sale
	lines     map[uuid.UUID]*models.SaleLine // keyed by product id
	writes    int
}

func newStubSalesRepo() *stubSalesRepo {
	return &stubSalesRepo{
		customers: map[uuid.UUID]bool{},
		products:  map[uuid.UUID]decimal.Decimal{},
		lines:     map[uuid.UUID]*models.SaleLine{},
	}
}

func (s *stubSalesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubSalesRepo) FindSale(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	if s.sale == nil || s.sale.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.sale
	return &copied, nil
}

func (s *stubSalesRepo) FindSaleDetail(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	return s.FindSale(ctx, id)
}

func (s *stubSalesRepo) CreateSale(ctx context.Context, sale *models.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	copied := *sale
	s.sale = &copied
	s.writes++
	return nil
}

func (s *stubSalesRepo) UpdateSale(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.sale == nil || s.sale.ID != id {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "method":
			s.sale.Method = value.(enums.PaymentMethod)
		case "amount":
			s.sale.Amount = value.(decimal.Decimal)
		case "discount":
			s.sale.Discount = value.(decimal.Decimal)
		case "customer_id":
			s.sale.CustomerID = value.(uuid.UUID)
		}
	}
	s.writes++
	return nil
}

func (s *stubSalesRepo) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if s.sale == nil || s.sale.ID != id {
		return gorm.ErrRecordNotFound
	}
	s.sale = nil
	s.writes++
	return nil
}

func (s *stubSalesRepo) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.customers[id], nil
}

func (s *stubSalesRepo) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.products[id]
	return ok, nil
}

func (s *stubSalesRepo) ProductPrice(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	price, ok := s.products[id]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return price, nil
}

func (s *stubSalesRepo) LineExists(ctx context.Context, saleID, productID uuid.UUID) (bool, error) {
	line, ok := s.lines[productID]
	return ok && line.SaleID == saleID, nil
}

func (s *stubSalesRepo) CreateLine(ctx context.Context, line *models.SaleLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	copied := *line
	s.lines[line.ProductID] = &copied
	s.writes++
	return nil
}

func (s *stubSalesRepo) DeleteLinesNotIn(ctx context.Context, saleID uuid.UUID, productIDs []uuid.UUID) error {
	keep := map[uuid.UUID]bool{}
	for _, id := range productIDs {
		keep[id] = true
	}
	for productID, line := range s.lines {
		if line.SaleID == saleID && !keep[productID] {
			delete(s.lines, productID)
			s.writes++
		}
	}
	return nil
}

func (s *stubSalesRepo) DeleteLines(ctx context.Context, saleID uuid.UUID) error {
	for productID, line := range s.lines {
		if line.SaleID == saleID {
			delete(s.lines, productID)
			s.writes++
		}
	}
	return nil
}

func (s *stubSalesRepo) ListLines(ctx context.Context, saleID uuid.UUID) ([]models.SaleLine, error) {
	lines := make([]models.SaleLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.SaleID == saleID {
			lines = append(lines, *line)
		}
	}
	return lines, nil
}

func (s *stubSalesRepo) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	panic("not implemented")
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubSalesRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)
	return svc
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCreateComputesAmountFromLivePrices(t *testing.T) {
	repo := newStubSalesRepo()
	customerID := uuid.New()
	p1, p2 := uuid.New(), uuid.New()
	repo.customers[customerID] = true
	repo.products[p1] = price("10")
	repo.products[p2] = price("5")

	svc := newTestService(t, repo)
	sale, err := svc.Create(context.Background(), CreateInput{
		CustomerID: customerID,
		Method:     enums.PaymentMethodCash,
		Discount:   decimal.Zero,
		Lines: []LineInput{
			{ProductID: p1, Quantity: 2},
			{ProductID: p2, Quantity: 3},
		},
		ActorID: uuid.New(),
	})

	require.NoError(t, err)
	assert.True(t, sale.Amount.Equal(price("35")), "amount = %s", sale.Amount)
	assert.Len(t, sale.Lines, 2)
	assert.Equal(t, customerID, sale.CustomerID)
}

func TestCreateUnknownProductPerformsNoWrites(t *testing.T) {
	repo := newStubSalesRepo()
	customerID := uuid.New()
	repo.customers[customerID] = true
	repo.products[uuid.New()] = price("10")

	svc := newTestService(t, repo)
	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: customerID,
		Method:     enums.PaymentMethodCash,
		Discount:   decimal.Zero,
		Lines:      []LineInput{{ProductID: uuid.New(), Quantity: 1}},
		ActorID:    uuid.New(),
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Equal(t, "invalid selected products", pkgerrors.As(err).Message())
	assert.Zero(t, repo.writes)
	assert.Nil(t, repo.sale)
}

func TestCreateUnknownCustomerPerformsNoWrites(t *testing.T) {
	repo := newStubSalesRepo()
	productID := uuid.New()
	repo.products[productID] = price("10")

	svc := newTestService(t, repo)
	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: uuid.New(),
		Method:     enums.PaymentMethodCard,
		Discount:   decimal.Zero,
		Lines:      []LineInput{{ProductID: productID, Quantity: 1}},
		ActorID:    uuid.New(),
	})

	require.Error(t, err)
	assert.Equal(t, "invalid selected customer", pkgerrors.As(err).Message())
	assert.Zero(t, repo.writes)
}

func TestCreateRequiresActorIdentity(t *testing.T) {
	svc := newTestService(t, newStubSalesRepo())
	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: uuid.New(),
		Method:     enums.PaymentMethodCash,
		Lines:      []LineInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(t, newStubSalesRepo())
	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: uuid.New(),
		Method:     enums.PaymentMethodCash,
		Lines:      []LineInput{{ProductID: uuid.New(), Quantity: 0}},
		ActorID:    uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func seedSale(repo *stubSalesRepo, customerID uuid.UUID, lines map[uuid.UUID]int) *models.Sale {
	sale := &models.Sale{
		ID:         uuid.New(),
		Method:     enums.PaymentMethodCash,
		CustomerID: customerID,
		CreatedBy:  uuid.New(),
	}
	repo.sale = sale
	for productID, qty := range lines {
		repo.lines[productID] = &models.SaleLine{
			ID:        uuid.New(),
			SaleID:    sale.ID,
			ProductID: productID,
			Quantity:  qty,
		}
	}
	return sale
}

func TestUpdateReconcilesLineSet(t *testing.T) {
	repo := newStubSalesRepo()
	customerID := uuid.New()
	p1, p2, p3 := uuid.New(), uuid.New(), uuid.New()
	repo.customers[customerID] = true
	repo.products[p1] = price("10")
	repo.products[p2] = price("5")
	repo.products[p3] = price("5")

	sale := seedSale(repo, customerID, map[uuid.UUID]int{p1: 2, p2: 3})

	svc := newTestService(t, repo)
	updated, err := svc.Update(context.Background(), UpdateInput{
		SaleID:     sale.ID,
		CustomerID: customerID,
		Method:     enums.PaymentMethodCash,
		Discount:   decimal.Zero,
		Lines: []LineInput{
			{ProductID: p1, Quantity: 5},
			{ProductID: p3, Quantity: 1},
		},
	})

	require.NoError(t, err)

	// Dropped product removed, new product added.
	_, hasP2 := repo.lines[p2]
	assert.False(t, hasP2)
	require.Contains(t, repo.lines, p3)
	assert.Equal(t, 1, repo.lines[p3].Quantity)

	// The line that survived keeps its stored quantity, while the amount
	// reflects the submitted quantity. That divergence is deliberate.
	require.Contains(t, repo.lines, p1)
	assert.Equal(t, 2, repo.lines[p1].Quantity)
	assert.True(t, updated.Amount.Equal(price("55")), "amount = %s", updated.Amount)
}

func TestUpdateIsIdempotent(t *testing.T) {
	repo := newStubSalesRepo()
	customerID := uuid.New()
	p1, p2 := uuid.New(), uuid.New()
	repo.customers[customerID] = true
	repo.products[p1] = price("10")
	repo.products[p2] = price("5")

	sale := seedSale(repo, customerID, map[uuid.UUID]int{p1: 2})

	input := UpdateInput{
		SaleID:     sale.ID,
		CustomerID: customerID,
		Method:     enums.PaymentMethodTransfer,
		Discount:   decimal.Zero,
		Lines: []LineInput{
			{ProductID: p1, Quantity: 2},
			{ProductID: p2, Quantity: 4},
		},
	}

	svc := newTestService(t, repo)
	first, err := svc.Update(context.Background(), input)
	require.NoError(t, err)

	second, err := svc.Update(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Len(t, repo.lines, 2)
	assert.Equal(t, 2, repo.lines[p1].Quantity)
	assert.Equal(t, 4, repo.lines[p2].Quantity)
}

func TestUpdateReportsProductsBeforeCustomer(t *testing.T) {
	repo := newStubSalesRepo()
	sale := seedSale(repo, uuid.New(), nil)

	svc := newTestService(t, repo)
	_, err := svc.Update(context.Background(), UpdateInput{
		SaleID:     sale.ID,
		CustomerID: uuid.New(), // unknown
		Method:     enums.PaymentMethodCash,
		Lines:      []LineInput{{ProductID: uuid.New(), Quantity: 1}}, // also unknown
	})

	require.Error(t, err)
	assert.Equal(t, "invalid selected products", pkgerrors.As(err).Message())
}

func TestUpdateMissingSaleIsNotFound(t *testing.T) {
	repo := newStubSalesRepo()
	customerID := uuid.New()
	productID := uuid.New()
	repo.customers[customerID] = true
	repo.products[productID] = price("1")

	svc := newTestService(t, repo)
	_, err := svc.Update(context.Background(), UpdateInput{
		SaleID:     uuid.New(),
		CustomerID: customerID,
		Method:     enums.PaymentMethodCash,
		Lines:      []LineInput{{ProductID: productID, Quantity: 1}},
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Zero(t, repo.writes)
}

func TestDeleteMissingSaleIsNotFound(t *testing.T) {
	repo := newStubSalesRepo()
	svc := newTestService(t, repo)

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound))
	assert.Zero(t, repo.writes)
}

func TestDeleteRemovesSaleAndLines(t *testing.T) {
	repo := newStubSalesRepo()
	customerID := uuid.New()
	p1 := uuid.New()
	sale := seedSale(repo, customerID, map[uuid.UUID]int{p1: 2})

	svc := newTestService(t, repo)
	require.NoError(t, svc.Delete(context.Background(), sale.ID))
	assert.Nil(t, repo.sale)
	assert.Empty(t, repo.lines)
}

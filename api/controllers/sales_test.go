package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	salesvc "github.com/adamkadry/backoffice-api/internal/sales"
	"github.com/adamkadry/backoffice-api/pkg/db/models"
	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/adamkadry/backoffice-api/pkg/types"
)

type stubSalesService struct {
	createInput *salesvc.CreateInput
	createSale  *models.Sale
	createErr   error

	updateInput *salesvc.UpdateInput
	updateSale  *models.Sale
	updateErr   error

	deleteID  uuid.UUID
	deleteErr error
}

func (s *stubSalesService) Create(ctx context.Context, input salesvc.CreateInput) (*models.Sale, error) {
	s.createInput = &input
	return s.createSale, s.createErr
}

func (s *stubSalesService) Update(ctx context.Context, input salesvc.UpdateInput) (*models.Sale, error) {
	s.updateInput = &input
	return s.updateSale, s.updateErr
}

func (s *stubSalesService) Delete(ctx context.Context, saleID uuid.UUID) error {
	s.deleteID = saleID
	return s.deleteErr
}

func (s *stubSalesService) Get(ctx context.Context, saleID uuid.UUID) (*models.Sale, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
}

func (s *stubSalesService) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	return listing.NewPage([]models.Sale{}, 0, listing.Normalize(params)), nil
}

func TestCreateSaleDecodesAndForwards(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	svc := &stubSalesService{createSale: &models.Sale{ID: uuid.New(), CustomerID: customerID}}

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"method": "cash",
		"discount": "5.00",
		"lines": [{"product_id": %q, "quantity": 2}]
	}`, customerID, productID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateSale(svc, nil)(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.createInput)
	assert.Equal(t, customerID, svc.createInput.CustomerID)
	require.Len(t, svc.createInput.Lines, 1)
	assert.Equal(t, productID, svc.createInput.Lines[0].ProductID)
	assert.Equal(t, 2, svc.createInput.Lines[0].Quantity)
	assert.True(t, svc.createInput.Discount.Equal(decimal.RequireFromString("5.00")))
}

func TestCreateSaleRejectsUnknownFields(t *testing.T) {
	svc := &stubSalesService{}
	body := `{"customer_id": "x", "method": "cash", "lines": [], "bogus": 1}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateSale(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.createInput)
}

func TestCreateSaleRejectsZeroQuantity(t *testing.T) {
	svc := &stubSalesService{}
	body := fmt.Sprintf(`{
		"customer_id": %q,
		"method": "cash",
		"lines": [{"product_id": %q, "quantity": 0}]
	}`, uuid.New(), uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateSale(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.createInput)
}

func TestCreateSaleRejectsUnknownMethod(t *testing.T) {
	svc := &stubSalesService{}
	body := fmt.Sprintf(`{
		"customer_id": %q,
		"method": "barter",
		"lines": [{"product_id": %q, "quantity": 1}]
	}`, uuid.New(), uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateSale(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSaleSurfacesServiceErrors(t *testing.T) {
	saleID := uuid.New()
	svc := &stubSalesService{updateErr: pkgerrors.New(pkgerrors.CodeValidation, "invalid selected products")}

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"method": "card",
		"lines": [{"product_id": %q, "quantity": 1}]
	}`, uuid.New(), uuid.New())

	req := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/api/v1/sales/"+saleID.String(), strings.NewReader(body)),
		"saleId", saleID.String(),
	)
	rec := httptest.NewRecorder()
	UpdateSale(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "invalid selected products", envelope.Error.Message)
	require.NotNil(t, svc.updateInput)
	assert.Equal(t, saleID, svc.updateInput.SaleID)
}

func TestDeleteSaleParsesID(t *testing.T) {
	saleID := uuid.New()
	svc := &stubSalesService{}

	req := withURLParam(
		httptest.NewRequest(http.MethodDelete, "/api/v1/sales/"+saleID.String(), nil),
		"saleId", saleID.String(),
	)
	rec := httptest.NewRecorder()
	DeleteSale(svc, nil)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saleID, svc.deleteID)
}

func TestDeleteSaleRejectsMalformedID(t *testing.T) {
	svc := &stubSalesService{}
	req := withURLParam(
		httptest.NewRequest(http.MethodDelete, "/api/v1/sales/nope", nil),
		"saleId", "nope",
	)
	rec := httptest.NewRecorder()
	DeleteSale(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uuid.Nil, svc.deleteID)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

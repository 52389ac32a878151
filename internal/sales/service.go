package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/adamkadry/backoffice-api/pkg/db/models"
	"github.com/adamkadry/backoffice-api/pkg/enums"
	pkgerrors "github.com/adamkadry/backoffice-api/pkg/errors"
	"github.com/adamkadry/backoffice-api/pkg/listing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service validates and materializes sales, and keeps persisted line sets
// consistent with resubmitted ones.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Sale, error)
	Update(ctx context.Context, input UpdateInput) (*models.Sale, error)
	Delete(ctx context.Context, saleID uuid.UUID) error
	Get(ctx context.Context, saleID uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, params listing.Params) (*listing.Page, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a sale service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Sale, error) {
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}
	if err := validateCommon(input.CustomerID, input.Method, input.Discount, input.Lines); err != nil {
		return nil, err
	}

	var sale *models.Sale
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := s.requireCustomer(ctx, repo, input.CustomerID); err != nil {
			return err
		}
		if err := s.requireProducts(ctx, repo, input.Lines); err != nil {
			return err
		}

		amount, err := s.computeTotal(ctx, repo, input.Lines)
		if err != nil {
			return err
		}

		sale = &models.Sale{
			Method:     input.Method,
			Amount:     amount,
			Discount:   input.Discount,
			CustomerID: input.CustomerID,
			CreatedBy:  input.ActorID,
		}
		if err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
		}
		if err := s.createMissingLines(ctx, repo, sale.ID, input.Lines); err != nil {
			return err
		}

		lines, err := repo.ListLines(ctx, sale.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale lines")
		}
		sale.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Sale, error) {
	if input.SaleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale id required")
	}
	if err := validateCommon(input.CustomerID, input.Method, input.Discount, input.Lines); err != nil {
		return nil, err
	}

	var sale *models.Sale
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		sale, err = repo.FindSale(ctx, input.SaleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
		}

		// Products are checked before the customer so that a submission that
		// is wrong on both fronts surfaces the product message first.
		if err := s.requireProducts(ctx, repo, input.Lines); err != nil {
			return err
		}
		if err := s.requireCustomer(ctx, repo, input.CustomerID); err != nil {
			return err
		}

		amount, err := s.computeTotal(ctx, repo, input.Lines)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"method":      input.Method,
			"amount":      amount,
			"discount":    input.Discount,
			"customer_id": input.CustomerID,
		}
		if err := repo.UpdateSale(ctx, sale.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale")
		}

		submitted := make([]uuid.UUID, 0, len(input.Lines))
		for _, line := range input.Lines {
			submitted = append(submitted, line.ProductID)
		}
		if err := repo.DeleteLinesNotIn(ctx, sale.ID, submitted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop removed lines")
		}
		// Lines already present keep their stored quantity; only newly
		// submitted products gain a line. The recomputed amount above uses
		// the submitted quantities regardless.
		if err := s.createMissingLines(ctx, repo, sale.ID, input.Lines); err != nil {
			return err
		}

		sale.Method = input.Method
		sale.Amount = amount
		sale.Discount = input.Discount
		sale.CustomerID = input.CustomerID

		lines, err := repo.ListLines(ctx, sale.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale lines")
		}
		sale.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) Delete(ctx context.Context, saleID uuid.UUID) error {
	if saleID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindSale(ctx, saleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
		}
		if err := repo.DeleteLines(ctx, saleID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sale lines")
		}
		if err := repo.DeleteSale(ctx, saleID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sale")
		}
		return nil
	})
}

func (s *service) Get(ctx context.Context, saleID uuid.UUID) (*models.Sale, error) {
	sale, err := s.repo.FindSaleDetail(ctx, saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return sale, nil
}

func (s *service) List(ctx context.Context, params listing.Params) (*listing.Page, error) {
	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return page, nil
}

func validateCommon(customerID uuid.UUID, method enums.PaymentMethod, discount decimal.Decimal, lines []LineInput) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if discount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}
	if len(lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one product is required")
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
		}
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	}
	return nil
}

func (s *service) requireCustomer(ctx context.Context, repo Repository, customerID uuid.UUID) error {
	ok, err := repo.CustomerExists(ctx, customerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check customer")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid selected customer")
	}
	return nil
}

func (s *service) requireProducts(ctx context.Context, repo Repository, lines []LineInput) error {
	for _, line := range lines {
		ok, err := repo.ProductExists(ctx, line.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid selected products")
		}
	}
	return nil
}

func (s *service) computeTotal(ctx context.Context, repo Repository, lines []LineInput) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		price, err := repo.ProductPrice(ctx, line.ProductID)
		if err != nil {
			return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read product price")
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

func (s *service) createMissingLines(ctx context.Context, repo Repository, saleID uuid.UUID, lines []LineInput) error {
	for _, line := range lines {
		exists, err := repo.LineExists(ctx, saleID, line.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sale line")
		}
		if exists {
			continue
		}
		if err := repo.CreateLine(ctx, &models.SaleLine{
			SaleID:    saleID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale line")
		}
	}
	return nil
}

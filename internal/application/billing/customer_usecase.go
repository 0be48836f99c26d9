package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/shopspring/decimal"
)

// CustomerUseCase casos de uso para clientes y condiciones de pago.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. La condición de pago, si se envía, debe existir.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	taxID := strings.TrimSpace(in.TaxID)
	if in.Name == "" || taxID == "" || in.CreditLimit.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	termCode := codes.Normalize(in.PaymentTermCode)
	if termCode != "" {
		term, err := uc.repo.GetTerm(ctx, termCode)
		if err != nil {
			return nil, err
		}
		if term == nil {
			return nil, fmt.Errorf("condición de pago %s: %w", termCode, domain.ErrNotFound)
		}
	}
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:              uuid.New().String(),
		Name:            in.Name,
		TaxID:           taxID,
		Email:           in.Email,
		Phone:           in.Phone,
		PaymentTermCode: termCode,
		CreditLimit:     in.CreditLimit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista clientes.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// CreateTerm crea una condición de pago (días de plazo >= 0).
func (uc *CustomerUseCase) CreateTerm(ctx context.Context, in dto.PaymentTermRequest) (*dto.PaymentTermResponse, error) {
	code := codes.Normalize(in.Code)
	if code == "" || in.Name == "" || in.Days < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetTerm(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	term := &entity.PaymentTerm{Code: code, Name: in.Name, Days: in.Days}
	if err := uc.repo.CreateTerm(ctx, term); err != nil {
		return nil, err
	}
	return &dto.PaymentTermResponse{Code: term.Code, Name: term.Name, Days: term.Days}, nil
}

// ListTerms lista las condiciones de pago.
func (uc *CustomerUseCase) ListTerms(ctx context.Context) ([]dto.PaymentTermResponse, error) {
	list, err := uc.repo.ListTerms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentTermResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.PaymentTermResponse{Code: t.Code, Name: t.Name, Days: t.Days})
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		TaxID:           c.TaxID,
		Email:           c.Email,
		Phone:           c.Phone,
		PaymentTermCode: c.PaymentTermCode,
		CreditLimit:     c.CreditLimit,
	}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/sjperalta/vehifin-api/internal/storage"
	"gorm.io/gorm"
)

// ContractDetail is the contract with its schedule and the schedule's summary
type ContractDetail struct {
	models.ContractResponse
	PaymentSummary roster.PaymentSummary `json:"payment_summary"`
}

type ContractService struct {
	repo    repository.ContractRepository
	engine  *roster.Engine
	storage *storage.LocalStorage
}

func NewContractService(repo repository.ContractRepository, engine *roster.Engine, storage *storage.LocalStorage) *ContractService {
	return &ContractService{
		repo:    repo,
		engine:  engine,
		storage: storage,
	}
}

// List returns the roster with params applied. Exact status and company filters are also
// pushed down to the repository.
func (s *ContractService) List(ctx context.Context, params roster.ViewParameters) ([]models.ContractSummary, error) {
	query := &repository.ContractQuery{}
	if params.StatusFilter != roster.FilterAll {
		query.Status = params.StatusFilter
	}
	if params.CompanyFilter != roster.FilterAll {
		query.CompanyName = params.CompanyFilter
	}

	contracts, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	return s.engine.Apply(models.Summaries(contracts), params), nil
}

// Filters returns the statuses and companies present in the roster
func (s *ContractService) Filters(ctx context.Context) (roster.FilterOptions, error) {
	contracts, err := s.repo.List(ctx, nil)
	if err != nil {
		return roster.FilterOptions{}, fmt.Errorf("failed to list contracts: %w", err)
	}
	return s.engine.Options(models.Summaries(contracts)), nil
}

// FindByID loads a contract with its payment schedule
func (s *ContractService) FindByID(ctx context.Context, id string) (*models.Contract, error) {
	contract, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return contract, nil
}

// Detail returns the contract detail view
func (s *ContractService) Detail(ctx context.Context, id string) (*ContractDetail, error) {
	contract, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ContractDetail{
		ContractResponse: contract.ToResponse(),
		PaymentSummary:   roster.Summarize(contract.Installments),
	}, nil
}

// PaymentSummary summarizes the contract's payment schedule
func (s *ContractService) PaymentSummary(ctx context.Context, id string) (roster.PaymentSummary, error) {
	contract, err := s.FindByID(ctx, id)
	if err != nil {
		return roster.PaymentSummary{}, err
	}
	return roster.Summarize(contract.Installments), nil
}

// Photo returns the storage path of the customer's or guarantor's photo
func (s *ContractService) Photo(ctx context.Context, id, person string) (string, error) {
	contract, err := s.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	var p models.Person
	switch person {
	case repository.PersonCustomer:
		p = contract.Customer
	case repository.PersonGuarantor:
		p = contract.Guarantor
	default:
		return "", ErrNotFound
	}

	if !p.HasPhoto() || s.storage == nil || !s.storage.Exists(*p.PhotoPath) {
		return "", ErrNoPhoto
	}
	return s.storage.GetFullPath(*p.PhotoPath)
}

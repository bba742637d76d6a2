package repository

import (
	"context"

	"github.com/sjperalta/vehifin-api/internal/models"
	"gorm.io/gorm"
)

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	FindByID(ctx context.Context, id string) (*models.Contract, error)
	List(ctx context.Context, query *ContractQuery) ([]models.Contract, error)
	Create(ctx context.Context, contract *models.Contract) error
	CreateBatch(ctx context.Context, contracts []models.Contract) error
	UpdatePhotoPath(ctx context.Context, id, person, path string) error
	Count(ctx context.Context) (int64, error)
}

// Photo owners, matching the embedded column prefixes of models.Contract
const (
	PersonCustomer  = "customer"
	PersonGuarantor = "guarantor"
)

// ContractQuery narrows the roster by exact status and company. Empty fields match everything.
type ContractQuery struct {
	Status      string
	CompanyName string
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

// FindByID loads the contract with its payment schedule in installment order
func (r *contractRepository) FindByID(ctx context.Context, id string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sno ASC")
		}).
		Where("id = ?", id).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// List returns contracts without their schedules, ordered by contract number
func (r *contractRepository) List(ctx context.Context, query *ContractQuery) ([]models.Contract, error) {
	var contracts []models.Contract

	db := r.db.WithContext(ctx).Model(&models.Contract{})
	if query != nil {
		if query.Status != "" {
			db = db.Where("status = ?", query.Status)
		}
		if query.CompanyName != "" {
			db = db.Where("company_name = ?", query.CompanyName)
		}
	}

	err := db.Order("contract_number ASC").Find(&contracts).Error
	return contracts, err
}

// Create inserts the contract together with its installments
func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// CreateBatch inserts all contracts in one transaction
func (r *contractRepository) CreateBatch(ctx context.Context, contracts []models.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(contracts, 50).Error
	})
}

// UpdatePhotoPath stores the photo location of the customer or the guarantor
func (r *contractRepository) UpdatePhotoPath(ctx context.Context, id, person, path string) error {
	var column string
	switch person {
	case PersonCustomer:
		column = "customer_photo_path"
	case PersonGuarantor:
		column = "guarantor_photo_path"
	default:
		return gorm.ErrInvalidField
	}

	result := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ?", id).
		Update(column, path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contractRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Contract{}).Count(&total).Error
	return total, err
}

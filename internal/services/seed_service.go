package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/vehifin-api/internal/fixtures"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/internal/storage"
	"github.com/sjperalta/vehifin-api/pkg/logger"
)

// SeedResult reports what a seeding run did
type SeedResult struct {
	Message          string `json:"message"`
	Created          bool   `json:"created"`
	ContractsCreated int    `json:"contracts_created"`
}

// SeedService fills an empty contract store with sample or fixture contracts
type SeedService struct {
	contracts repository.ContractRepository
	storage   *storage.LocalStorage
	newRand   func() *rand.Rand
}

func NewSeedService(contracts repository.ContractRepository, storage *storage.LocalStorage) *SeedService {
	return &SeedService{
		contracts: contracts,
		storage:   storage,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// WithSeed makes sample generation deterministic
func (s *SeedService) WithSeed(seed int64) *SeedService {
	s.newRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	return s
}

// GenerateSample creates the sample roster. It returns ErrAlreadySeeded, with a result
// describing the existing data, when any contract exists.
func (s *SeedService) GenerateSample(ctx context.Context) (*SeedResult, error) {
	if result, err := s.ensureEmpty(ctx); err != nil {
		return result, err
	}

	samples := GenerateSampleContracts(s.newRand())
	contracts := make([]models.Contract, 0, len(samples))
	for _, sample := range samples {
		c := sample.Contract
		c.ID = uuid.NewString()
		c.Customer.PhotoPath = s.savePhoto(ctx, c.ID, repository.PersonCustomer, &fixtures.Photo{Data: sample.CustomerPhoto, Ext: ".svg"})
		c.Guarantor.PhotoPath = s.savePhoto(ctx, c.ID, repository.PersonGuarantor, &fixtures.Photo{Data: sample.GuarantorPhoto, Ext: ".svg"})
		contracts = append(contracts, c)
	}

	return s.insert(ctx, contracts, "Sample data created successfully")
}

// ImportFixtures stores fixture records, photos included
func (s *SeedService) ImportFixtures(ctx context.Context, records []fixtures.Record) (*SeedResult, error) {
	if result, err := s.ensureEmpty(ctx); err != nil {
		return result, err
	}

	contracts := make([]models.Contract, 0, len(records))
	for _, r := range records {
		c := r.ToContract()
		if c.ID == "" {
			c.ID = uuid.NewString()
			for i := range c.Installments {
				c.Installments[i].ContractID = c.ID
			}
		}

		photo, err := r.CustomerPhoto()
		if err != nil {
			logger.WithContext(ctx).Warn("skipping customer photo", "contract", c.ContractNumber, "error", err)
		}
		c.Customer.PhotoPath = s.savePhoto(ctx, c.ID, repository.PersonCustomer, photo)

		photo, err = r.GuarantorPhoto()
		if err != nil {
			logger.WithContext(ctx).Warn("skipping guarantor photo", "contract", c.ContractNumber, "error", err)
		}
		c.Guarantor.PhotoPath = s.savePhoto(ctx, c.ID, repository.PersonGuarantor, photo)

		contracts = append(contracts, c)
	}

	return s.insert(ctx, contracts, "Fixtures imported successfully")
}

func (s *SeedService) ensureEmpty(ctx context.Context) (*SeedResult, error) {
	existing, err := s.contracts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contracts: %w", err)
	}
	if existing > 0 {
		return &SeedResult{
			Message: fmt.Sprintf("Data already exists (%d contracts)", existing),
			Created: false,
		}, ErrAlreadySeeded
	}
	return nil, nil
}

func (s *SeedService) insert(ctx context.Context, contracts []models.Contract, message string) (*SeedResult, error) {
	if err := s.contracts.CreateBatch(ctx, contracts); err != nil {
		return nil, fmt.Errorf("failed to store contracts: %w", err)
	}

	logger.WithContext(ctx).Info("contracts seeded", "count", len(contracts))
	return &SeedResult{
		Message:          message,
		Created:          true,
		ContractsCreated: len(contracts),
	}, nil
}

// savePhoto stores the photo and returns its path, or nil when there is nothing to store
func (s *SeedService) savePhoto(ctx context.Context, contractID, person string, photo *fixtures.Photo) *string {
	if photo == nil || len(photo.Data) == 0 || s.storage == nil {
		return nil
	}
	path, err := s.storage.SavePhoto(contractID, person, photo.Ext, photo.Data)
	if err != nil {
		logger.WithContext(ctx).Warn("failed to store photo", "contract_id", contractID, "person", person, "error", err)
		return nil
	}
	return &path
}

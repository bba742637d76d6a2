package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/vehifin-api/internal/database"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testContract(id, number, company, status string) models.Contract {
	received := "2024-02-15"
	return models.Contract{
		ID:             id,
		ContractNumber: number,
		ContractDate:   "2024-01-15",
		Status:         status,
		CompanyName:    company,
		Customer:       models.Person{Name: "Customer " + id},
		Vehicle:        models.Vehicle{Make: "Tata", Model: "Nexon", RegistrationNumber: "MH-01-" + id},
		Loan: models.Loan{
			EMIAmount:         decimal.NewFromInt(15000),
			OutstandingAmount: decimal.NewFromInt(100000),
		},
		Installments: []models.Installment{
			{Sno: 2, EMIAmount: decimal.NewFromInt(15000), DueDate: "2024-03-15"},
			{Sno: 1, EMIAmount: decimal.NewFromInt(15000), DueDate: "2024-02-15",
				PaymentReceived: decimal.NewFromInt(15000), DateReceived: &received},
		},
	}
}

func TestContractRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(newTestDB(t))

	c := testContract("c1", "FIN-1", "HDFC Bank", models.ContractStatusLive)
	require.NoError(t, repo.Create(ctx, &c))

	found, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "FIN-1", found.ContractNumber)
	assert.Equal(t, "Customer c1", found.Customer.Name)
	assert.Equal(t, "MH-01-c1", found.Vehicle.RegistrationNumber)
	assert.True(t, found.Loan.OutstandingAmount.Equal(decimal.NewFromInt(100000)))

	require.Len(t, found.Installments, 2)
	assert.Equal(t, 1, found.Installments[0].Sno)
	assert.Equal(t, 2, found.Installments[1].Sno)
	require.NotNil(t, found.Installments[0].DateReceived)
	assert.Equal(t, "2024-02-15", *found.Installments[0].DateReceived)
	assert.Nil(t, found.Installments[1].DateReceived)
}

func TestContractRepository_FindByID_NotFound(t *testing.T) {
	repo := NewContractRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContractRepository_CreateAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(newTestDB(t))

	c := testContract("", "FIN-9", "SBI", models.ContractStatusLive)
	require.NoError(t, repo.Create(ctx, &c))
	assert.NotEmpty(t, c.ID)
}

func TestContractRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(newTestDB(t))

	require.NoError(t, repo.CreateBatch(ctx, []models.Contract{
		testContract("c3", "FIN-3", "SBI", models.ContractStatusSeized),
		testContract("c1", "FIN-1", "HDFC Bank", models.ContractStatusLive),
		testContract("c2", "FIN-2", "HDFC Bank", models.ContractStatusLive),
	}))

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "FIN-1", all[0].ContractNumber)
	assert.Empty(t, all[0].Installments)

	tests := []struct {
		name  string
		query ContractQuery
		want  int
	}{
		{name: "status", query: ContractQuery{Status: models.ContractStatusLive}, want: 2},
		{name: "company", query: ContractQuery{CompanyName: "SBI"}, want: 1},
		{name: "both", query: ContractQuery{Status: models.ContractStatusSeized, CompanyName: "HDFC Bank"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, &tt.query)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestContractRepository_CreateBatchEmpty(t *testing.T) {
	repo := NewContractRepository(newTestDB(t))
	assert.NoError(t, repo.CreateBatch(context.Background(), nil))
}

func TestContractRepository_UpdatePhotoPath(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(newTestDB(t))
	c := testContract("c1", "FIN-1", "SBI", models.ContractStatusLive)
	require.NoError(t, repo.Create(ctx, &c))

	require.NoError(t, repo.UpdatePhotoPath(ctx, "c1", PersonGuarantor, "photos/c1/guarantor.png"))

	found, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, found.Customer.HasPhoto())
	require.True(t, found.Guarantor.HasPhoto())
	assert.Equal(t, "photos/c1/guarantor.png", *found.Guarantor.PhotoPath)

	assert.ErrorIs(t, repo.UpdatePhotoPath(ctx, "missing", PersonCustomer, "x"), gorm.ErrRecordNotFound)
	assert.Error(t, repo.UpdatePhotoPath(ctx, "c1", "driver", "x"))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &models.User{Username: "admin", EncryptedPassword: "hash", FullName: "Admin"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.Username)

	err = repo.Create(ctx, &models.User{Username: "admin", EncryptedPassword: "other"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	now := time.Now()
	require.NoError(t, repo.TouchLastLogin(ctx, user.ID, now))
	byID, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.LastLoginAt)
	assert.WithinDuration(t, now, *byID.LastLoginAt, time.Second)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRefreshTokenRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewRefreshTokenRepository(db)

	user := &models.User{Username: "admin", EncryptedPassword: "hash"}
	require.NoError(t, users.Create(ctx, user))

	past := time.Now().Add(-time.Hour).UTC()
	future := time.Now().Add(time.Hour).UTC()
	require.NoError(t, repo.Create(ctx, &models.RefreshToken{UserID: user.ID, Token: "expired", ExpiresAt: &past}))
	require.NoError(t, repo.Create(ctx, &models.RefreshToken{UserID: user.ID, Token: "valid", ExpiresAt: &future}))
	require.NoError(t, repo.Create(ctx, &models.RefreshToken{UserID: user.ID, Token: "forever"}))

	found, err := repo.FindByToken(ctx, "valid")
	require.NoError(t, err)
	assert.False(t, found.IsExpired())

	removed, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.FindByToken(ctx, "expired")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, "valid"))
	_, err = repo.FindByToken(ctx, "valid")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteByUser(ctx, user.ID))
	_, err = repo.FindByToken(ctx, "forever")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuditRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditRepository(newTestDB(t))

	for _, action := range []string{models.AuditActionLogin, models.AuditActionView, models.AuditActionView} {
		require.NoError(t, repo.Create(ctx, &models.AuditLog{
			Username: "admin",
			Action:   action,
			Entity:   "Contract",
			EntityID: "1",
		}))
	}

	query := NewListQuery()
	logs, total, err := repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 3)

	query.Filters["action"] = models.AuditActionView
	query.PerPage = 1
	logs, total, err = repo.List(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionView, logs[0].Action)
}

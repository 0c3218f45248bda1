package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrm/backend/internal/domain/contract"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

var _ contract.ContractRepository = (*GormContractRepository)(nil)

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// Create creates a new contract
func (r *GormContractRepository) Create(ctx context.Context, c *contract.MemberContract) error {
	model := models.ContractModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing contract
func (r *GormContractRepository) Update(ctx context.Context, c *contract.MemberContract) error {
	model := models.ContractModelFromDomain(c)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a contract by ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.MemberContract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEnvelopeID finds the contract tracking a provider envelope
func (r *GormContractRepository) FindByEnvelopeID(ctx context.Context, envelopeID string) (*contract.MemberContract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("envelope_id = ?", envelopeID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberID returns a member's contracts, newest first
func (r *GormContractRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*contract.MemberContract, error) {
	var rows []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return contractRowsToDomain(rows), nil
}

// FindAll returns all contracts, newest first
func (r *GormContractRepository) FindAll(ctx context.Context) ([]*contract.MemberContract, error) {
	var rows []models.ContractModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return contractRowsToDomain(rows), nil
}

func contractRowsToDomain(rows []models.ContractModel) []*contract.MemberContract {
	contracts := make([]*contract.MemberContract, len(rows))
	for i := range rows {
		contracts[i] = rows[i].ToDomain()
	}
	return contracts
}

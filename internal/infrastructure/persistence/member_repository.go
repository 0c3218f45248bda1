package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

var _ identity.MemberRepository = (*GormMemberRepository)(nil)

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(ctx context.Context, member *identity.Member) error {
	model := models.MemberModelFromDomain(member)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing member
func (r *GormMemberRepository) Update(ctx context.Context, member *identity.Member) error {
	model := models.MemberModelFromDomain(member)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a member by ID, including retired members
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns members matching the filter with the total count
func (r *GormMemberRepository) FindAll(ctx context.Context, filter identity.MemberFilter) ([]*identity.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberModel{})

	if !filter.IncludeRetired {
		query = query.Where("deleted_at IS NULL")
	}
	if filter.Company != nil {
		query = query.Where("company = ?", *filter.Company)
	}
	if filter.EmploymentStatus != nil {
		query = query.Where("employment_status = ?", *filter.EmploymentStatus)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := "%" + kw + "%"
		query = query.Where("name LIKE ? OR name_kana LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var rows []models.MemberModel
	if err := query.Order("join_date ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	members := make([]*identity.Member, len(rows))
	for i := range rows {
		members[i] = rows[i].ToDomain()
	}
	return members, total, nil
}

// FindActive returns all members that have not been soft-deleted
func (r *GormMemberRepository) FindActive(ctx context.Context) ([]*identity.Member, error) {
	var rows []models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("join_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	members := make([]*identity.Member, len(rows))
	for i := range rows {
		members[i] = rows[i].ToDomain()
	}
	return members, nil
}

// GormUserAccountRepository implements UserAccountRepository using GORM
type GormUserAccountRepository struct {
	db *gorm.DB
}

var _ identity.UserAccountRepository = (*GormUserAccountRepository)(nil)

// NewGormUserAccountRepository creates a new GormUserAccountRepository
func NewGormUserAccountRepository(db *gorm.DB) *GormUserAccountRepository {
	return &GormUserAccountRepository{db: db}
}

// Create creates a new account
func (r *GormUserAccountRepository) Create(ctx context.Context, account *identity.UserAccount) error {
	model := models.UserAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing account
func (r *GormUserAccountRepository) Update(ctx context.Context, account *identity.UserAccount) error {
	model := models.UserAccountModelFromDomain(account)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an account by ID
func (r *GormUserAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.UserAccount, error) {
	var model models.UserAccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an account by its login email
func (r *GormUserAccountRepository) FindByEmail(ctx context.Context, email string) (*identity.UserAccount, error) {
	var model models.UserAccountModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberID finds the account belonging to a member
func (r *GormUserAccountRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) (*identity.UserAccount, error) {
	var model models.UserAccountModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if a login email is already taken
func (r *GormUserAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserAccountModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

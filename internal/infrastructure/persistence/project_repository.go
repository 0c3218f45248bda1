package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hrm/backend/internal/domain/project"
	"github.com/hrm/backend/internal/domain/shared"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

var _ project.ProjectRepository = (*GormProjectRepository)(nil)

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing project
func (r *GormProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model := models.ProjectModelFromDomain(p)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns projects, optionally restricted to active ones
func (r *GormProjectRepository) FindAll(ctx context.Context, activeOnly bool) ([]*project.Project, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var rows []models.ProjectModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	projects := make([]*project.Project, len(rows))
	for i := range rows {
		projects[i] = rows[i].ToDomain()
	}
	return projects, nil
}

// FindByIDs returns the projects with the given IDs
func (r *GormProjectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*project.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	projects := make([]*project.Project, len(rows))
	for i := range rows {
		projects[i] = rows[i].ToDomain()
	}
	return projects, nil
}

// GormPositionRepository implements PositionRepository using GORM
type GormPositionRepository struct {
	db *gorm.DB
}

var _ project.PositionRepository = (*GormPositionRepository)(nil)

// NewGormPositionRepository creates a new GormPositionRepository
func NewGormPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// Create creates a new position
func (r *GormPositionRepository) Create(ctx context.Context, p *project.Position) error {
	model := models.PositionModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a position
func (r *GormPositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PositionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a position by ID
func (r *GormPositionRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Position, error) {
	var model models.PositionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all positions
func (r *GormPositionRepository) FindAll(ctx context.Context) ([]*project.Position, error) {
	var rows []models.PositionModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	positions := make([]*project.Position, len(rows))
	for i := range rows {
		positions[i] = rows[i].ToDomain()
	}
	return positions, nil
}

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

var _ project.AssignmentRepository = (*GormAssignmentRepository)(nil)

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a new staffing entry
func (r *GormAssignmentRepository) Create(ctx context.Context, a *project.ProjectAssignment) error {
	model := models.AssignmentModelFromDomain(a)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing staffing entry
func (r *GormAssignmentRepository) Update(ctx context.Context, a *project.ProjectAssignment) error {
	model := models.AssignmentModelFromDomain(a)
	result := r.db.WithContext(ctx).Select("*").Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a staffing entry
func (r *GormAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AssignmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a staffing entry by ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.ProjectAssignment, error) {
	var model models.AssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberID returns a member's staffing entries
func (r *GormAssignmentRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*project.ProjectAssignment, error) {
	return r.findAssignments(ctx, "member_id = ?", memberID)
}

// FindByProjectID returns a project's staffing entries
func (r *GormAssignmentRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*project.ProjectAssignment, error) {
	return r.findAssignments(ctx, "project_id = ?", projectID)
}

// FindAll returns all staffing entries
func (r *GormAssignmentRepository) FindAll(ctx context.Context) ([]*project.ProjectAssignment, error) {
	var rows []models.AssignmentModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return assignmentRowsToDomain(rows), nil
}

func (r *GormAssignmentRepository) findAssignments(ctx context.Context, query string, arg any) ([]*project.ProjectAssignment, error) {
	var rows []models.AssignmentModel
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return assignmentRowsToDomain(rows), nil
}

func assignmentRowsToDomain(rows []models.AssignmentModel) []*project.ProjectAssignment {
	assignments := make([]*project.ProjectAssignment, len(rows))
	for i := range rows {
		assignments[i] = rows[i].ToDomain()
	}
	return assignments
}

// GormPLRepository implements PLRepository using GORM
type GormPLRepository struct {
	db *gorm.DB
}

var _ project.PLRepository = (*GormPLRepository)(nil)

// NewGormPLRepository creates a new GormPLRepository
func NewGormPLRepository(db *gorm.DB) *GormPLRepository {
	return &GormPLRepository{db: db}
}

// Upsert inserts or replaces the (project, month) record
func (r *GormPLRepository) Upsert(ctx context.Context, record *project.PLRecord) error {
	model := models.PLRecordModelFromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"revenue", "labor_cost", "outsourcing_cost", "other_cost", "notes", "updated_at",
			}),
		}).
		Create(model).Error
}

// FindByProjectAndMonth finds the record for one project and month
func (r *GormPLRepository) FindByProjectAndMonth(ctx context.Context, projectID uuid.UUID, month valueobject.Month) (*project.PLRecord, error) {
	var model models.PLRecordModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND month = ?", projectID, month.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMonth returns all project records for a month
func (r *GormPLRepository) FindByMonth(ctx context.Context, month valueobject.Month) ([]*project.PLRecord, error) {
	var rows []models.PLRecordModel
	if err := r.db.WithContext(ctx).
		Where("month = ?", month.String()).
		Order("project_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return plRowsToDomain(rows), nil
}

// FindByProject returns one project's records across months
func (r *GormPLRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*project.PLRecord, error) {
	var rows []models.PLRecordModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("month ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return plRowsToDomain(rows), nil
}

func plRowsToDomain(rows []models.PLRecordModel) []*project.PLRecord {
	records := make([]*project.PLRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records
}

// GormSelfReportRepository implements SelfReportRepository using GORM
type GormSelfReportRepository struct {
	db *gorm.DB
}

var _ project.SelfReportRepository = (*GormSelfReportRepository)(nil)

// NewGormSelfReportRepository creates a new GormSelfReportRepository
func NewGormSelfReportRepository(db *gorm.DB) *GormSelfReportRepository {
	return &GormSelfReportRepository{db: db}
}

// UpsertAll replaces the (member, month, project) rows in one transaction
func (r *GormSelfReportRepository) UpsertAll(ctx context.Context, reports []*project.SelfReport) error {
	if len(reports) == 0 {
		return nil
	}
	rows := make([]*models.SelfReportModel, len(reports))
	for i, report := range reports {
		rows[i] = models.SelfReportModelFromDomain(report)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "project_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hours", "notes", "updated_at",
			}),
		}).Create(&rows).Error
	})
}

// FindByMemberAndMonth returns a member's reports for a month
func (r *GormSelfReportRepository) FindByMemberAndMonth(ctx context.Context, memberID uuid.UUID, month valueobject.Month) ([]*project.SelfReport, error) {
	var rows []models.SelfReportModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND month = ?", memberID, month.String()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return selfReportRowsToDomain(rows), nil
}

// FindByMonth returns all members' reports for a month
func (r *GormSelfReportRepository) FindByMonth(ctx context.Context, month valueobject.Month) ([]*project.SelfReport, error) {
	var rows []models.SelfReportModel
	if err := r.db.WithContext(ctx).
		Where("month = ?", month.String()).
		Order("member_id ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return selfReportRowsToDomain(rows), nil
}

func selfReportRowsToDomain(rows []models.SelfReportModel) []*project.SelfReport {
	reports := make([]*project.SelfReport, len(rows))
	for i := range rows {
		reports[i] = rows[i].ToDomain()
	}
	return reports
}

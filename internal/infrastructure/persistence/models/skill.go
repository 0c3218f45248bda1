package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/skill"
)

// SkillCategoryModel is the persistence model for a SkillCategory
type SkillCategoryModel struct {
	BaseColumns
	Name      string `gorm:"type:varchar(100);not null"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SkillCategoryModel) TableName() string {
	return "skill_categories"
}

// ToDomain converts the persistence model to a domain SkillCategory
func (m *SkillCategoryModel) ToDomain() *skill.SkillCategory {
	return &skill.SkillCategory{
		BaseEntity: m.BaseColumns.entity(),
		Name:       m.Name,
		SortOrder:  m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain SkillCategory
func (m *SkillCategoryModel) FromDomain(e *skill.SkillCategory) {
	m.setEntity(e.BaseEntity)
	m.Name = e.Name
	m.SortOrder = e.SortOrder
}

// SkillCategoryModelFromDomain creates a new persistence model from a domain entity
func SkillCategoryModelFromDomain(e *skill.SkillCategory) *SkillCategoryModel {
	m := &SkillCategoryModel{}
	m.FromDomain(e)
	return m
}

// SkillModel is the persistence model for a Skill
type SkillModel struct {
	BaseColumns
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (SkillModel) TableName() string {
	return "skills"
}

// ToDomain converts the persistence model to a domain Skill
func (m *SkillModel) ToDomain() *skill.Skill {
	return &skill.Skill{
		BaseEntity: m.BaseColumns.entity(),
		CategoryID: m.CategoryID,
		Name:       m.Name,
	}
}

// FromDomain populates the persistence model from a domain Skill
func (m *SkillModel) FromDomain(e *skill.Skill) {
	m.setEntity(e.BaseEntity)
	m.CategoryID = e.CategoryID
	m.Name = e.Name
}

// SkillModelFromDomain creates a new persistence model from a domain entity
func SkillModelFromDomain(e *skill.Skill) *SkillModel {
	m := &SkillModel{}
	m.FromDomain(e)
	return m
}

// MemberSkillModel is the persistence model for a MemberSkill evaluation entry
type MemberSkillModel struct {
	BaseColumns
	MemberID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SkillID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Score       int       `gorm:"not null"`
	Note        string    `gorm:"type:text"`
	EvaluatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MemberSkillModel) TableName() string {
	return "member_skills"
}

// ToDomain converts the persistence model to a domain MemberSkill
func (m *MemberSkillModel) ToDomain() *skill.MemberSkill {
	return &skill.MemberSkill{
		BaseEntity:  m.BaseColumns.entity(),
		MemberID:    m.MemberID,
		SkillID:     m.SkillID,
		Score:       m.Score,
		Note:        m.Note,
		EvaluatedAt: m.EvaluatedAt,
	}
}

// FromDomain populates the persistence model from a domain MemberSkill
func (m *MemberSkillModel) FromDomain(e *skill.MemberSkill) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.SkillID = e.SkillID
	m.Score = e.Score
	m.Note = e.Note
	m.EvaluatedAt = e.EvaluatedAt
}

// MemberSkillModelFromDomain creates a new persistence model from a domain entity
func MemberSkillModelFromDomain(e *skill.MemberSkill) *MemberSkillModel {
	m := &MemberSkillModel{}
	m.FromDomain(e)
	return m
}

// EvaluationModel is the persistence model for a PersonnelEvaluation
type EvaluationModel struct {
	BaseColumns
	MemberID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_evaluation_member_month"`
	Month         string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_evaluation_member_month;index"`
	Performance   int       `gorm:"not null"`
	Attitude      int       `gorm:"not null"`
	SkillScore    int       `gorm:"not null"`
	Comment       string    `gorm:"type:text"`
	EvaluatedByID uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (EvaluationModel) TableName() string {
	return "personnel_evaluations"
}

// ToDomain converts the persistence model to a domain PersonnelEvaluation
func (m *EvaluationModel) ToDomain() *skill.PersonnelEvaluation {
	return &skill.PersonnelEvaluation{
		BaseEntity:    m.BaseColumns.entity(),
		MemberID:      m.MemberID,
		Month:         monthFromColumn(m.Month),
		Performance:   m.Performance,
		Attitude:      m.Attitude,
		SkillScore:    m.SkillScore,
		Comment:       m.Comment,
		EvaluatedByID: m.EvaluatedByID,
	}
}

// FromDomain populates the persistence model from a domain PersonnelEvaluation
func (m *EvaluationModel) FromDomain(e *skill.PersonnelEvaluation) {
	m.setEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.Month = monthColumn(e.Month)
	m.Performance = e.Performance
	m.Attitude = e.Attitude
	m.SkillScore = e.SkillScore
	m.Comment = e.Comment
	m.EvaluatedByID = e.EvaluatedByID
}

// EvaluationModelFromDomain creates a new persistence model from a domain entity
func EvaluationModelFromDomain(e *skill.PersonnelEvaluation) *EvaluationModel {
	m := &EvaluationModel{}
	m.FromDomain(e)
	return m
}

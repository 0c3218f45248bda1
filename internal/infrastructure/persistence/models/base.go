package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrm/backend/internal/domain/shared"
)

// BaseColumns carries the identity and timestamp columns shared by
// every table. Models embed it and translate to shared.BaseEntity at
// the repository boundary.
type BaseColumns struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (c *BaseColumns) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (c *BaseColumns) setEntity(e shared.BaseEntity) {
	c.ID = e.ID
	c.CreatedAt = e.CreatedAt
	c.UpdatedAt = e.UpdatedAt
}

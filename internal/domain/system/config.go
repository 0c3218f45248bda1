package system

import (
	"strings"

	"github.com/hrm/backend/internal/domain/shared"
)

// MaskedValue is what secret configuration values read back as
const MaskedValue = "********"

// SystemConfig is one database-backed configuration entry editable by
// admins. Secret entries never expose their stored value on reads.
type SystemConfig struct {
	shared.BaseEntity
	Key         string
	Value       string
	Secret      bool
	Description string
}

// NewSystemConfig creates a configuration entry
func NewSystemConfig(key, value string, secret bool, description string) (*SystemConfig, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_KEY", "Config key cannot be empty")
	}
	if len(key) > 100 {
		return nil, shared.NewDomainError("INVALID_KEY", "Config key cannot exceed 100 characters")
	}
	return &SystemConfig{
		BaseEntity:  shared.NewBaseEntity(),
		Key:         key,
		Value:       value,
		Secret:      secret,
		Description: description,
	}, nil
}

// SetValue replaces the stored value
func (c *SystemConfig) SetValue(value string) {
	c.Value = value
	c.Touch()
}

// DisplayValue returns the value as it may be shown to callers
func (c *SystemConfig) DisplayValue() string {
	if c.Secret {
		return MaskedValue
	}
	return c.Value
}

package persistence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens an in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestMember(t *testing.T, name string) *identity.Member {
	t.Helper()
	member, err := identity.NewMember(name, identity.CompanyAltius,
		identity.EmploymentEmployee, identity.SalaryMonthly,
		decimal.NewFromInt(350000), valueobject.NewDate(2024, time.April, 1))
	require.NoError(t, err)
	return member
}

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/domain/shared/valueobject"
	"github.com/hrm/backend/internal/infrastructure/config"
	"github.com/hrm/backend/internal/infrastructure/logger"
	"github.com/hrm/backend/internal/infrastructure/persistence"
	"github.com/hrm/backend/internal/infrastructure/persistence/models"
)

func main() {
	adminEmail := flag.String("admin-email", "", "seed an admin account with this login email")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin account")
	adminName := flag.String("admin-name", "Administrator", "display name for the seeded admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Running schema migration", zap.String("database", cfg.Database.DBName))
	if err := db.DB.AutoMigrate(models.All()...); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migration complete")

	if *adminEmail == "" {
		return
	}
	if *adminPassword == "" {
		log.Error("admin-password is required when admin-email is set")
		os.Exit(1)
	}
	if err := seedAdmin(context.Background(), db, *adminEmail, *adminPassword, *adminName); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}
	log.Info("Admin account ready", zap.String("email", *adminEmail))
}

// seedAdmin creates an executive member with an admin login. Re-running
// with an email that already has an account is a no-op.
func seedAdmin(ctx context.Context, db *persistence.Database, email, password, name string) error {
	accounts := persistence.NewGormUserAccountRepository(db.DB)
	members := persistence.NewGormMemberRepository(db.DB)

	taken, err := accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return nil
	}

	now := time.Now()
	member, err := identity.NewMember(name, identity.CompanyAltius,
		identity.EmploymentExecutive, identity.SalaryMonthly,
		decimal.Zero, valueobject.NewDate(now.Year(), now.Month(), now.Day()))
	if err != nil {
		return err
	}
	if err := members.Create(ctx, member); err != nil {
		return err
	}

	account, err := identity.NewUserAccount(member.ID, email, password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	return accounts.Create(ctx, account)
}

package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"barbershop-attendance/domain/models"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Debug    bool // log every statement
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	logLevel := logger.Warn
	if config.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: NowUTC,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return db, nil
}

// NowUTC is the timestamp source for created_at/updated_at columns.
func NowUTC() time.Time {
	return time.Now().UTC()
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// Migrate creates the tables owned by the attendance service.
func Migrate(db *gorm.DB) error {
	if isPostgres(db) {
		// Enable pgvector extension for enrollment embeddings
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to enable pgvector extension: %v", err)
		}
	}

	if err := db.AutoMigrate(
		&models.Shift{},
		&models.AttendanceConfig{},
		&models.FaceEnrollment{},
		&models.FaceEmbedding{},
		&models.AttendanceDevice{},
		&models.AttendanceActivity{},
	); err != nil {
		return fmt.Errorf("failed to run auto migrations: %v", err)
	}

	if err := backfillShiftStatuses(db); err != nil {
		return fmt.Errorf("failed to backfill shift statuses: %v", err)
	}

	return nil
}

// MigrateIdentity creates the shared barber, user and branch tables. Those are owned by the
// identity service in production; this is for local development and tests.
func MigrateIdentity(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Barber{},
	); err != nil {
		return fmt.Errorf("failed to migrate identity tables: %v", err)
	}
	return nil
}

// backfillShiftStatuses gives rows written before statuses existed their implied status,
// approved_in while open and approved_out once closed.
func backfillShiftStatuses(db *gorm.DB) error {
	migrations := []struct {
		status models.ShiftStatus
		where  string
	}{
		{models.ShiftStatusApprovedIn, "clock_out IS NULL"},
		{models.ShiftStatusApprovedOut, "clock_out IS NOT NULL"},
	}

	for _, m := range migrations {
		err := db.Model(&models.Shift{}).
			Where("(status IS NULL OR status = '') AND "+m.where).
			Update("status", m.status).Error
		if err != nil {
			return fmt.Errorf("migration failed for %s: %v", m.status, err)
		}
	}

	return nil
}

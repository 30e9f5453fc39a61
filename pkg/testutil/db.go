package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/infrastructure/postgres"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
//
// The pool is capped at one connection, so everything inside a transaction must use the
// transaction's ctx or it will block.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: postgres.NowUTC,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.MigrateIdentity(db))
	require.NoError(t, postgres.Migrate(db))

	return db
}

// Fixtures seeds identity rows.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) Branch(name string) *models.Branch {
	f.t.Helper()
	branch := &models.Branch{
		BranchCode: "BR-" + uuid.NewString()[:8],
		Name:       name,
		IsActive:   true,
	}
	require.NoError(f.t, f.db.Create(branch).Error)
	return branch
}

func (f *Fixtures) User(branch *models.Branch, username string) *models.User {
	f.t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     "staff",
		IsActive: true,
	}
	if branch != nil {
		user.BranchID = &branch.ID
	}
	require.NoError(f.t, f.db.Create(user).Error)
	return user
}

func (f *Fixtures) Barber(branch *models.Branch, fullName string) *models.Barber {
	f.t.Helper()
	user := f.User(branch, "barber-"+uuid.NewString()[:8])
	barber := &models.Barber{
		UserID:   user.ID,
		BranchID: branch.ID,
		FullName: fullName,
		IsActive: true,
	}
	require.NoError(f.t, f.db.Create(barber).Error)
	return barber
}

// Shift inserts a shift row directly, bypassing the attendance rules.
func (f *Fixtures) Shift(shift *models.Shift) *models.Shift {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(shift).Error)
	return shift
}

package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A shared in-memory sqlite DB needs a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	return repo.NewGormRepo(db)
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
	}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}

func seedUser(t *testing.T, r *repo.GormRepo, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

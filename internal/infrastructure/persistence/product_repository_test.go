package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
)

// newMockProductRepository creates a GormProductRepository over a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindByID_SQL(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "sku", "name", "version"}).
			AddRow(productID, "SKU-001", "Widget", 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "SKU-001", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product maps to domain error", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "sku", "name", "version"}))

		_, err := repo.FindByID(context.Background(), productID)

		assert.ErrorIs(t, err, shared.ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindExistingIDs_SQL(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	present := uuid.New()
	missing := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "products" WHERE id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(present))

	existing, err := repo.FindExistingIDs(context.Background(), []uuid.UUID{present, missing})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{present}, existing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_Delete_SQL(t *testing.T) {
	t.Run("deletes existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectExec(`DELETE FROM "products"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to domain error", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "products"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

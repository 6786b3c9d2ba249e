package inventory

import (
	"testing"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int, tracked bool) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: 10, Quantity: quantity, StockTracked: tracked}
	require.NoError(t, db.Create(&p).Error)
	// StockTracked has a gorm default:true tag, so a false zero value is
	// replaced by the default on Create; set it explicitly after insert.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		Update("stock_tracked", tracked).Error)
	return p
}

func productQuantity(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.Quantity
}

func TestDecrementStock_Basic(t *testing.T) {
	db := newTestDB(t)
	cola := seedProduct(t, db, "Cola", 5, true)

	DecrementStock(db, []SoldItem{{ProductID: int(cola.ID), Quantity: 3}})

	assert.Equal(t, 2, productQuantity(t, db, cola.ID))
}

func TestDecrementStock_ClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	cola := seedProduct(t, db, "Cola", 5, true)

	DecrementStock(db, []SoldItem{{ProductID: int(cola.ID), Quantity: 10}})

	// Stok hiçbir zaman negatife düşmez
	assert.Equal(t, 0, productQuantity(t, db, cola.ID))
}

func TestDecrementStock_SkipsUntrackedProducts(t *testing.T) {
	db := newTestDB(t)
	hizmet := seedProduct(t, db, "Servis Ucreti", 7, false)

	DecrementStock(db, []SoldItem{{ProductID: int(hizmet.ID), Quantity: 3}})

	assert.Equal(t, 7, productQuantity(t, db, hizmet.ID))
}

func TestDecrementStock_MissingProductDoesNotAbortSiblings(t *testing.T) {
	db := newTestDB(t)
	cola := seedProduct(t, db, "Cola", 5, true)

	DecrementStock(db, []SoldItem{
		{ProductID: 99999, Quantity: 1},
		{ProductID: int(cola.ID), Quantity: 2},
	})

	assert.Equal(t, 3, productQuantity(t, db, cola.ID))
}

func TestDecrementStock_SequentialDuplicates(t *testing.T) {
	db := newTestDB(t)
	cola := seedProduct(t, db, "Cola", 10, true)

	DecrementStock(db, []SoldItem{
		{ProductID: int(cola.ID), Quantity: 2},
		{ProductID: int(cola.ID), Quantity: 3},
	})

	assert.Equal(t, 5, productQuantity(t, db, cola.ID))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vtech-solutions/garage-api/models"
)

func setupStockTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Product{}, &models.StockLog{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()

	product := models.Product{
		Name:          "Battery",
		PurchasePrice: 10,
		SellPrice:     20,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

func TestAdjustStockInThenOut(t *testing.T) {
	db := setupStockTestDB(t)
	stockService := NewStockService(db)
	product := createTestProduct(t, db)

	// Receive a batch of five
	level, err := stockService.Adjust(product.ID, 5, models.StockIn, "batch1")
	assert.NoError(t, err)
	assert.Equal(t, 5, level)

	var logs []models.StockLog
	db.Find(&logs)
	assert.Len(t, logs, 1)
	assert.Equal(t, 5, logs[0].Quantity)
	assert.Equal(t, models.StockIn, logs[0].Direction)
	assert.Equal(t, "batch1", logs[0].Remarks)

	// Sell two
	level, err = stockService.Adjust(product.ID, 2, models.StockOut, "sold")
	assert.NoError(t, err)
	assert.Equal(t, 3, level)

	db.Find(&logs)
	assert.Len(t, logs, 2)

	var stored models.Product
	db.First(&stored, product.ID)
	assert.Equal(t, 3, stored.CurrentStock)
}

func TestAdjustStockSerializedSum(t *testing.T) {
	db := setupStockTestDB(t)
	stockService := NewStockService(db)
	product := createTestProduct(t, db)

	// After any serialized sequence, the cached level equals the
	// signed sum of the ledger
	movements := []struct {
		quantity  int
		direction string
	}{
		{10, models.StockIn},
		{3, models.StockOut},
		{7, models.StockIn},
		{1, models.StockOut},
		{2, models.StockOut},
	}

	expected := 0
	for _, m := range movements {
		_, err := stockService.Adjust(product.ID, m.quantity, m.direction, "")
		assert.NoError(t, err)
		if m.direction == models.StockIn {
			expected += m.quantity
		} else {
			expected -= m.quantity
		}
	}

	var stored models.Product
	db.First(&stored, product.ID)
	assert.Equal(t, expected, stored.CurrentStock)

	var logs []models.StockLog
	db.Find(&logs)
	sum := 0
	for _, entry := range logs {
		if entry.Direction == models.StockIn {
			sum += entry.Quantity
		} else {
			sum -= entry.Quantity
		}
	}
	assert.Equal(t, stored.CurrentStock, sum, "Cached level must equal the signed ledger sum")
}

func TestAdjustStockAllowsNegative(t *testing.T) {
	db := setupStockTestDB(t)
	stockService := NewStockService(db)
	product := createTestProduct(t, db)

	// OUT beyond the level on hand succeeds; no lower bound is enforced
	level, err := stockService.Adjust(product.ID, 4, models.StockOut, "oversold")
	assert.NoError(t, err)
	assert.Equal(t, -4, level)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	db := setupStockTestDB(t)
	stockService := NewStockService(db)

	_, err := stockService.Adjust(9999, 5, models.StockIn, "")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// A failed adjustment must not leave a ledger entry behind
	var count int64
	db.Model(&models.StockLog{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAdjustStockInvalidInput(t *testing.T) {
	db := setupStockTestDB(t)
	stockService := NewStockService(db)
	product := createTestProduct(t, db)

	_, err := stockService.Adjust(product.ID, 0, models.StockIn, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = stockService.Adjust(product.ID, -3, models.StockIn, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = stockService.Adjust(product.ID, 1, "SIDEWAYS", "")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestLogsNewestFirstWithProductResolved(t *testing.T) {
	db := setupStockTestDB(t)
	stockService := NewStockService(db)
	product := createTestProduct(t, db)

	_, err := stockService.Adjust(product.ID, 5, models.StockIn, "first")
	assert.NoError(t, err)
	_, err = stockService.Adjust(product.ID, 2, models.StockOut, "second")
	assert.NoError(t, err)

	logs, err := stockService.Logs()
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Remarks)
	assert.NotNil(t, logs[0].Product)
	assert.Equal(t, "Battery", logs[0].Product.Name)

	// Ledger entries survive product deletion with a null product
	assert.NoError(t, db.Delete(&models.Product{}, product.ID).Error)
	logs, err = stockService.Logs()
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Nil(t, logs[0].Product)
}

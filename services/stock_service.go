package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vtech-solutions/garage-api/models"
)

var (
	// ErrProductNotFound is returned when the product id does not exist
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidDirection is returned for directions other than IN/OUT
	ErrInvalidDirection = errors.New("direction must be IN or OUT")
	// ErrInvalidQuantity is returned for non-positive quantities
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// StockService maintains product stock levels and the stock ledger
type StockService struct {
	db *gorm.DB
}

// NewStockService creates a new StockService
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// Adjust applies a signed stock movement to a product and appends the
// matching ledger entry, returning the new stock level.
//
// The counter mutation runs as a single SQL increment inside the same
// transaction as the ledger append, so concurrent adjustments on one
// product cannot lose updates and the cached total cannot drift from
// the sum of its log entries. No lower bound is enforced: an OUT
// movement larger than the level on hand succeeds and leaves the
// stock negative.
func (s *StockService) Adjust(productID uint, quantity int, direction, remarks string) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	var delta int
	switch direction {
	case models.StockIn:
		delta = quantity
	case models.StockOut:
		delta = -quantity
	default:
		return 0, ErrInvalidDirection
	}

	var level int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Update("current_stock", gorm.Expr("current_stock + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		entry := models.StockLog{
			ProductID: productID,
			Direction: direction,
			Quantity:  quantity,
			Remarks:   remarks,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}
		level = product.CurrentStock
		return nil
	})
	if err != nil {
		return 0, err
	}

	return level, nil
}

// Logs returns all ledger entries newest-first with their product
// resolved. Entries whose product was deleted keep a null product.
func (s *StockService) Logs() ([]models.StockLog, error) {
	var logs []models.StockLog
	if err := s.db.Preload("Product").Order("created_at desc, id desc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

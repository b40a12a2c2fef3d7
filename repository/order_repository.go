package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/camden-git/photoopsbackend/models"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and FamilyOrder entities
type OrderRepository struct {
	DB *gorm.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// GetByExternalID retrieves an order by its ShootProof-assigned order id
func (r *OrderRepository) GetByExternalID(externalOrderID int64) (*models.Order, error) {
	var order models.Order
	err := r.DB.Where("external_order_id = ?", externalOrderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by external id %d: %w", externalOrderID, err)
	}
	return &order, nil
}

// Create creates a new order record; order.ID is populated on success
func (r *OrderRepository) Create(order *models.Order) error {
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}

	err := r.DB.Create(order).Error
	if err != nil {
		return fmt.Errorf("failed to create order %d: %w", order.ExternalOrderID, err)
	}
	return nil
}

// ListAll retrieves all orders, newest order date first
func (r *OrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.Order("order_date DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByFamilyKey retrieves the orders linked to a family through the
// family_orders relationship table
func (r *OrderRepository) ListByFamilyKey(key string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.
		Joins("JOIN family_orders ON family_orders.order_id = orders.id").
		Where("family_orders.family_id = ?", key).
		Order("orders.order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for family %s: %w", key, err)
	}
	return orders, nil
}

// CreateLink records the family→order relationship row
func (r *OrderRepository) CreateLink(link *models.FamilyOrder) error {
	if link.CreatedAt == 0 {
		link.CreatedAt = time.Now().Unix()
	}

	err := r.DB.Create(link).Error
	if err != nil {
		return fmt.Errorf("failed to link order %d to family %s: %w", link.OrderID, link.FamilyID, err)
	}
	return nil
}

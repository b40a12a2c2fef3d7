package repository

import (
	"errors"

	"github.com/camden-git/photoopsbackend/models"
)

// ErrNotFound is returned by lookups when no record matches. Importer code
// checks this sentinel instead of a GORM error so it stays store-agnostic.
var ErrNotFound = errors.New("record not found")

// FamilyRepositoryInterface defines the methods for family data operations
type FamilyRepositoryInterface interface {
	// GetByKey returns the family with the given derived key, or ErrNotFound.
	GetByKey(key string) (*models.Family, error)
	Create(family *models.Family) error
	// Merge applies a partial update: only the given columns are written,
	// previously stored values for other columns are left untouched.
	Merge(key string, fields map[string]interface{}) error
	ListAll() ([]models.Family, error)
}

// OrderRepositoryInterface defines the methods for order data operations
type OrderRepositoryInterface interface {
	// GetByExternalID returns the order with the given ShootProof order id,
	// or ErrNotFound.
	GetByExternalID(externalOrderID int64) (*models.Order, error)
	// Create inserts the order and populates its storage-assigned ID.
	Create(order *models.Order) error
	ListAll() ([]models.Order, error)
	ListByFamilyKey(key string) ([]models.Order, error)
	// CreateLink records the family→order relationship row.
	CreateLink(link *models.FamilyOrder) error
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/camden-git/photoopsbackend/models"
	"gorm.io/gorm"
)

// FamilyRepository handles database operations for Family entities
type FamilyRepository struct {
	DB *gorm.DB
}

// NewFamilyRepository creates a new instance of FamilyRepository
func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

// GetByKey retrieves a family by its derived key
func (r *FamilyRepository) GetByKey(key string) (*models.Family, error) {
	var family models.Family
	err := r.DB.Where("id = ?", key).First(&family).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get family by key %s: %w", key, err)
	}
	return &family, nil
}

// Create creates a new family record in the database
func (r *FamilyRepository) Create(family *models.Family) error {
	now := time.Now().Unix()
	if family.CreatedAt == 0 {
		family.CreatedAt = now
	}
	if family.UpdatedAt == 0 {
		family.UpdatedAt = now
	}

	err := r.DB.Create(family).Error
	if err != nil {
		return fmt.Errorf("failed to create family %s: %w", family.ID, err)
	}
	return nil
}

// Merge applies a partial update to an existing family. Only the columns
// present in fields are written; a nil value clears the column.
func (r *FamilyRepository) Merge(key string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().Unix()

	result := r.DB.Model(&models.Family{}).Where("id = ?", key).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to merge family %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll retrieves all families, ordered by last name
func (r *FamilyRepository) ListAll() ([]models.Family, error) {
	var families []models.Family
	err := r.DB.Order("last_name ASC").Find(&families).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return families, nil
}

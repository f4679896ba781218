package scope

import "gorm.io/gorm"

// NewestFirst orders by creation time with the id as a stable tie-break.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

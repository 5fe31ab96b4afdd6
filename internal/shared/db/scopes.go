// Package db provides database utilities including transaction management and
// query scopes for the soft-delete lifecycle.
package db

import (
	"gorm.io/gorm"
)

// Active is a GORM scope that keeps only live records. The lifecycle flag is
// the authoritative column; deleted_at exists for ordering trash listings.
//
// Example usage:
//
//	db.Model(&Model{}).Scopes(db.Active()).Count(&count)
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", false)
	}
}

// Trashed is a GORM scope that keeps only soft-deleted records.
func Trashed() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_deleted = ?", true)
	}
}

// InState selects Active or Trashed based on the flag. Listing queries switch
// on the trash parameter, so this keeps call sites to one line.
func InState(trashed bool) func(db *gorm.DB) *gorm.DB {
	if trashed {
		return Trashed()
	}
	return Active()
}

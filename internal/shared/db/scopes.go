package db

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a query to rows belonging to userID. Every user-facing repository
// read applies it, which stands in for the datastore's row-level access policy.
//
// Example usage:
//
//	db.Model(&models.DreamEntryModel{}).Scopes(db.OwnedBy(userID)).Count(&count)
func OwnedBy(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// OwnedByWithAlias is OwnedBy for joined queries.
func OwnedByWithAlias(alias, userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias+".user_id = ?", userID)
	}
}

// Paginate applies 1-based page and page size.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

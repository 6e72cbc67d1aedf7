package database

import (
	"gorm.io/gorm"

	"github.com/fjaouad/notes-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy scopes a query to rows stamped with the given creator. Resources
// outside the scope are simply invisible, callers see a not-found rather
// than a permission error.
func OwnedBy(creatorID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_id = ?", creatorID)
	}
}

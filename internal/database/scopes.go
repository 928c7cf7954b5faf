package database

import (
	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// Paginate applies pagination to a GORM query. Zero params leave the
// query unpaged.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

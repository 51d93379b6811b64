package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// allowedOrderColumns is the allowlist for user-supplied ordering. Anything
// outside it falls back to created_at so filters can never inject SQL.
var allowedOrderColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"order_number":  true,
	"status":        true,
	"current_stock": true,
}

// applyFilter adds pagination and ordering to a query
func applyFilter(db *gorm.DB, filter shared.Filter) *gorm.DB {
	column := filter.OrderBy
	if !allowedOrderColumns[column] {
		column = "created_at"
	}
	dir := "desc"
	if filter.OrderDir == "asc" {
		dir = "asc"
	}
	db = db.Order(fmt.Sprintf("%s %s", column, dir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return db.Offset((page - 1) * pageSize).Limit(pageSize)
}

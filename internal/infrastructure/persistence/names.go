package persistence

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// nextName returns prefix followed by a zero-padded sequence one past the
// number of rows already in table matching the optional scope.
func nextName(ctx context.Context, db *gorm.DB, table, prefix string, scope func(*gorm.DB) *gorm.DB) (string, error) {
	var count int64
	query := db.WithContext(ctx).Table(table)
	if scope != nil {
		query = scope(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

func normalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

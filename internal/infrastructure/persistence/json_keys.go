package persistence

import (
	"fmt"

	"gorm.io/gorm"
)

// jsonKeyColumn is the column every jsonKeysJoin exposes
const jsonKeyColumn = "k.key"

// jsonKeysJoin expands the keys of a JSON object column into one row per key,
// exposed as k.key. Filtering on "k.key IN ?" then gives key containment
// without the ?| operator, which collides with gorm placeholders.
//
// Postgres uses a lateral jsonb_object_keys; SQLite uses json_each, whose
// "key" column plays the same role. NULL columns contribute no rows on both.
func jsonKeysJoin(db *gorm.DB, alias, column string) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return fmt.Sprintf("CROSS JOIN json_each(%s.%s) AS k", alias, column)
	default:
		return fmt.Sprintf("CROSS JOIN LATERAL jsonb_object_keys(%s.%s) AS k(key)", alias, column)
	}
}

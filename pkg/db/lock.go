package db

import "gorm.io/gorm"

// LockForUpdate returns the row-lock suffix for the connected dialect.
// sqlite serializes writers on its own, so the clause is omitted there.
func LockForUpdate(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return " FOR UPDATE"
	default:
		return ""
	}
}

// LockForUpdateSkipLocked returns the work-claim suffix for the connected dialect.
func LockForUpdateSkipLocked(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return " FOR UPDATE SKIP LOCKED"
	default:
		return ""
	}
}

// Package txdb binds gorm repositories to a transaction opened by a service
// on the underlying *sql.DB.
package txdb

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a session of db whose statements run on tx. A nil tx returns
// db unchanged. The session clones the statement (Context is set), so the
// parent handle is never mutated.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{
		Context:                context.Background(),
		NewDB:                  true,
		SkipDefaultTransaction: true,
	})
	session.Statement.ConnPool = tx
	return session
}

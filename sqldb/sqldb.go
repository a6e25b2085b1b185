// Package sqldb implements the core storage interfaces on database/sql.
// Tables are created on startup if they don't exist. Statements are prepared
// once; SQLite and MySQL placeholder syntax is compatible.
package sqldb

import "database/sql"

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(err)
	}
	return stmt
}

// Package migrations holds the schema migrations for the users and notes
// tables. They are Go migrations rather than SQL files because the DDL differs
// per database dialect.
package migrations

// dialect is set by the parent db package before goose.Up runs.
var dialect string

// SetDialect selects which DDL variant the migrations emit.
// Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

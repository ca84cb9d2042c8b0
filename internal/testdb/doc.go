// Package testdb connects integration tests to a real Postgres database.
//
// Tests call GetTestDBWithT, which skips when no database url is configured
// and otherwise returns a connection with a freshly migrated schema. Plain
// `go test ./...` never needs a database.
package testdb

// Package postgres implements the letter and task stores on PostgreSQL
// through database/sql and the pgx stdlib driver, and applies the embedded
// goose migrations that create their tables.
package postgres

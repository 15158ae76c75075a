// Package postgres contains the PostgreSQL implementations of the store
// interfaces, along with helpers for mapping database errors to the store
// error taxonomy.
package postgres

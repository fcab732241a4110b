// Package postgres implements the store interfaces on PostgreSQL through
// database/sql with the pgx driver. Schema management is handled by goose
// migrations embedded in the binary.
//
// Tag lists and flashcard ID lists are stored as jsonb columns so the
// stores work through plain database/sql scanning.
package postgres

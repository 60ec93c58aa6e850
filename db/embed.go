// Package db provides the embedded storefront schema.
package db

import _ "embed"

// Schema contains the DDL statements for the legacy storefront tables.
//
//go:embed migrations/001_schema.sql
var Schema string

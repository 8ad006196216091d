package patients

import "embed"

// Migrations holds the versioned schema for the patients table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory within Migrations holding the SQL files.
const MigrationsDir = "migrations"

package models

// Environment classifies the database the service is connected to.
type Environment string

const (
	EnvironmentDevelopment Environment = "DEV"
	EnvironmentProduction  Environment = "PRD"
)

// DatabaseSession holds the identity of the active database connection as
// reported by the server itself.
type DatabaseSession struct {
	User     string `db:"user"`
	Database string `db:"database"`
	Schema   string `db:"schema"`
	Role     string `db:"role"`
}

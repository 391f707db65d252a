package dto

import "github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"

// SessionInfo describes the active database session for UI introspection.
type SessionInfo struct {
	User        string             `json:"user"`
	Database    string             `json:"database"`
	Schema      string             `json:"schema"`
	Role        string             `json:"role"`
	Environment models.Environment `json:"environment"`
}

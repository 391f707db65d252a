package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Actualización de Seguimiento de Rechazos API",
        "description": "Carga archivos CSV/XLSX de rechazos, actualiza la tabla de seguimiento e inserta homologaciones de productos y sucursales.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Rejections", "description": "Rejection file processing"},
        {"name": "Session", "description": "Database session introspection"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/rejections/process": {
            "post": {
                "tags": ["Rejections"],
                "summary": "Process an uploaded rejection file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true, "description": "CSV or XLSX file with columns IDRechazo, Caso, Responsable de Caso, Valor homologación"},
                    {"name": "validateOnly", "in": "formData", "type": "boolean", "required": false, "description": "Validate without updating the store"},
                    {"name": "format", "in": "formData", "type": "string", "enum": ["json", "csv"], "required": false, "description": "Result rendering"}
                ],
                "responses": {
                    "200": {"description": "Processing result summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid file or options", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Tracking table missing", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/rejections/columns": {
            "get": {
                "tags": ["Rejections"],
                "summary": "Describe the expected upload columns",
                "responses": {
                    "200": {"description": "Required columns and accepted formats", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Describe the active database session",
                "responses": {
                    "200": {"description": "Session info", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Session unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Warehouse connectivity check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/documentos/consultar": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documentos"],
                "summary": "List contracts of a period",
                "parameters": [
                    {"description": "period", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.consultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ConsultResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/documentos/preview": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documentos"],
                "summary": "Preview a contract report",
                "parameters": [
                    {"description": "contract and period", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.previewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/documentos/enviar": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documentos"],
                "summary": "Send contract reports",
                "parameters": [
                    {"description": "dispatch list", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.sendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BatchResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.consultRequest": {
            "type": "object",
            "required": ["competencia"],
            "properties": {"competencia": {"type": "string", "example": "2025-09"}}
        },
        "handler.previewRequest": {
            "type": "object",
            "required": ["competencia", "contrato", "prestador", "projeto"],
            "properties": {
                "competencia": {"type": "string"},
                "contrato": {"type": "string"},
                "prestador": {"type": "string"},
                "projeto": {"type": "string"}
            }
        },
        "handler.sendRequest": {
            "type": "object",
            "required": ["envios"],
            "properties": {"envios": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/model.Dispatch"}}}
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.ContractForSending": {
            "type": "object",
            "properties": {
                "competencia": {"type": "string"},
                "contrato": {"type": "string"},
                "email_envio": {"type": "string"},
                "legenda": {"type": "string"},
                "perc_atingido": {"type": "number"},
                "prestador": {"type": "string"},
                "projeto": {"type": "string"},
                "selecionado": {"type": "boolean"},
                "total_documentos": {"type": "integer"},
                "total_pendencias": {"type": "integer"}
            }
        },
        "model.Dispatch": {
            "type": "object",
            "required": ["competencia", "contrato", "prestador", "projeto"],
            "properties": {
                "competencia": {"type": "string"},
                "contrato": {"type": "string"},
                "emails": {"type": "array", "items": {"type": "string"}},
                "prestador": {"type": "string"},
                "projeto": {"type": "string"}
            }
        },
        "model.DispatchError": {
            "type": "object",
            "properties": {
                "contrato": {"type": "string"},
                "erro": {"type": "string"},
                "prestador": {"type": "string"}
            }
        },
        "model.DispatchResult": {
            "type": "object",
            "properties": {
                "arquivo": {"type": "string"},
                "contrato": {"type": "string"},
                "emails": {"type": "array", "items": {"type": "string"}},
                "prestador": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "model.BatchResult": {
            "type": "object",
            "properties": {
                "erros": {"type": "array", "items": {"$ref": "#/definitions/model.DispatchError"}},
                "resultados": {"type": "array", "items": {"$ref": "#/definitions/model.DispatchResult"}},
                "success": {"type": "boolean"},
                "total_enviados": {"type": "integer"},
                "total_erros": {"type": "integer"}
            }
        },
        "service.ConsultResult": {
            "type": "object",
            "properties": {
                "competencia": {"type": "string"},
                "contratos": {"type": "array", "items": {"$ref": "#/definitions/model.ContractForSending"}},
                "success": {"type": "boolean"},
                "total_contratos": {"type": "integer"},
                "total_documentos": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Document Report API",
	Description:      "Contractor document compliance reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

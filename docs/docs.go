// Package docs holds the OpenAPI description served under /swagger/.
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
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "string"}
                        }
                    }
                }
            }
        },
        "/templates": {
            "get": {
                "description": "Returns the nine templates with their colors and header layout.",
                "produces": ["application/json"],
                "tags": ["templates"],
                "summary": "List templates",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/invoice.Style"}
                        }
                    }
                }
            }
        },
        "/invoices/render": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "tags": ["invoices"],
                "summary": "Render a document as PDF",
                "parameters": [
                    {
                        "description": "Invoice, business profile and template",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/server.RenderRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/server.errorResponse"}}
                }
            }
        },
        "/invoices/preview": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["image/png"],
                "tags": ["invoices"],
                "summary": "Render a PNG preview",
                "parameters": [
                    {
                        "description": "Invoice, business profile and template",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/server.RenderRequest"}
                    },
                    {
                        "type": "number",
                        "description": "Pixels per point (0 < scale <= 8)",
                        "name": "scale",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.errorResponse"}}
                }
            }
        },
        "/invoices/{id}/pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["invoices"],
                "summary": "Render a stored invoice",
                "parameters": [
                    {"type": "string", "description": "Invoice id (UUID)", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Template override", "name": "template", "in": "query"},
                    {"type": "boolean", "description": "Store the rendering", "name": "store", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/server.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "invoice.Style": {
            "type": "object",
            "properties": {
                "template": {"type": "string"},
                "display_name": {"type": "string"},
                "primary": {"type": "string"},
                "accent": {"type": "string"},
                "layout": {"type": "string"},
                "placeholder": {"type": "string"},
                "tagline": {"type": "string"}
            }
        },
        "invoice.Client": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "zip_code": {"type": "string"},
                "country": {"type": "string"}
            }
        },
        "invoice.BusinessInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "zip_code": {"type": "string"},
                "country": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "website": {"type": "string"}
            }
        },
        "invoice.LineItem": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "quantity": {"type": "number"},
                "unit_price": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "invoice.Invoice": {
            "type": "object",
            "properties": {
                "number": {"type": "string"},
                "kind": {"type": "string", "enum": ["invoice", "estimate"]},
                "issue_date": {"type": "string"},
                "due_date": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "sent", "paid", "overdue", "cancelled", "partially_paid"]},
                "client": {"$ref": "#/definitions/invoice.Client"},
                "line_items": {"type": "array", "items": {"$ref": "#/definitions/invoice.LineItem"}},
                "tax_rate": {"type": "number"},
                "notes": {"type": "string"},
                "template": {"type": "string"}
            }
        },
        "server.RenderRequest": {
            "type": "object",
            "properties": {
                "invoice": {"$ref": "#/definitions/invoice.Invoice"},
                "business": {"$ref": "#/definitions/invoice.BusinessInfo"},
                "template": {"type": "string"},
                "store": {"type": "boolean"}
            }
        },
        "server.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
	Title:            "Invoice Renderer API",
	Description:      "Renders invoices and estimates as single-page PDF documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

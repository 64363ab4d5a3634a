// Package docs registra el documento Swagger de la API (servido en /swagger/*).
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
        "/microchips": {
            "get": {
                "produces": ["application/json"],
                "tags": ["microchips"],
                "summary": "List active microchips",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/microchips.microchipResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["microchips"],
                "summary": "Create microchip",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/microchips.microchipRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/microchips.microchipResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            }
        },
        "/microchips/{microchipID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["microchips"],
                "summary": "Get microchip by id",
                "parameters": [
                    {"type": "integer", "description": "microchip id", "name": "microchipID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/microchips.microchipResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["microchips"],
                "summary": "Replace microchip fields",
                "parameters": [
                    {"type": "integer", "description": "microchip id", "name": "microchipID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/microchips.microchipRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/microchips.microchipResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errs.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["microchips"],
                "summary": "Soft-delete microchip without checking referencing pets",
                "parameters": [
                    {"type": "integer", "description": "microchip id", "name": "microchipID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "List active pets, or search by name/species with q",
                "parameters": [
                    {"type": "string", "description": "case-insensitive substring of name or species", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Create pet (optionally with a new or existing microchip)",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            }
        },
        "/pets/by-tag/{tag}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Find active pet by exact tag code",
                "parameters": [
                    {"type": "string", "description": "tag code", "name": "tag", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Get pet by id",
                "parameters": [
                    {"type": "integer", "description": "pet id", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Replace pet fields",
                "parameters": [
                    {"type": "integer", "description": "pet id", "name": "petID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errs.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Soft-delete pet (microchip untouched)",
                "parameters": [
                    {"type": "integer", "description": "pet id", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/microchip/{microchipID}": {
            "delete": {
                "tags": ["pets"],
                "summary": "Detach microchip from pet, then soft-delete it",
                "parameters": [
                    {"type": "integer", "description": "pet id", "name": "petID", "in": "path", "required": true},
                    {"type": "integer", "description": "microchip id", "name": "microchipID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errs.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errs.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errs.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string", "enum": ["VALIDATION", "NOT_FOUND", "INTEGRITY", "STORAGE", "INTERNAL"]},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "microchips.microchipRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "brand": {"type": "string"}
            }
        },
        "microchips.microchipResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "string"},
                "brand": {"type": "string"}
            }
        },
        "pets.microchipPayload": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "description": "0 = create a new one"},
                "code": {"type": "string"},
                "brand": {"type": "string"}
            }
        },
        "pets.microchipResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "string"},
                "brand": {"type": "string"},
                "deleted": {"type": "boolean"}
            }
        },
        "pets.petRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "tag_code": {"type": "string"},
                "microchip": {"$ref": "#/definitions/pets.microchipPayload"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "tag_code": {"type": "string"},
                "microchip": {"$ref": "#/definitions/pets.microchipResponse"}
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
	Title:            "Pet Registry API",
	Description:      "Pets and microchips with referential integrity and soft delete.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

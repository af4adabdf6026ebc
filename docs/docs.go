// Package docs holds the OpenAPI document served at /swagger.
//
// Regenerate after changing handler annotations:
//
//	swag init -g cmd/server/main.go -o docs --parseInternal
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
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["directory"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "Categories", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/directory": {
            "get": {
                "description": "Public listings, optionally filtered by category and location. Featured listings come first within a page.",
                "produces": ["application/json"],
                "tags": ["directory"],
                "summary": "Browse the directory",
                "parameters": [
                    {"type": "string", "description": "Category ID (UUID)", "name": "category_id", "in": "query"},
                    {"type": "string", "description": "Location substring (case-insensitive)", "name": "location", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Directory page", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid category ID", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/directory/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["directory"],
                "summary": "Get a public listing",
                "parameters": [
                    {"type": "string", "description": "Listing ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Listing", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Listing not found or not public", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/sites/{id}": {
            "get": {
                "description": "Storefront page of a Pro listing with its active products",
                "produces": ["application/json"],
                "tags": ["directory"],
                "summary": "Get a mini-site",
                "parameters": [
                    {"type": "string", "description": "Listing ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Mini-site", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "No mini-site for this listing", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"},
                "success": {"type": "boolean", "example": true}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Locali API",
	Description:      "Local business directory: creator studio, public directory and admin moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

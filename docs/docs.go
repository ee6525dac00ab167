// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@clubsphere.local"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Liveness and store check", "responses": {"200": {"description": "OK"}}}},
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Account created"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "Signed in"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Sign out", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Signed out"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/auth/oauth/providers": {"get": {"tags": ["auth"], "summary": "OAuth providers", "responses": {"200": {"description": "OK"}}}},
        "/profile": {
            "get": {"tags": ["profile"], "summary": "Get my profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["profile"], "summary": "Update my profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/profile/avatar": {"post": {"tags": ["profile"], "summary": "Upload avatar", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/dashboard": {"get": {"tags": ["dashboard"], "summary": "Role dashboard", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/clubs": {
            "get": {"tags": ["clubs"], "summary": "List approved clubs", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["clubs"], "summary": "Create a club", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created, pending approval"}}}
        },
        "/clubs/mine": {"get": {"tags": ["clubs"], "summary": "Clubs I belong to", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/clubs/{id}": {
            "get": {"tags": ["clubs"], "summary": "Get a club", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["clubs"], "summary": "Update a club", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/clubs/{id}/members": {
            "get": {"tags": ["members"], "summary": "List members", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["members"], "summary": "Add a member", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Added"}, "409": {"description": "Already a member"}}}
        },
        "/clubs/{id}/events": {"post": {"tags": ["events"], "summary": "Submit an event draft", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"201": {"description": "Draft created"}}}},
        "/events": {
            "get": {"tags": ["events"], "summary": "List published events", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["events"], "summary": "Publish an event immediately", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Published"}}}
        },
        "/events/{id}": {
            "get": {"tags": ["events"], "summary": "Get an event", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["events"], "summary": "Update an event", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["events"], "summary": "Delete an event", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/notifications": {"get": {"tags": ["notifications"], "summary": "Latest notifications", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/notifications/read-all": {"post": {"tags": ["notifications"], "summary": "Mark all as read", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/clubs/pending": {"get": {"tags": ["admin"], "summary": "Clubs awaiting approval", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/events/pending": {"get": {"tags": ["admin"], "summary": "Event moderation queue", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/users": {"get": {"tags": ["admin"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/stats": {"get": {"tags": ["admin"], "summary": "Platform counters", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token as \"Bearer <token>\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "ClubSphere API",
	Description:      "API for the ClubSphere campus club and event platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

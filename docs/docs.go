// Package docs registers the swagger spec served at /swagger/ in
// development. Regenerate with `swag init -g cmd/api/main.go` after
// changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign up a new user",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login, sets the session cookie",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "User logout, clears the session cookie",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/profile/view": {
            "get": {
                "tags": ["profile"],
                "summary": "View own profile",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/profile/edit": {
            "patch": {
                "tags": ["profile"],
                "summary": "Edit own profile",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/profile/forgot": {
            "post": {
                "tags": ["auth"],
                "summary": "Request a password reset token",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/profile/reset/{token}": {
            "post": {
                "tags": ["auth"],
                "summary": "Reset password with a token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TinderLite API",
	Description:      "A matchmaking-style web backend: auth, profiles and password reset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

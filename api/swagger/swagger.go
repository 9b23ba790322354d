// Package swagger registers the static OpenAPI document served at /docs.
package swagger

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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate a user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/lunch/records": {
            "get": {
                "tags": ["lunch-records"],
                "summary": "List lunch records",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["lunch-records"],
                "summary": "Create a lunch record in draft state",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate"}, "422": {"description": "Holiday or no identity"}}
            }
        },
        "/lunch/records/{id}": {
            "get": {
                "tags": ["lunch-records"],
                "summary": "Fetch one lunch record",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "patch": {
                "tags": ["lunch-records"],
                "summary": "Edit a lunch record",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Immutable state"}}
            }
        },
        "/lunch/records/{id}/confirm": {
            "post": {
                "tags": ["lunch-records"],
                "summary": "Confirm a lunch record",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid state"}, "412": {"description": "Timing not configured"}, "422": {"description": "Outside window"}}
            }
        },
        "/lunch/records/{id}/cancel": {
            "post": {
                "tags": ["lunch-records"],
                "summary": "Cancel a lunch record",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Already cancelled"}}
            }
        },
        "/lunch/records/{id}/reset": {
            "post": {
                "tags": ["lunch-records"],
                "summary": "Reset a record to draft",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Admin only"}}
            }
        },
        "/lunch/records/{id}/request-fill": {
            "post": {
                "tags": ["lunch-records"],
                "summary": "Ask an admin to handle a draft record",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid state"}}
            }
        },
        "/lunch/admin-fill": {
            "post": {
                "tags": ["lunch-records"],
                "summary": "Create a confirmed record on behalf of an employee",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "403": {"description": "Admin only"}}
            }
        },
        "/lunch/types": {
            "get": {
                "tags": ["lunch-config"],
                "summary": "List lunch types",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["lunch-config"],
                "summary": "Add a lunch type",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Name conflict"}}
            }
        },
        "/lunch/types/{id}": {
            "get": {
                "tags": ["lunch-config"],
                "summary": "Fetch one lunch type",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["lunch-config"],
                "summary": "Edit a lunch type",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/lunch/timing": {
            "get": {
                "tags": ["lunch-config"],
                "summary": "Fetch the confirmation window",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "412": {"description": "Not configured"}}
            },
            "put": {
                "tags": ["lunch-config"],
                "summary": "Replace the confirmation window",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid window"}}
            }
        },
        "/lunch/reminder/config": {
            "get": {
                "tags": ["lunch-reminder"],
                "summary": "Fetch the reminder configuration",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not set up"}}
            },
            "put": {
                "tags": ["lunch-reminder"],
                "summary": "Replace the reminder configuration",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/lunch/reminder/send-now": {
            "post": {
                "tags": ["lunch-reminder"],
                "summary": "Dispatch the reminder batch immediately",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Admin only"}}
            }
        },
        "/lunch/reminder/test": {
            "post": {
                "tags": ["lunch-reminder"],
                "summary": "Send a test reminder to the caller",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "No work email"}}
            }
        },
        "/lunch/import": {
            "post": {
                "tags": ["lunch-import"],
                "summary": "Bulk import lunch records from CSV",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Summary"}, "403": {"description": "Admin only"}}
            }
        },
        "/lunch/import/template": {
            "get": {
                "tags": ["lunch-import"],
                "summary": "Download the import CSV template",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "CSV template"}}
            }
        },
        "/lunch/reports": {
            "get": {
                "tags": ["lunch-reports"],
                "summary": "Build the lunch report",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid range"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Lunch Management API",
	Description:      "Employee lunch records, confirmation windows, reminders, imports and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

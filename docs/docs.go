// Package docs registers the OpenAPI document served under /swagger/.
// It is maintained by hand in swag's format; keep it in step with the controller annotations.
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
        "/events": {
            "get": {
                "description": "Returns the most recently created events, newest first.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of events (default and max 20)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventListSuccessResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "description": "Creates an event from a multipart form. The image is uploaded to object storage and only its URL is stored. The slug is derived from the title.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [
                    {"type": "string", "description": "Title (max 100 characters)", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description (max 1000 characters)", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Overview (max 500 characters)", "name": "overview", "in": "formData", "required": true},
                    {"type": "string", "description": "Venue", "name": "venue", "in": "formData", "required": true},
                    {"type": "string", "description": "Location", "name": "location", "in": "formData", "required": true},
                    {"type": "string", "description": "Date", "name": "date", "in": "formData", "required": true},
                    {"type": "string", "description": "Time", "name": "time", "in": "formData", "required": true},
                    {"type": "string", "description": "Mode (online, offline, hybrid)", "name": "mode", "in": "formData", "required": true},
                    {"type": "string", "description": "Audience", "name": "audience", "in": "formData", "required": true},
                    {"type": "string", "description": "Organizer", "name": "organizer", "in": "formData", "required": true},
                    {"type": "string", "description": "JSON array of tags, e.g. [\"anime\",\"cosplay\"]", "name": "tags", "in": "formData", "required": true},
                    {"type": "string", "description": "JSON array of agenda items", "name": "agenda", "in": "formData", "required": true},
                    {"type": "file", "description": "JPEG, PNG, WebP or GIF, at most 5MB", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "data contains the created event", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event by slug",
                "parameters": [
                    {"type": "string", "description": "Event slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{slug}/similar": {
            "get": {
                "description": "Returns other events sharing at least one tag with the given event. Unknown slugs yield an empty list.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List similar events",
                "parameters": [
                    {"type": "string", "description": "Event slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventListSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/bookings": {
            "post": {
                "description": "Books the event for an email address. The email is trimmed and lower-cased. The event must exist.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true},
                    {"description": "Booking", "name": "booking", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "data contains the created booking", "schema": {"$ref": "#/definitions/controllers.BookingSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/bookings/count": {
            "get": {
                "description": "Returns 0 for events without bookings and for unknown event IDs.",
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Count bookings for an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BookingCountSuccessResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Pings the backing store.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.BookingCount": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "event_id": {"type": "string"}
            }
        },
        "controllers.BookingCountSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.BookingCount"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.BookingSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Booking"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.CreateBookingRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "controllers.EventListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.EventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Event"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.Booking": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "event_id": {"type": "string"},
                "id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "agenda": {"type": "array", "items": {"type": "string"}},
                "audience": {"type": "string"},
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "image": {"type": "string"},
                "location": {"type": "string"},
                "mode": {"type": "string"},
                "organizer": {"type": "string"},
                "overview": {"type": "string"},
                "slug": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "time": {"type": "string"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"},
                "venue": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    }
}`

// SwaggerInfo describes the API; Host and Schemes may be set at startup.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Event Booking API",
	Description:      "Event discovery and booking backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

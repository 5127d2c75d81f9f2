package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scheduling API",
        "description": "Academic scheduling consistency engine",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Terms", "description": "Academic terms and term-class pairs"},
        {"name": "Classes", "description": "Class catalog"},
        {"name": "Subjects", "description": "Subject catalog"},
        {"name": "Rooms", "description": "Room catalog and occupancy"},
        {"name": "LessonPeriods", "description": "Scheduling grid time axis"},
        {"name": "Offerings", "description": "Class-subject-term offering registry"},
        {"name": "Assignments", "description": "Trainer class and subject assignments"},
        {"name": "Availability", "description": "Occupancy checks and timetable slots"},
        {"name": "Settings", "description": "Timetable settings singleton"}
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
        "/terms/current": {
            "get": {
                "tags": ["Terms"],
                "summary": "Get the active term containing today",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No current term", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms": {
            "get": {
                "tags": ["Terms"],
                "summary": "List terms",
                "parameters": [
                    {"name": "isActive", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Terms"],
                "summary": "Create term",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTermRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlapping active term", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/term-classes": {
            "get": {
                "tags": ["Terms"],
                "summary": "List term-class assignments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/timetable-slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "List a class's live slots in a term",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "term_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing term_id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/available-subjects": {
            "get": {
                "tags": ["Offerings"],
                "summary": "List subjects a class can still add",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Non-numeric id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/offered-subjects": {
            "get": {
                "tags": ["Offerings"],
                "summary": "List offerings with assignment annotations",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "term_id", "in": "query", "type": "integer"},
                    {"name": "trainer_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Offerings"],
                "summary": "Offer a subject in a class for a term",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOfferingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate offering", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/class-subjects/{id}": {
            "delete": {
                "tags": ["Offerings"],
                "summary": "Remove an offering and cascade its assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Removed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trainers/{id}/subject-assignment": {
            "put": {
                "tags": ["Assignments"],
                "summary": "Set a trainer's subject assignment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetSubjectAssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden or blocked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already assigned in another class", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trainers/{id}/classes": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Assign a trainer to a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already assigned", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trainers/{id}/classes/{classId}": {
            "delete": {
                "tags": ["Assignments"],
                "summary": "Remove a trainer's class assignment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "classId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Removed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Assignment not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trainers/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Check trainer availability",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "term_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "day_of_week", "in": "query", "required": true, "type": "integer"},
                    {"name": "lesson_period_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "exclude_slot_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms/{id}/availability": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Check room availability",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "term_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "day_of_week", "in": "query", "required": true, "type": "integer"},
                    {"name": "lesson_period_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "exclude_slot_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable-slots": {
            "post": {
                "tags": ["Availability"],
                "summary": "Place a timetable slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Occupancy conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable-slots/{id}": {
            "delete": {
                "tags": ["Availability"],
                "summary": "Cancel a timetable slot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Cancelled or no-op", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/settings/timetable": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get timetable settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Update timetable settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTimetableSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateTermRequest": {
            "type": "object",
            "required": ["name", "start_date", "end_date"],
            "properties": {
                "name": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "is_active": {"type": "boolean"}
            }
        },
        "CreateOfferingRequest": {
            "type": "object",
            "required": ["subject_id", "term_id"],
            "properties": {
                "subject_id": {"type": "integer"},
                "term_id": {"type": "integer"}
            }
        },
        "AssignClassRequest": {
            "type": "object",
            "required": ["class_id"],
            "properties": {
                "class_id": {"type": "integer"}
            }
        },
        "SetSubjectAssignmentRequest": {
            "type": "object",
            "required": ["term_id", "class_subject_id", "subject_id"],
            "properties": {
                "term_id": {"type": "integer"},
                "class_subject_id": {"type": "integer"},
                "subject_id": {"type": "integer"},
                "is_active": {"type": "boolean"}
            }
        },
        "CreateSlotRequest": {
            "type": "object",
            "required": ["class_id", "subject_id", "employee_id", "room_id", "lesson_period_id", "term_id"],
            "properties": {
                "class_id": {"type": "integer"},
                "subject_id": {"type": "integer"},
                "employee_id": {"type": "integer"},
                "room_id": {"type": "integer"},
                "lesson_period_id": {"type": "integer"},
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "term_id": {"type": "integer"}
            }
        },
        "UpdateTimetableSettingsRequest": {
            "type": "object",
            "properties": {
                "allow_admin_assignment": {"type": "boolean"},
                "block_all_subject_selection": {"type": "boolean"},
                "generation_deadline_enabled": {"type": "boolean"},
                "timetable_generation_deadline": {"type": "string", "format": "date-time"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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

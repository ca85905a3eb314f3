package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Cohort Tools API",
        "description": "Cohort and student records for a training school.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "Authorization"
        }
    },
    "tags": [
        {
            "name": "Cohorts",
            "description": "Training cohorts"
        },
        {
            "name": "Students",
            "description": "Students and their cohort"
        },
        {
            "name": "Authentication",
            "description": "Signup, login and token handling"
        },
        {
            "name": "Users",
            "description": "Own account"
        },
        {
            "name": "Operations",
            "description": "Health, readiness and metrics"
        },
        {
            "name": "Docs",
            "description": "Static documentation"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Record store readiness",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/docs": {
            "get": {
                "tags": [
                    "Docs"
                ],
                "summary": "API documentation page",
                "produces": [
                    "text/html"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Register user",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SignupRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/User"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Authenticate user",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/auth/verify": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Inspect access token",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Token claims",
                        "schema": {
                            "$ref": "#/definitions/Claims"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Revoke access token",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "tags": [
                    "Users"
                ],
                "summary": "Get own user record",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "User ID"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/User"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/cohorts": {
            "get": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "List cohorts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Cohort"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Create cohort",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CohortRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Cohort"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/cohorts/{cohortId}": {
            "get": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Get cohort",
                "parameters": [
                    {
                        "name": "cohortId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Cohort ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Cohort or null",
                        "schema": {
                            "$ref": "#/definitions/Cohort"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Update cohort",
                "parameters": [
                    {
                        "name": "cohortId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Cohort ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CohortRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated cohort or null",
                        "schema": {
                            "$ref": "#/definitions/Cohort"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Delete cohort",
                "parameters": [
                    {
                        "name": "cohortId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Cohort ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted cohort or null",
                        "schema": {
                            "$ref": "#/definitions/Cohort"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/cohorts/{cohortId}/roster": {
            "get": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Download cohort roster",
                "parameters": [
                    {
                        "name": "cohortId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Cohort ID"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ]
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "Attachment",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/students": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List students with their cohort",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/StudentDetail"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Students"
                ],
                "summary": "Create student",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StudentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Student"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/students/cohort/{cohortId}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List the students of a cohort",
                "parameters": [
                    {
                        "name": "cohortId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Cohort ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/StudentDetail"
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            }
        },
        "/api/students/{studentId}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Get student with its cohort",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Student or null",
                        "schema": {
                            "$ref": "#/definitions/StudentDetail"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Students"
                ],
                "summary": "Update student",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StudentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated student or null",
                        "schema": {
                            "$ref": "#/definitions/Student"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorEnvelope"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Students"
                ],
                "summary": "Delete student",
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "description": "Student ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted student or null",
                        "schema": {
                            "$ref": "#/definitions/Student"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/APIError"
                }
            }
        },
        "CohortRequest": {
            "type": "object",
            "properties": {
                "cohortSlug": {
                    "type": "string"
                },
                "cohortName": {
                    "type": "string"
                },
                "program": {
                    "type": "string",
                    "enum": [
                        "Web Dev",
                        "UX/UI",
                        "Data Analytics",
                        "Cybersecurity"
                    ]
                },
                "format": {
                    "type": "string",
                    "enum": [
                        "Full Time",
                        "Part Time"
                    ]
                },
                "campus": {
                    "type": "string",
                    "enum": [
                        "Madrid",
                        "Barcelona",
                        "Miami",
                        "Paris",
                        "Berlin",
                        "Amsterdam",
                        "Lisbon",
                        "Remote"
                    ]
                },
                "startDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "endDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "inProgress": {
                    "type": "boolean"
                },
                "programManager": {
                    "type": "string"
                },
                "leadTeacher": {
                    "type": "string"
                },
                "totalHours": {
                    "type": "number",
                    "minimum": 0
                }
            }
        },
        "Cohort": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "cohortSlug": {
                    "type": "string"
                },
                "cohortName": {
                    "type": "string"
                },
                "program": {
                    "type": "string",
                    "enum": [
                        "Web Dev",
                        "UX/UI",
                        "Data Analytics",
                        "Cybersecurity"
                    ]
                },
                "format": {
                    "type": "string",
                    "enum": [
                        "Full Time",
                        "Part Time"
                    ]
                },
                "campus": {
                    "type": "string",
                    "enum": [
                        "Madrid",
                        "Barcelona",
                        "Miami",
                        "Paris",
                        "Berlin",
                        "Amsterdam",
                        "Lisbon",
                        "Remote"
                    ]
                },
                "startDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "endDate": {
                    "type": "string",
                    "format": "date-time"
                },
                "inProgress": {
                    "type": "boolean"
                },
                "programManager": {
                    "type": "string"
                },
                "leadTeacher": {
                    "type": "string"
                },
                "totalHours": {
                    "type": "number",
                    "minimum": 0
                }
            }
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string",
                    "format": "email"
                },
                "phone": {
                    "type": "string"
                },
                "linkedinUrl": {
                    "type": "string"
                },
                "languages": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "enum": [
                            "English",
                            "Spanish",
                            "French",
                            "German",
                            "Portuguese",
                            "Dutch",
                            "Other"
                        ]
                    }
                },
                "program": {
                    "type": "string"
                },
                "background": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "projects": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "cohort": {
                    "type": "string",
                    "description": "Cohort ID; empty string clears it"
                }
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string",
                    "format": "email"
                },
                "phone": {
                    "type": "string"
                },
                "linkedinUrl": {
                    "type": "string"
                },
                "languages": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "enum": [
                            "English",
                            "Spanish",
                            "French",
                            "German",
                            "Portuguese",
                            "Dutch",
                            "Other"
                        ]
                    }
                },
                "program": {
                    "type": "string"
                },
                "background": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "projects": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "cohort": {
                    "type": "string",
                    "x-nullable": true
                }
            }
        },
        "StudentDetail": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "firstName": {
                    "type": "string"
                },
                "lastName": {
                    "type": "string"
                },
                "email": {
                    "type": "string",
                    "format": "email"
                },
                "phone": {
                    "type": "string"
                },
                "linkedinUrl": {
                    "type": "string"
                },
                "languages": {
                    "type": "array",
                    "items": {
                        "type": "string",
                        "enum": [
                            "English",
                            "Spanish",
                            "French",
                            "German",
                            "Portuguese",
                            "Dutch",
                            "Other"
                        ]
                    }
                },
                "program": {
                    "type": "string"
                },
                "background": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "projects": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "cohort": {
                    "$ref": "#/definitions/Cohort"
                }
            }
        },
        "SignupRequest": {
            "type": "object",
            "required": [
                "email",
                "password",
                "name"
            ],
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string",
                    "minLength": 6
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "authToken": {
                    "type": "string"
                },
                "expiresIn": {
                    "type": "integer"
                },
                "user": {
                    "$ref": "#/definitions/User"
                }
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "Claims": {
            "type": "object",
            "properties": {
                "_id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "iss": {
                    "type": "string"
                },
                "sub": {
                    "type": "string"
                },
                "jti": {
                    "type": "string"
                },
                "exp": {
                    "type": "integer"
                },
                "iat": {
                    "type": "integer"
                }
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

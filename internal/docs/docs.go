// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/auth/register": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.RegisterRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "User registered and tokens generated",
                        "schema": {
                            "$ref": "#/definitions/handlers.AuthResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email already registered",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Login user",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User authenticated",
                        "schema": {
                            "$ref": "#/definitions/handlers.AuthResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "423": {
                        "description": "Account locked",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Refresh tokens",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.RefreshRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "New tokens",
                        "schema": {
                            "$ref": "#/definitions/handlers.AuthResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid or expired token",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/guest": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Guest login",
                "responses": {
                    "201": {
                        "description": "Guest created and seeded with demo data",
                        "schema": {
                            "$ref": "#/definitions/handlers.AuthResponse"
                        }
                    }
                }
            }
        },
        "/logout": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Logout",
                "responses": {
                    "200": {
                        "description": "Logged out; guest accounts are deleted"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/profile": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Get user profile",
                "responses": {
                    "200": {
                        "description": "User profile",
                        "schema": {
                            "$ref": "#/definitions/handlers.UserResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Update settings",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.SettingsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated profile",
                        "schema": {
                            "$ref": "#/definitions/handlers.UserResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Email already registered",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings/change-password": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Change password",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.ChangePasswordRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Password changed"
                    },
                    "400": {
                        "description": "Current password is incorrect or new password too short",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/delete-account": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Delete account",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.DeleteAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Account deleted"
                    },
                    "400": {
                        "description": "Deletion not confirmed or feedback invalid",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/cleanup-guests": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "admin"
                ],
                "summary": "Delete stale guests",
                "responses": {
                    "200": {
                        "description": "Number of deleted guests"
                    },
                    "401": {
                        "description": "Missing or invalid API key",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "description": "Remove guest accounts, and all their data, created before the guest max age",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Admin API key",
                        "name": "X-API-Key",
                        "in": "header",
                        "required": true
                    }
                ]
            }
        },
        "/income": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "income"
                ],
                "summary": "Create a ledger entry",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.IncomeRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created entry"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "income"
                ],
                "summary": "List ledger entries",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "year",
                        "in": "query",
                        "description": "Year"
                    },
                    {
                        "type": "string",
                        "name": "month",
                        "in": "query",
                        "description": "Month (YYYY-MM); recurring entries are included"
                    },
                    {
                        "type": "integer",
                        "name": "page",
                        "in": "query",
                        "description": "Page number"
                    },
                    {
                        "type": "integer",
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated entries"
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/income/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "income"
                ],
                "summary": "Get a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Entry"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "income"
                ],
                "summary": "Update a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.IncomeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated entry"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "income"
                ],
                "summary": "Delete a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/expenses": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Create a ledger entry",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.ExpenseRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created entry"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "List ledger entries",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "year",
                        "in": "query",
                        "description": "Year"
                    },
                    {
                        "type": "string",
                        "name": "month",
                        "in": "query",
                        "description": "Month (YYYY-MM); recurring entries are included"
                    },
                    {
                        "type": "integer",
                        "name": "page",
                        "in": "query",
                        "description": "Page number"
                    },
                    {
                        "type": "integer",
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated entries"
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/expenses/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Get a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Entry"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Update a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.ExpenseRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated entry"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "expenses"
                ],
                "summary": "Delete a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/budgets": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budgets"
                ],
                "summary": "Create a ledger entry",
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.BudgetRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created entry"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budgets"
                ],
                "summary": "List ledger entries",
                "parameters": [
                    {
                        "type": "string",
                        "name": "month",
                        "in": "query",
                        "description": "Month (YYYY-MM); recurring entries are included"
                    },
                    {
                        "type": "integer",
                        "name": "page",
                        "in": "query",
                        "description": "Page number"
                    },
                    {
                        "type": "integer",
                        "name": "page_size",
                        "in": "query",
                        "description": "Page size"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Paginated entries"
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/budgets/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budgets"
                ],
                "summary": "Get a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Entry"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budgets"
                ],
                "summary": "Update a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/handlers.BudgetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated entry"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "budgets"
                ],
                "summary": "Delete a ledger entry",
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/goal-entities/{kind}": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Create a goal entity",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "general-savings",
                            "savings-goals",
                            "repayment-goals"
                        ],
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "description": "Goal kind"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Goal data (GeneralSavingRequest for general-savings)",
                        "schema": {
                            "$ref": "#/definitions/handlers.TargetGoalRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created goal"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "List goal entities",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "general-savings",
                            "savings-goals",
                            "repayment-goals"
                        ],
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "description": "Goal kind"
                    },
                    {
                        "type": "integer",
                        "name": "year",
                        "in": "query",
                        "description": "Year (general savings)"
                    },
                    {
                        "type": "string",
                        "name": "month",
                        "in": "query",
                        "description": "Month YYYY-MM (general savings)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Goals"
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/goal-entities/{kind}/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Get a goal entity",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "general-savings",
                            "savings-goals",
                            "repayment-goals"
                        ],
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "description": "Goal kind"
                    },
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Goal"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "The running amount is only changed through update-amount.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Update a goal entity",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "general-savings",
                            "savings-goals",
                            "repayment-goals"
                        ],
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "description": "Goal kind"
                    },
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Goal data (GeneralSavingRequest for general-savings)",
                        "schema": {
                            "$ref": "#/definitions/handlers.TargetGoalRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated goal"
                    },
                    "400": {
                        "description": "Invalid input or validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "History of the entity stays listable.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Delete a goal entity",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "general-savings",
                            "savings-goals",
                            "repayment-goals"
                        ],
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "description": "Goal kind"
                    },
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/goal-entities/{kind}/{id}/update-amount": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Add to or remove from the running amount and record the change in history. A YYYY-MM date means the 15th of that month.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Update running amount",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "general-savings",
                            "savings-goals",
                            "repayment-goals"
                        ],
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "description": "Goal kind"
                    },
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Mutation",
                        "schema": {
                            "$ref": "#/definitions/handlers.UpdateAmountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{\"status\": \"<field> updated\"}"
                    },
                    "400": {
                        "description": "INVALID_AMOUNT, INVALID_DATE or INVALID_ACTION",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/goal-entities/{kind}/{id}/history": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "goals"
                ],
                "summary": "Goal history",
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "general-savings",
                            "savings-goals",
                            "repayment-goals"
                        ],
                        "name": "kind",
                        "in": "path",
                        "required": true,
                        "description": "Goal kind"
                    },
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Resource ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "History entries, latest effective date first",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "history": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/handlers.HistoryEntry"
                                    }
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.RegisterRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 255
                },
                "password": {
                    "type": "string",
                    "minLength": 8,
                    "maxLength": 128
                },
                "first_name": {
                    "type": "string",
                    "maxLength": 100
                },
                "last_name": {
                    "type": "string",
                    "maxLength": 100
                }
            }
        },
        "handlers.LoginRequest": {
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
        "handlers.RefreshRequest": {
            "type": "object",
            "required": [
                "refresh_token"
            ],
            "properties": {
                "refresh_token": {
                    "type": "string"
                }
            }
        },
        "handlers.SettingsRequest": {
            "type": "object",
            "properties": {
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "sex": {
                    "type": "string",
                    "enum": [
                        "Male",
                        "Female"
                    ]
                },
                "dob": {
                    "type": "string",
                    "example": "2025-03-15"
                },
                "currency": {
                    "type": "string",
                    "enum": [
                        "GBP",
                        "USD",
                        "EUR"
                    ]
                }
            }
        },
        "handlers.ChangePasswordRequest": {
            "type": "object",
            "required": [
                "current_password",
                "new_password"
            ],
            "properties": {
                "current_password": {
                    "type": "string"
                },
                "new_password": {
                    "type": "string",
                    "minLength": 6,
                    "maxLength": 128
                }
            }
        },
        "handlers.DeleteAccountRequest": {
            "type": "object",
            "properties": {
                "confirm": {
                    "type": "boolean"
                },
                "reason": {
                    "type": "string"
                },
                "other_reason": {
                    "type": "string"
                },
                "rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                }
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "user_code": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "sex": {
                    "type": "string"
                },
                "dob": {
                    "type": "string",
                    "example": "2025-03-15"
                },
                "currency": {
                    "type": "string"
                },
                "is_guest": {
                    "type": "boolean"
                }
            }
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {
                    "type": "string"
                },
                "refresh_token": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/handlers.UserResponse"
                }
            }
        },
        "handlers.IncomeRequest": {
            "type": "object",
            "required": [
                "amount"
            ],
            "properties": {
                "amount": {
                    "type": "string",
                    "example": "200.00"
                },
                "date": {
                    "type": "string",
                    "example": "2025-03-15"
                },
                "category": {
                    "type": "string",
                    "example": "salary"
                },
                "custom_category": {
                    "type": "string"
                },
                "recurring_monthly": {
                    "type": "boolean"
                }
            }
        },
        "handlers.ExpenseRequest": {
            "type": "object",
            "required": [
                "amount"
            ],
            "properties": {
                "amount": {
                    "type": "string",
                    "example": "200.00"
                },
                "date": {
                    "type": "string",
                    "example": "2025-03-15"
                },
                "category": {
                    "type": "string",
                    "example": "food"
                },
                "custom_category": {
                    "type": "string"
                },
                "recurring_monthly": {
                    "type": "boolean"
                }
            }
        },
        "handlers.BudgetRequest": {
            "type": "object",
            "required": [
                "amount"
            ],
            "properties": {
                "amount": {
                    "type": "string",
                    "example": "200.00"
                },
                "date": {
                    "type": "string",
                    "example": "2025-03-15"
                },
                "category": {
                    "type": "string",
                    "example": "food"
                },
                "custom_category": {
                    "type": "string"
                },
                "recurring_monthly": {
                    "type": "boolean"
                }
            }
        },
        "handlers.GeneralSavingRequest": {
            "type": "object",
            "required": [
                "amount"
            ],
            "properties": {
                "savings_name": {
                    "type": "string"
                },
                "amount": {
                    "type": "string",
                    "example": "200.00"
                },
                "date": {
                    "type": "string",
                    "example": "2025-03-15"
                }
            }
        },
        "handlers.TargetGoalRequest": {
            "type": "object",
            "required": [
                "goal_amount"
            ],
            "properties": {
                "category": {
                    "type": "string"
                },
                "custom_category": {
                    "type": "string"
                },
                "goal_name": {
                    "type": "string"
                },
                "goal_amount": {
                    "type": "string",
                    "example": "2500.00"
                },
                "current_amount": {
                    "type": "string",
                    "example": "200.00"
                },
                "deadline_mode": {
                    "type": "string",
                    "enum": [
                        "ongoing",
                        "fixed"
                    ]
                },
                "deadline": {
                    "type": "string",
                    "example": "2026-12-31"
                }
            }
        },
        "handlers.UpdateAmountRequest": {
            "type": "object",
            "properties": {
                "action": {
                    "type": "string",
                    "enum": [
                        "add",
                        "remove"
                    ],
                    "example": "add"
                },
                "amount": {
                    "type": "string",
                    "example": "200.00"
                },
                "date": {
                    "type": "string",
                    "example": "2025-03-15"
                }
            }
        },
        "handlers.HistoryEntry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "action": {
                    "type": "string",
                    "enum": [
                        "add",
                        "remove"
                    ]
                },
                "amount": {
                    "type": "string",
                    "example": "200.00"
                },
                "date": {
                    "type": "string",
                    "example": "2025-03-15"
                },
                "content_type": {
                    "type": "string"
                },
                "object_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "related_object_repr": {
                    "type": "string",
                    "x-nullable": true
                }
            }
        },
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "fields": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "$ref": "#/definitions/handlers.ErrorDetail"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Schemes:          []string{},
	Title:            "Fundit API",
	Description:      "Fundit tracks income, expenses, budgets, savings and repayment goals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

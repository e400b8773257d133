// Package docs registers the console OpenAPI document with swag.
// Regenerate with `swag init -g cmd/console/main.go` after changing handler annotations.
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
        "/console/session": {
            "get": {
                "tags": ["session"],
                "summary": "현재 세션 조회",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionDTO"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.LoginRequiredResponseDTO"}}
                }
            },
            "post": {
                "tags": ["session"],
                "summary": "운영자 로그인",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            },
            "delete": {
                "tags": ["session"],
                "summary": "로그아웃",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponseDTO"}}
                }
            }
        },
        "/console/pages": {
            "get": {
                "tags": ["pages"],
                "summary": "페이지 카탈로그",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PageInfoDTO"}}}
                }
            }
        },
        "/console/pages/{page}": {
            "get": {
                "tags": ["pages"],
                "summary": "페이지 조회",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "page", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageViewDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        },
        "/console/pages/{page}/reload": {
            "post": {
                "tags": ["pages"],
                "summary": "페이지 재조회",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "page", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageViewDTO"}}
                }
            }
        },
        "/console/pages/{page}/filters": {
            "put": {
                "tags": ["pages"],
                "summary": "필터 변경",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "page", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetFiltersRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageViewDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponseDTO"}}
                }
            }
        },
        "/console/pages/{page}/pagination": {
            "put": {
                "tags": ["pages"],
                "summary": "페이지 이동",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "page", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetPageRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageViewDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponseDTO"}}
                }
            }
        },
        "/console/pages/{page}/sort": {
            "put": {
                "tags": ["pages"],
                "summary": "정렬 변경",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "page", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetSortRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageViewDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponseDTO"}}
                }
            }
        },
        "/console/pages/{page}/mutations": {
            "post": {
                "tags": ["pages"],
                "summary": "변경 작업 실행",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "page", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.MutationRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MutationResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MutationResponseDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.MutationResponseDTO"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.MutationResponseDTO"}}
                }
            }
        },
        "/console/statistics": {
            "get": {
                "tags": ["statistics"],
                "summary": "캐비닛 사용 통계",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "startTime", "in": "query", "required": true},
                    {"type": "string", "name": "endTime", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatisticsDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponseDTO"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponseDTO": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "invalid_token"}}
        },
        "dto.ValidationErrorResponseDTO": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "validation_failed"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.LoginRequiredResponseDTO": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "login_required"},
                "redirect": {"type": "string", "example": "/console/session"}
            }
        },
        "dto.MessageResponseDTO": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "logged out"}}
        },
        "dto.LoginRequestDTO": {
            "type": "object",
            "required": ["accountName", "password"],
            "properties": {
                "accountName": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.SessionUserDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "accountName": {"type": "string"},
                "nickName": {"type": "string"},
                "roleType": {"type": "string"}
            }
        },
        "dto.SessionDTO": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/dto.SessionUserDTO"},
                "tokenExpiresAt": {"type": "string"},
                "tokenExpired": {"type": "boolean"}
            }
        },
        "dto.PageInfoDTO": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "notifications"},
                "title": {"type": "string", "example": "Notifications"},
                "filters": {"type": "array", "items": {"type": "string"}},
                "sorts": {"type": "array", "items": {"type": "string"}},
                "mutations": {"type": "array", "items": {"type": "string"}},
                "defaultPageSize": {"type": "integer"}
            }
        },
        "dto.PageViewDTO": {
            "type": "object",
            "properties": {
                "page": {"type": "string"},
                "query": {"type": "object"},
                "state": {"type": "string", "enum": ["idle", "loading", "ready", "failed"]},
                "rows": {"type": "array", "items": {"type": "object"}},
                "total": {"type": "integer"},
                "error": {"type": "string"},
                "loadedAt": {"type": "string"},
                "notices": {"type": "array", "items": {"type": "object"}}
            }
        },
        "dto.SetFiltersRequestDTO": {
            "type": "object",
            "required": ["filters"],
            "properties": {"filters": {"type": "object", "additionalProperties": {"type": "string"}}}
        },
        "dto.SetPageRequestDTO": {
            "type": "object",
            "properties": {"index": {"type": "integer"}, "size": {"type": "integer"}}
        },
        "dto.SetSortRequestDTO": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "direction": {"type": "string", "enum": ["asc", "desc"]}}
        },
        "dto.MutationRequestDTO": {
            "type": "object",
            "required": ["kind"],
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string", "example": "transition"},
                "transition": {"type": "string", "example": "publish"},
                "recordKey": {"type": "string", "example": "12"},
                "payload": {"type": "object"}
            }
        },
        "dto.MutationResponseDTO": {
            "type": "object",
            "properties": {
                "requestId": {"type": "string"},
                "result": {"type": "string", "enum": ["succeeded", "failed", "refused"]},
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "view": {"$ref": "#/definitions/dto.PageViewDTO"}
            }
        },
        "dto.StatisticsDTO": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "data": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"date": {"type": "string", "example": "2024-03-01"}, "usageCount": {"type": "integer"}}
                    }
                },
                "total": {"type": "integer"}
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
	Title:            "Locker Console API",
	Description:      "Admin console for the locker backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

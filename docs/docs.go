// Package docs registers the swagger document served under /swagger.
// Regenerate with go generate ./cmd/server after changing a @Router annotation.
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
        "/": {
            "get": {
                "tags": ["auth"],
                "summary": "Landing page",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["auth"],
                "summary": "Landing page",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/query_db": {
            "get": {
                "tags": ["auth"],
                "summary": "Signup form",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["auth"],
                "summary": "Signup form",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/signup": {
            "get": {
                "tags": ["auth"],
                "summary": "Landing page",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "description": "Register a new user account",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User signup",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "confirm_password", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Checks the credentials, sets the session cookie and redirects to the dashboard.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "description": "Revokes the current session token and clears the session cookie.",
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Dashboard",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "303": {"description": "Not logged in"}}
            }
        },
        "/dashboard/mes-posts-et-commentaires": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Own posts and comments menu",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/feature-flags": {
            "get": {
                "description": "Configured feature flags and their state for the current user.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Feature flags",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/mes-posts": {
            "get": {
                "description": "Posts written by the current user, newest first, 7 per page.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Own posts",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dashboard/mes-commentaires": {
            "get": {
                "description": "Comments written by the current user, newest first, 7 per page.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Own comments",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dashboard/discussion": {
            "get": {
                "description": "All posts, newest first, 10 per page.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Discussion listing",
                "parameters": [{"type": "integer", "name": "page", "in": "query"}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dashboard/discussion/recherche": {
            "get": {
                "description": "Case-insensitive literal match on title or content, 7 per page.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Search posts",
                "parameters": [
                    {"type": "string", "name": "query", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "303": {"description": "Empty keyword"}}
            },
            "post": {
                "description": "Case-insensitive literal match on title or content, 7 per page.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Search posts",
                "parameters": [
                    {"type": "string", "name": "query", "in": "formData"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "303": {"description": "Empty keyword"}}
            }
        },
        "/dashboard/discussion/pending": {
            "get": {
                "tags": ["posts"],
                "summary": "New post form",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/discussion/new_post": {
            "get": {
                "tags": ["posts"],
                "summary": "New post form",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "description": "Creates a post and redirects to the discussion listing. Empty fields redirect back to the form.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "content", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dashboard/discussion/{postId}": {
            "get": {
                "description": "A post and its comments, newest first, 7 per page, each with its direct replies.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Post detail",
                "parameters": [
                    {"type": "integer", "name": "postId", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Adds a top-level comment. Empty content is ignored. Always redirects to the post detail.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["comments"],
                "summary": "Comment on a post",
                "parameters": [
                    {"type": "integer", "name": "postId", "in": "path", "required": true},
                    {"type": "string", "name": "comment", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dashboard/discussion/{postId}/{commentId}/reply": {
            "post": {
                "description": "Adds a reply to a comment of the same post. Empty content is ignored.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["comments"],
                "summary": "Reply to a comment",
                "parameters": [
                    {"type": "integer", "name": "postId", "in": "path", "required": true},
                    {"type": "integer", "name": "commentId", "in": "path", "required": true},
                    {"type": "string", "name": "reply", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dashboard/course": {
            "get": {
                "tags": ["ranking"],
                "summary": "Course sectors",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/course/classement": {
            "post": {
                "description": "Top universities of a course sector, scraped from the league table.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["ranking"],
                "summary": "University ranking",
                "parameters": [{"type": "string", "name": "Course", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ranking.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ranking.Result"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/ranking.Result"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "ranking.Result": {
            "type": "object",
            "properties": {
                "course": {"type": "string"},
                "error": {"type": "string"},
                "label": {"type": "string"},
                "status": {"type": "string", "enum": ["ok", "not_found", "fetch_error", "parse_error"]},
                "universities": {"type": "array", "items": {"type": "string"}}
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
	Title:            "Campus Forum API",
	Description:      "Forum with threaded comments, search and university rankings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs 手工维护的 Swagger 文档，新增或修改路由时同步更新，由 /swagger 提供
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
                "produces": ["application/json"],
                "tags": ["Common"],
                "summary": "欢迎信息",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Common"],
                "summary": "存活检查",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/db": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Common"],
                "summary": "数据库检查",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "注册",
                "parameters": [
                    {"description": "用户名和密码", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "登录",
                "parameters": [
                    {"type": "string", "description": "用户名", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "密码", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "登出",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "当前用户",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserView"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Post"],
                "summary": "帖子列表",
                "parameters": [
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Limit", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.PostView"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Post"],
                "summary": "发布帖子",
                "parameters": [
                    {"type": "string", "description": "标题", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "描述", "name": "description", "in": "formData"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "标签，可重复", "name": "tags", "in": "formData"},
                    {"type": "file", "description": "图片", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PostView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/posts/hot": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Post"],
                "summary": "热门帖子",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.PostView"}}}}
            }
        },
        "/posts/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Post"],
                "summary": "搜索帖子",
                "parameters": [{"type": "string", "description": "关键字", "name": "query", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.PostView"}}}}
            }
        },
        "/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Post"],
                "summary": "帖子详情",
                "parameters": [{"type": "integer", "description": "帖子ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PostDetailView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Post"],
                "summary": "删除帖子",
                "parameters": [{"type": "integer", "description": "帖子ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageView"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/posts/{id}/comments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comment"],
                "summary": "发表评论",
                "parameters": [
                    {"type": "integer", "description": "帖子ID", "name": "id", "in": "path", "required": true},
                    {"description": "评论内容", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CommentInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommentView"}}}
            }
        },
        "/posts/{id}/interested": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Post"],
                "summary": "切换关注",
                "parameters": [{"type": "integer", "description": "帖子ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.InterestView"}}}
            }
        },
        "/comments/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Comment"],
                "summary": "删除评论",
                "parameters": [{"type": "integer", "description": "评论ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageView"}}}
            }
        },
        "/comments/{id}/vote": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comment"],
                "summary": "评论投票",
                "parameters": [
                    {"type": "integer", "description": "评论ID", "name": "id", "in": "path", "required": true},
                    {"description": "是否赞成", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.VoteInput"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommentView"}}}
            }
        },
        "/tags": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tag"],
                "summary": "标签列表",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.TagView"}}}}
            }
        },
        "/tags/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tag"],
                "summary": "候选标签",
                "parameters": [{"type": "string", "description": "关键字", "name": "query", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/client.Suggestion"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "client.Suggestion": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "label": {"type": "string"},
                "wikidata_url": {"type": "string"}
            }
        },
        "handler.CommentInput": {
            "type": "object",
            "required": ["content"],
            "properties": {"content": {"type": "string"}}
        },
        "handler.CommentUser": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "username": {"type": "string"}}
        },
        "handler.CommentView": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "post_id": {"type": "integer"},
                "score": {"type": "integer"},
                "user": {"$ref": "#/definitions/handler.CommentUser"}
            }
        },
        "handler.InterestView": {
            "type": "object",
            "properties": {"interest_count": {"type": "integer"}, "interested": {"type": "boolean"}}
        },
        "handler.MessageView": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.PostDetailView": {
            "type": "object",
            "properties": {
                "comments": {"type": "array", "items": {"$ref": "#/definitions/handler.CommentView"}},
                "creator": {"type": "string"},
                "id": {"type": "integer"},
                "interest_count": {"type": "integer"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/handler.TagView"}},
                "title": {"type": "string"}
            }
        },
        "handler.PostView": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "created_at": {"type": "string"},
                "creator": {"type": "string"},
                "description": {"type": "string"},
                "height": {"type": "number"},
                "id": {"type": "integer"},
                "image_url": {"type": "string"},
                "interest_count": {"type": "integer"},
                "length": {"type": "number"},
                "location": {"type": "string"},
                "material": {"type": "string"},
                "origin": {"type": "string"},
                "owner_id": {"type": "integer"},
                "shape": {"type": "string"},
                "smell": {"type": "string"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/handler.TagView"}},
                "taste": {"type": "string"},
                "title": {"type": "string"},
                "weight": {"type": "number"},
                "width": {"type": "number"}
            }
        },
        "handler.RegisterInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handler.TagView": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "label": {"type": "string"},
                "wikidata_url": {"type": "string"}
            }
        },
        "handler.TokenView": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        },
        "handler.UserView": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "username": {"type": "string"}}
        },
        "handler.VoteInput": {
            "type": "object",
            "required": ["is_upvote"],
            "properties": {"is_upvote": {"type": "boolean"}}
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catalog API",
	Description:      "Found-object catalogue: posts, tags, comments, votes and interest.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

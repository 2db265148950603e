// Package docs holds the swagger description of the dashboard API.
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
        "/api/v1/view": {
            "get": {
                "produces": ["application/json"],
                "tags": ["面板"],
                "summary": "获取面板状态",
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/dao.ViewSpec"}}
                }
            }
        },
        "/api/v1/actions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["面板"],
                "summary": "列出可执行的动作",
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/dao.ListActionsResponse"}}
                }
            }
        },
        "/api/v1/actions/{action}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["面板"],
                "summary": "执行面板动作",
                "parameters": [
                    {"type": "string", "description": "动作名称", "name": "action", "in": "path", "required": true},
                    {"description": "动作参数", "name": "req", "in": "body", "schema": {"$ref": "#/definitions/dao.ActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "执行完成", "schema": {"$ref": "#/definitions/dao.ActionResponse"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "404": {"description": "动作不存在", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/api/v1/activities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["面板"],
                "summary": "获取操作记录",
                "parameters": [
                    {"type": "integer", "description": "分页开始位置", "name": "start", "in": "query"},
                    {"type": "integer", "default": 50, "description": "分页大小", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/dao.ListActivitiesResponse"}},
                    "404": {"description": "未启用操作记录", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "登录",
                "parameters": [
                    {"description": "登录请求", "name": "req", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dao.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "登录成功", "schema": {"$ref": "#/definitions/dao.LoginResponse"}},
                    "401": {"description": "密码错误", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/submissions/download": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["提交记录"],
                "summary": "下载提交记录CSV",
                "responses": {
                    "200": {"description": "CSV文件", "schema": {"type": "file"}},
                    "502": {"description": "分析服务不可用", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dao.ActionRequest": {
            "type": "object",
            "properties": {
                "text": {"description": "预测文本", "type": "string"},
                "save": {"description": "是否保存预测结果", "type": "boolean"},
                "timestamps": {"description": "选中的提交记录时间戳", "type": "array", "items": {"type": "string"}},
                "checked": {"description": "全选状态", "type": "boolean"},
                "confirmed": {"description": "用户已确认", "type": "boolean"}
            }
        },
        "dao.ActionResponse": {
            "type": "object",
            "properties": {
                "action": {"description": "动作名称", "type": "string"},
                "outcome": {"description": "执行结果 ok/failed/rejected/cancelled/skipped", "type": "string"},
                "alerts": {"description": "需要展示给用户的提示", "type": "array", "items": {"type": "string"}},
                "confirm": {"description": "待确认的问题，重新提交 confirmed=true 以继续", "type": "string"},
                "navigate": {"description": "需要浏览器跳转的地址", "type": "string"},
                "view": {"$ref": "#/definitions/dao.ViewSpec"}
            }
        },
        "dao.TriggerSpec": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "disabled": {"type": "boolean"}
            }
        },
        "dao.ViewSpec": {
            "type": "object",
            "properties": {
                "statsHtml": {"type": "string"},
                "totalStat": {"type": "string"},
                "accuracyStat": {"type": "string"},
                "predictionHtml": {"type": "string"},
                "retrain": {"$ref": "#/definitions/dao.TriggerSpec"},
                "submissionsVisible": {"type": "boolean"},
                "submissionsHtml": {"type": "string"},
                "selected": {"type": "array", "items": {"type": "string"}},
                "pieChart": {"type": "object"},
                "barChart": {"type": "object"}
            }
        },
        "dao.ActionSpec": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dao.ListActionsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dao.ActionSpec"}},
                "inputSchema": {"type": "object"}
            }
        },
        "dao.ActivitySpec": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "action": {"type": "string"},
                "outcome": {"type": "string"},
                "detail": {"type": "string"},
                "createdTime": {"type": "string"}
            }
        },
        "dao.ListActivitiesResponse": {
            "type": "object",
            "properties": {
                "total": {"description": "记录总数", "type": "integer"},
                "items": {"description": "记录列表", "type": "array", "items": {"$ref": "#/definitions/dao.ActivitySpec"}}
            }
        },
        "dao.LoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"description": "密码", "type": "string"}
            }
        },
        "dao.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"description": "登录凭证", "type": "string"}
            }
        },
        "server.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"description": "错误信息", "type": "string"}
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
	Title:            "feedbackdash API",
	Description:      "Dashboard for the Arabic feedback analyzer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

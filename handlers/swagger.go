package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRoutes) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>docsession API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "docsession", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "User": { "type": "object", "properties": { "id": { "type": "integer" }, "username": { "type": "string" } } },
      "Document": { "type": "object", "properties": { "id": { "type": "integer" }, "title": { "type": "string" }, "content": { "type": "string" } } },
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } },
      "DocumentPatch": { "type": "object", "additionalProperties": false, "properties": { "title": { "type": "string" }, "content": { "type": "string" } } }
    }
  },
  "paths": {
    "/login": {
      "post": {
        "summary": "Claim a session for an existing username",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "username": { "type": "string" } } } } } },
        "responses": {
          "200": { "description": "logged in", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/User" } } } },
          "401": { "description": "Invalid login", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Message" } } } }
        }
      }
    },
    "/check_session": {
      "get": {
        "summary": "Return the logged-in user",
        "responses": {
          "200": { "description": "current user", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/User" } } } },
          "401": { "description": "not logged in" }
        }
      }
    },
    "/logout": {
      "delete": { "summary": "Drop the user from the session", "responses": { "204": { "description": "logged out" } } }
    },
    "/documents/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "integer" } } ],
      "get": {
        "summary": "Fetch a document",
        "responses": {
          "200": { "description": "document", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Document" } } } },
          "401": { "description": "not logged in" },
          "404": { "description": "Document not found" }
        }
      },
      "patch": {
        "summary": "Overwrite title and/or content",
        "requestBody": { "content": {
          "application/json": { "schema": { "$ref": "#/components/schemas/DocumentPatch" } },
          "application/x-www-form-urlencoded": { "schema": { "$ref": "#/components/schemas/DocumentPatch" } },
          "multipart/form-data": { "schema": { "$ref": "#/components/schemas/DocumentPatch" } }
        } },
        "responses": {
          "200": { "description": "updated document", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Document" } } } },
          "400": { "description": "unknown field or bad id" },
          "401": { "description": "not logged in" },
          "404": { "description": "Document not found" }
        }
      },
      "delete": {
        "summary": "Delete a document",
        "responses": {
          "200": { "description": "document successfully deleted" },
          "401": { "description": "not logged in" },
          "404": { "description": "Document not found" }
        }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`

// Package jsonapi renders catalogue resources in the JSON:API
// document layout (https://jsonapi.org): a top-level data member
// holding resource objects with type, id, attributes and
// relationships, served as application/vnd.api+json.
package jsonapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"floe/internal/shared/errors"
	"floe/internal/shared/utils"
)

// ContentType is the JSON:API media type.
const ContentType = "application/vnd.api+json"

// Identifier references a resource by type and id.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship holds the linkage of one named relationship.
type Relationship struct {
	Data Identifier `json:"data"`
}

// Resource is one JSON:API resource object. IDs are the neutral
// identifiers exposed by the catalogue, never database row ids.
type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    any                     `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Document is a top-level JSON:API document.
type Document struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

// ErrorObject is one JSON:API error object.
type ErrorObject struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// ErrorDocument is a top-level JSON:API error document.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// Single writes a document holding one resource object.
func Single(c *gin.Context, statusCode int, resource Resource) {
	write(c, statusCode, Document{Data: resource})
}

// List writes a document holding a page of resource objects with
// pagination meta.
func List(c *gin.Context, resources []Resource, total int64, pagination utils.Pagination) {
	totalPages := int((total + int64(pagination.PageSize) - 1) / int64(pagination.PageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	if resources == nil {
		resources = []Resource{}
	}

	write(c, http.StatusOK, Document{
		Data: resources,
		Meta: map[string]any{
			"total":       total,
			"page":        pagination.Page,
			"page_size":   pagination.PageSize,
			"total_pages": totalPages,
		},
	})
}

// Error writes an error document with a single error object.
func Error(c *gin.Context, statusCode int, title, detail string) {
	write(c, statusCode, ErrorDocument{Errors: []ErrorObject{{
		Status: strconv.Itoa(statusCode),
		Title:  title,
		Detail: detail,
	}}})
}

// ErrorFromErr maps an application error to an error document.
// Non-application errors become opaque 500s so internal details never
// reach the client.
func ErrorFromErr(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		Error(c, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	Error(c, http.StatusInternalServerError, "Internal server error occurred", "")
}

func write(c *gin.Context, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(statusCode, ContentType, data)
}

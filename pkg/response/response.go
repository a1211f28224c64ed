// Package response 提供统一的 HTTP 响应信封：{data: ...} 与 {data, meta} 分页结构
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Meta 分页元信息
type Meta struct {
	Page       int   `json:"page"`
	TotalPages int64 `json:"total_pages"`
	Total      int64 `json:"total"`
}

// Envelope 统一响应信封
type Envelope struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// ErrorBody 错误响应体
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Success 返回 200 与数据信封
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Data: data})
}

// Created 返回 201 与数据信封
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Data: data})
}

// Paginated 返回 200 与带分页元信息的信封
func Paginated(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, Envelope{
		Data: data,
		Meta: &Meta{
			Page:       page,
			TotalPages: totalPages,
			Total:      total,
		},
	})
}

// ErrorWithStatus 返回指定状态码与错误信息
func ErrorWithStatus(c *gin.Context, status int, message string, code string) {
	c.JSON(status, ErrorBody{Error: message, Code: code})
}

// Error 返回 500 与错误信息
func Error(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusInternalServerError, message, "")
}

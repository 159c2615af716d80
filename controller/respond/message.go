package respond

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"expo-update-service/tool"
)

// Message unified response structure
type Message struct {
	Code           int         `json:"code"`
	Message        string      `json:"message"`
	ProcessingTime int64       `json:"processingTime"`
	Data           interface{} `json:"data"`
}

// Response response structure (for Swagger)
// @Description Unified API response structure
type Response struct {
	Code           int         `json:"code" example:"0" description:"Response code: 0=success, 40000=param error, 40100=unauthorized, 40300=forbidden, 40400=not found, 50000=server error"`
	Message        string      `json:"message" example:"success" description:"Response message"`
	ProcessingTime int64       `json:"processingTime" example:"123" description:"Request processing time (milliseconds)"`
	Data           interface{} `json:"data" description:"Response data"`
}

// Response code constants
const (
	CodeSuccess      = 0     // Success
	CodeInvalidParam = 40000 // Parameter error
	CodeUnauthorized = 40100 // Unauthorized
	CodeForbidden    = 40300 // Forbidden
	CodeNotFound     = 40400 // Resource not found
	CodeServerError  = 50000 // Server error
)

// Success message constants
const (
	MsgSuccess = "success"
	MsgFailed  = "failed"
)

// Success return success response
func Success(c *gin.Context, data interface{}) {
	SuccessWithMsg(c, MsgSuccess, data)
}

// SuccessWithMsg return success response (custom message)
func SuccessWithMsg(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Message{
		Code:           CodeSuccess,
		Message:        message,
		ProcessingTime: getProcessingTime(c),
		Data:           data,
	})
}

// Created return resource created response
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Message{
		Code:           CodeSuccess,
		Message:        message,
		ProcessingTime: getProcessingTime(c),
		Data:           data,
	})
}

// Error return error response
func Error(c *gin.Context, status, code int, message string) {
	c.JSON(status, Message{
		Code:           code,
		Message:        message,
		ProcessingTime: getProcessingTime(c),
		Data:           nil,
	})
}

// InvalidParam return parameter error response
func InvalidParam(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidParam, message)
}

// Unauthorized return unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden return forbidden response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound return resource not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// ServerError return server error response
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeServerError, message)
}

// getProcessingTime calculate request processing time (milliseconds)
func getProcessingTime(c *gin.Context) int64 {
	if startTime, exists := c.Get("start_time"); exists {
		if t, ok := startTime.(time.Time); ok {
			return time.Since(t).Milliseconds()
		}
	}
	return 0
}

// TimingMiddleware timing middleware
func TimingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("start_time", time.Now())
		c.Next()
	}
}

// RequestIDMiddleware tags every response with a request id, honoring an
// id the caller already supplied
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			id, err := tool.GetUUID()
			if err == nil {
				requestID = id
			}
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

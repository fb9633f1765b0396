package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON body of a successful request
type Response struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorResponse is the JSON body of a failed request
type ErrorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response. fields may be nil.
func Error(c *gin.Context, code int, message string, fields map[string]string) {
	c.JSON(code, ErrorResponse{
		Error:     message,
		Fields:    fields,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}

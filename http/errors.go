package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	c "github.com/d0ngw/hitcounter/common"
)

// 错误响应中使用的名称
var statusErrorNames = map[int]string{
	http.StatusBadRequest:           "Bad Request",
	http.StatusUnauthorized:         "Unauthorized",
	http.StatusForbidden:            "Forbidden",
	http.StatusNotFound:             "Not Found",
	http.StatusMethodNotAllowed:     "Method Not Allowed",
	http.StatusConflict:             "Conflict",
	http.StatusUnsupportedMediaType: "Unsupported Media Type",
	http.StatusInternalServerError:  "Internal Server Error",
}

const internalErrorMessage = "Internal Server Error"

// StatusErrorName 取得状态码对应的错误名称,不支持的状态码都视为Internal Server Error
func StatusErrorName(status int) string {
	if name, ok := statusErrorNames[status]; ok {
		return name
	}
	return statusErrorNames[http.StatusInternalServerError]
}

// ErrorBody 错误响应
type ErrorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusError 携带Http状态码的错误
type StatusError struct {
	Status  int
	Message string
	Cause   error
}

func (p *StatusError) Error() string {
	if p.Cause != nil {
		return fmt.Sprintf("%d %s: %v", p.Status, p.Message, p.Cause)
	}
	return fmt.Sprintf("%d %s", p.Status, p.Message)
}

func (p *StatusError) Unwrap() error {
	return p.Cause
}

// NewStatusError 创建StatusError
func NewStatusError(status int, format string, args ...interface{}) *StatusError {
	return &StatusError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// WrapStatusError 使用状态码包装cause
func WrapStatusError(status int, cause error, format string, args ...interface{}) *StatusError {
	return &StatusError{Status: status, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// RenderError 将err输出为JSON错误响应.
// 4xx的StatusError原样输出消息并记录warn日志,其他错误记录完整信息后只输出通用的消息
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status >= 400 && statusErr.Status < 500 {
		c.Warnf("%s", statusErr.Message)
		RenderJSONWithStatus(w, statusErr.Status, &ErrorBody{
			Status:  statusErr.Status,
			Error:   StatusErrorName(statusErr.Status),
			Message: statusErr.Message,
		})
		return
	}

	status := http.StatusInternalServerError
	if statusErr != nil && statusErr.Status > 0 {
		status = statusErr.Status
	}
	c.Errorf("%s %s fail,err:%v\n%s", r.Method, r.URL.Path, err, debug.Stack())
	renderInternalError(w, status)
}

func renderInternalError(w http.ResponseWriter, status int) {
	RenderJSONWithStatus(w, status, &ErrorBody{
		Status:  status,
		Error:   StatusErrorName(status),
		Message: internalErrorMessage,
	})
}

// NotFound 未匹配到路由时的处理函数
func NotFound(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, NewStatusError(http.StatusNotFound, "Resource not found: %s %s", r.Method, r.URL.Path))
}

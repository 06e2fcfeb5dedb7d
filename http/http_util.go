package http

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RenderJSON 以200状态码渲染JSON
func RenderJSON(w http.ResponseWriter, jsonData interface{}) {
	RenderJSONWithStatus(w, http.StatusOK, jsonData)
}

// RenderJSONWithStatus 使用指定的状态码渲染JSON
func RenderJSONWithStatus(w http.ResponseWriter, status int, jsonData interface{}) {
	data, err := json.Marshal(jsonData)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":500,"error":"Internal Server Error","message":"Internal Server Error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

// RenderNoContent 输出204,没有响应体
func RenderNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RequestScheme 取得请求的scheme,支持反向代理设置的X-Forwarded-Proto
func RequestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto == "https" {
		return proto
	}
	return "http"
}

// AbsoluteURL 使用请求的scheme和host构建path的绝对URL
func AbsoluteURL(r *http.Request, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return RequestScheme(r) + "://" + r.Host + path
}

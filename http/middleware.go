package http

import (
	"net/http"
	"runtime/debug"

	c "github.com/d0ngw/hitcounter/common"
)

// Middleware 定义中间件接口
type Middleware interface {
	// Handle 包装next,返回新的处理函数
	Handle(next http.HandlerFunc) http.HandlerFunc
}

// MiddlewareFunc 函数形式的Middleware
type MiddlewareFunc func(next http.HandlerFunc) http.HandlerFunc

// Handle impls Middleware
func (f MiddlewareFunc) Handle(next http.HandlerFunc) http.HandlerFunc {
	return f(next)
}

// RecoverMiddleware 捕获处理函数中的panic,记录堆栈并输出500
var RecoverMiddleware = MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				c.Errorf("%s %s panic:%v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				renderInternalError(w, http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
})

// securityHeaders 默认输出的安全相关的响应头
var securityHeaders = map[string]string{
	"X-Content-Type-Options":     "nosniff",
	"X-Frame-Options":            "SAMEORIGIN",
	"X-Dns-Prefetch-Control":     "off",
	"Referrer-Policy":            "no-referrer",
	"Cross-Origin-Opener-Policy": "same-origin",
	"Content-Security-Policy":    "default-src 'self'",
}

// SecurityHeadersMiddleware 为所有响应添加安全相关的响应头
var SecurityHeadersMiddleware = MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		for k, v := range securityHeaders {
			header.Set(k, v)
		}
		next(w, r)
	}
})

// chainMiddlewares 依次使用middlewares包装handler,第一个middleware在最外层
func chainMiddlewares(handler http.HandlerFunc, middlewares []Middleware) http.HandlerFunc {
	h := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i].Handle(h)
	}
	return h
}

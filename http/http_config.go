// Package http 提供基本的http服务
package http

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	c "github.com/d0ngw/hitcounter/common"
)

// Config Http配置
type Config struct {
	Addr         string        //Http监听地址
	ReadTimeout  time.Duration //读超时,单位秒
	WriteTimeout time.Duration //写超时,单位秒
	MaxConns     int           //最大的并发连接数
	CORSOrigins  []string      //允许跨域访问的Origin,为空时不处理跨域
	AccessLog    bool          //是否输出访问日志
	middlewares  []Middleware
	handles      map[string]http.HandlerFunc
}

// NewConfig 创建配置
func NewConfig(addr string) *Config {
	return &Config{
		Addr:    addr,
		handles: map[string]http.HandlerFunc{},
	}
}

// RegController 注册controller中的所有处理函数
func (p *Config) RegController(controller Controller) error {
	if controller == nil {
		return fmt.Errorf("Can't reg nil controller")
	}

	handlers, err := ReflectHandlers(controller)
	if err != nil {
		return err
	}
	if len(handlers) == 0 {
		c.Warnf("Can't find handler in %T", controller)
		return nil
	}

	patterns := make([]string, 0, len(handlers))
	for pattern := range handlers {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	for _, pattern := range patterns {
		if err := p.RegHandleFunc(pattern, handlers[pattern]); err != nil {
			return err
		}
		c.Debugf("Register controller %T#%s,pattern:%s", controller, controller.GetName(), pattern)
	}
	return nil
}

// RegHandleFunc 注册pattern的处理函数handlerFunc
func (p *Config) RegHandleFunc(pattern string, handlerFunc http.HandlerFunc) error {
	if handlerFunc == nil {
		return fmt.Errorf("Can't bind nil handlerFunc to pattern %s", pattern)
	}
	if p.handles == nil {
		p.handles = map[string]http.HandlerFunc{}
	}
	if _, ok := p.handles[pattern]; ok {
		return fmt.Errorf("Duplicate ,pattern:%s", pattern)
	}
	p.handles[pattern] = handlerFunc
	return nil
}

// RegMiddleware 注册middleware,先注册的middleware在外层
func (p *Config) RegMiddleware(middleware Middleware) error {
	if middleware == nil {
		return fmt.Errorf("invalid middleware")
	}
	p.middlewares = append(p.middlewares, middleware)
	return nil
}

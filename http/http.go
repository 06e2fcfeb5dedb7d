package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	c "github.com/d0ngw/hitcounter/common"
	"github.com/gorilla/handlers"
	"golang.org/x/net/netutil"
)

const shutdownTimeout = 30 * time.Second

var corsMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

// Accept接受连接
func (ln tcpKeepAliveListener) Accept() (c net.Conn, err error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err = tc.SetKeepAlive(true); err != nil {
		return
	}
	if err = tc.SetKeepAlivePeriod(3 * time.Minute); err != nil {
		return
	}
	return tc, nil
}

// GraceableHandler 安全地关闭的处理器
type GraceableHandler struct {
	handler   http.Handler
	waitGroup *sync.WaitGroup
}

func (p *GraceableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.waitGroup.Add(1)
	defer p.waitGroup.Done()

	p.handler.ServeHTTP(w, r)
}

// Service Http服务
type Service struct {
	c.BaseService
	Conf         *Config
	listener     net.Listener
	graceHandler *GraceableHandler
	server       *http.Server
	lock         sync.Mutex
}

// Init 初始化Http服务,注册所有的路由,未匹配的请求由NotFound处理
func (p *Service) Init() (err error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.Conf == nil {
		return fmt.Errorf("no http config")
	}
	if p.Conf.Addr == "" {
		p.Conf.Addr = ":http"
	}

	serveMux := http.NewServeMux()
	defer func() {
		// ServeMux遇到冲突的模式时会panic
		if rec := recover(); rec != nil {
			err = fmt.Errorf("register handler fail:%v", rec)
		}
	}()

	_, hasRoot := p.Conf.handles["/"]
	for pattern, handler := range p.Conf.handles {
		serveMux.Handle(pattern, chainMiddlewares(handler, p.Conf.middlewares))
	}
	if !hasRoot {
		serveMux.Handle("/", chainMiddlewares(NotFound, p.Conf.middlewares))
	}

	var handler http.Handler = serveMux
	if len(p.Conf.CORSOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(p.Conf.CORSOrigins),
			handlers.AllowedMethods(corsMethods),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
			handlers.ExposedHeaders([]string{"Location"}),
		)(handler)
	}
	if p.Conf.AccessLog {
		handler = handlers.CombinedLoggingHandler(&c.LogWriter{Level: c.Info}, handler)
	}

	graceHandler := &GraceableHandler{
		handler:   handler,
		waitGroup: &sync.WaitGroup{}}

	p.server = &http.Server{
		Addr:         p.Conf.Addr,
		ReadTimeout:  p.Conf.ReadTimeout * time.Second,
		WriteTimeout: p.Conf.WriteTimeout * time.Second,
		Handler:      graceHandler}
	p.graceHandler = graceHandler
	return nil
}

// Handler 取得初始化后的http.Handler,未初始化时返回nil
func (p *Service) Handler() http.Handler {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.graceHandler == nil {
		return nil
	}
	return p.graceHandler
}

// ListenAddr 实际监听的地址,未启动时返回空
func (p *Service) ListenAddr() string {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.listener == nil {
		return ""
	}
	return p.listener.Addr().String()
}

// Start 启动Http服务,开始端口监听和服务处理
func (p *Service) Start() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server == nil {
		c.Errorf("http service is not inited")
		return false
	}

	c.Infof("Listen at %s", p.Conf.Addr)
	ln, err := net.Listen("tcp", p.Conf.Addr)
	if err != nil {
		c.Errorf("Listen at %s fail,error:%v", p.Conf.Addr, err)
		return false
	}

	tcpListener := tcpKeepAliveListener{ln.(*net.TCPListener)}
	if p.Conf.MaxConns > 0 {
		p.listener = netutil.LimitListener(tcpListener, p.Conf.MaxConns)
	} else {
		p.listener = tcpListener
	}

	p.graceHandler.waitGroup.Add(1)

	server, listener, waitGroup := p.server, p.listener, p.graceHandler.waitGroup
	go func() {
		defer waitGroup.Done()
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.Errorf("server.Serve return with %v", err)
		}
	}()
	return true
}

// Stop 停止Http服务,关闭端口监听,等待正在处理的请求完成
func (p *Service) Stop() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server != nil {
		// Shutdown关闭监听和空闲连接,返回时不会再有新的请求进入graceHandler
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := p.server.Shutdown(ctx); err != nil {
			c.Errorf("Shutdown http server error:%v", err)
			p.server.Close()
		}
	}

	//等待所有的服务
	c.Infof("Waiting shutdown")
	if p.graceHandler != nil {
		p.graceHandler.waitGroup.Wait()
	}
	c.Infof("Finish shutdown")

	p.listener = nil
	p.graceHandler = nil
	p.server = nil
	return true
}

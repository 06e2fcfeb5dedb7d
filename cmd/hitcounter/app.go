package main

import (
	"net/http"
	"time"

	"github.com/d0ngw/hitcounter/counter"
	h "github.com/d0ngw/hitcounter/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App 组装后的服务
type App struct {
	Store    *counter.MemoryStore
	Registry *prometheus.Registry
	HTTP     *h.Service
}

// NewApp 使用conf组装计数服务
func NewApp(conf *Config) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	store := counter.NewMemoryStore(counter.NewMetrics(reg))

	httpConf := h.NewConfig(conf.HTTP.Addr())
	httpConf.ReadTimeout = time.Duration(conf.HTTP.ReadTimeout)
	httpConf.WriteTimeout = time.Duration(conf.HTTP.WriteTimeout)
	httpConf.MaxConns = conf.HTTP.MaxConns
	httpConf.CORSOrigins = conf.HTTP.CORSOrigins
	httpConf.AccessLog = *conf.HTTP.AccessLog

	if err := httpConf.RegMiddleware(h.RecoverMiddleware); err != nil {
		return nil, err
	}
	if err := httpConf.RegMiddleware(h.SecurityHeadersMiddleware); err != nil {
		return nil, err
	}
	if err := httpConf.RegController(counter.NewController(store)); err != nil {
		return nil, err
	}
	if *conf.HTTP.Metrics {
		metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		if err := httpConf.RegHandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
			metricsHandler.ServeHTTP(w, r)
		}); err != nil {
			return nil, err
		}
	}

	return &App{
		Store:    store,
		Registry: reg,
		HTTP:     &h.Service{Conf: httpConf},
	}, nil
}

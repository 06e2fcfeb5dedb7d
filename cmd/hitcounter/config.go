package main

import (
	"fmt"

	c "github.com/d0ngw/hitcounter/common"
)

// 环境变量
const (
	envPort     = "PORT"
	envLogLevel = "LOG_LEVEL"

	defaultPort     = 8000
	defaultLogLevel = "info"
	defaultHost     = "0.0.0.0"
)

// HTTPConfig http服务配置
type HTTPConfig struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	ReadTimeout  int      `yaml:"read_timeout"`  //秒
	WriteTimeout int      `yaml:"write_timeout"` //秒
	MaxConns     int      `yaml:"max_conns"`
	CORSOrigins  []string `yaml:"cors_origins"`
	AccessLog    *bool    `yaml:"access_log"`
	Metrics      *bool    `yaml:"metrics"`
}

// Parse 检查配置并设置默认值
func (p *HTTPConfig) Parse() error {
	if p.Host == "" {
		p.Host = defaultHost
	}
	if p.Port == 0 {
		p.Port = defaultPort
	}
	if p.Port < 0 || p.Port > 65535 {
		return fmt.Errorf("invalid port %d", p.Port)
	}
	if len(p.CORSOrigins) == 0 {
		p.CORSOrigins = []string{"*"}
	}
	if p.AccessLog == nil {
		p.AccessLog = boolPtr(true)
	}
	if p.Metrics == nil {
		p.Metrics = boolPtr(true)
	}
	return nil
}

// Addr 监听地址
func (p *HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Config 计数服务的配置
type Config struct {
	c.AppConfig `yaml:",inline"`
	HTTP        *HTTPConfig `yaml:"http"`
}

// Parse 解析配置
func (p *Config) Parse() error {
	return c.Parse(p)
}

// applyEnv 使用环境变量PORT和LOG_LEVEL覆盖配置
func (p *Config) applyEnv() {
	if p.HTTP == nil {
		p.HTTP = &HTTPConfig{}
	}
	port := p.HTTP.Port
	if port == 0 {
		port = defaultPort
	}
	p.HTTP.Port = c.GetEnvInt(envPort, port)

	logConf := p.GetLogConfig()
	level := logConf.Level
	if level == "" {
		level = defaultLogLevel
	}
	logConf.Level = c.GetEnv(envLogLevel, level)
}

// LoadConfig 从confPath加载配置,confPath为空时只使用默认值和环境变量
func LoadConfig(confPath string) (*Config, error) {
	conf := &Config{}
	if confPath != "" {
		if err := c.LoadYAMLFromPath(confPath, conf); err != nil {
			return nil, fmt.Errorf("load config %s fail,err:%w", confPath, err)
		}
	}
	conf.applyEnv()
	if err := conf.Parse(); err != nil {
		return nil, err
	}
	return conf, nil
}

func boolPtr(b bool) *bool {
	return &b
}

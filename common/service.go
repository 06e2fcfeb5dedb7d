package common

import (
	"fmt"
	"sync"
)

// ServiceState 服务的生命周期状态
type ServiceState uint32

// NEW -> INITED -> STARTING -> RUNNING -> STOPPING -> TERMINATED,任一阶段失败进入FAILED
const (
	NEW ServiceState = iota
	INITED
	STARTING
	RUNNING
	STOPPING
	TERMINATED
	FAILED
)

func (p ServiceState) String() string {
	switch p {
	case NEW:
		return "NEW"
	case INITED:
		return "INITED"
	case STARTING:
		return "STARTING"
	case RUNNING:
		return "RUNNING"
	case STOPPING:
		return "STOPPING"
	case TERMINATED:
		return "TERMINATED"
	case FAILED:
		return "FAILED"
	}
	return fmt.Sprintf("ServiceState(%d)", uint32(p))
}

// IsValidServiceState 检查from到to的状态转移是否有效
func IsValidServiceState(from, to ServiceState) bool {
	switch {
	case from == TERMINATED || from == FAILED:
		return false
	case to == FAILED:
		return true
	case to == TERMINATED:
		return true
	}
	return to == from+1
}

// Service 可以被统一初始化,启动和停止的服务
type Service interface {
	Name() string
	// Init 初始化失败时返回原因
	Init() error
	Start() bool
	Stop() bool
	State() ServiceState

	setState(newState ServiceState) bool
}

// ServiceInit 初始化服务,已经初始化过的服务直接返回
func ServiceInit(service Service) bool {
	if service.State() == INITED {
		Infof("%s has been inited,skip", ServiceName(service))
		return true
	}
	if err := service.Init(); err != nil {
		Errorf("init %s fail,err:%v", ServiceName(service), err)
		service.setState(FAILED)
		return false
	}
	return service.setState(INITED)
}

// ServiceStart 启动服务
func ServiceStart(service Service) bool {
	return transfer(service, STARTING, RUNNING, service.Start, "start")
}

// ServiceStop 停止服务
func ServiceStop(service Service) bool {
	return transfer(service, STOPPING, TERMINATED, service.Stop, "stop")
}

func transfer(service Service, during, after ServiceState, action func() bool, actionName string) bool {
	if service.setState(during) && action() && service.setState(after) {
		return true
	}
	Errorf("%s %s fail", actionName, ServiceName(service))
	service.setState(FAILED)
	return false
}

// BaseService 提供Service的默认实现,使用者嵌入后覆盖需要的方法
type BaseService struct {
	SName     string
	state     ServiceState
	stateLock sync.RWMutex
}

// Name impls Service.Name
func (p *BaseService) Name() string {
	return p.SName
}

// Init impls Service.Init
func (p *BaseService) Init() error {
	return nil
}

// Start impls Service.Start
func (p *BaseService) Start() bool {
	return true
}

// Stop impls Service.Stop
func (p *BaseService) Stop() bool {
	return true
}

// State impls Service.State
func (p *BaseService) State() ServiceState {
	p.stateLock.RLock()
	defer p.stateLock.RUnlock()
	return p.state
}

func (p *BaseService) setState(newState ServiceState) bool {
	p.stateLock.Lock()
	defer p.stateLock.Unlock()
	if !IsValidServiceState(p.state, newState) {
		Criticalf("Invalid state transfer %s->%s,%s", p.state, newState, p.Name())
		return false
	}
	p.state = newState
	return true
}

// ServiceName 服务的类型加上名称,用于日志
func ServiceName(service Service) string {
	if name := service.Name(); name != "" {
		return fmt.Sprintf("%T#%s", service, name)
	}
	return fmt.Sprintf("%T", service)
}

// Services 按注册顺序初始化和启动的一组服务,停止时按相反的顺序
type Services struct {
	services []Service
}

// NewServices 构建服务集合
func NewServices(services ...Service) *Services {
	return &Services{services: append([]Service(nil), services...)}
}

// Init 依次初始化,遇到失败立即返回false
func (p *Services) Init() bool {
	for _, service := range p.services {
		if !ServiceInit(service) {
			return false
		}
	}
	return true
}

// Start 依次启动,遇到失败立即返回false
func (p *Services) Start() bool {
	for _, service := range p.services {
		if !ServiceStart(service) {
			return false
		}
	}
	return true
}

// Stop 逆序停止处于RUNNING状态的服务
func (p *Services) Stop() bool {
	ok := true
	for i := len(p.services) - 1; i >= 0; i-- {
		service := p.services[i]
		if service.State() != RUNNING {
			continue
		}
		if !ServiceStop(service) {
			ok = false
		}
	}
	return ok
}

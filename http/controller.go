package http

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"
)

// Controller 接口定义http处理器
type Controller interface {
	// GetName 控制器的名称
	GetName() string
	// GetPath 路径前缀,没有配置PatternMethods时,处理方法注册在该路径下
	GetPath() string
	// GetPatternMethods 路由模式到处理方法名的映射,模式使用http.ServeMux的语法,例如"GET /counters/{name}"
	GetPatternMethods() map[string]string
}

// HandlerFunc 可以返回错误的处理函数,返回的错误由RenderError输出
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP impls http.Handler
func (f HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := f(w, r); err != nil {
		RenderError(w, r, err)
	}
}

// BaseController 表示一个控制器
type BaseController struct {
	Name           string            // Controller的名称
	Path           string            // Controller的路径
	PatternMethods map[string]string // 路由模式 -> 方法名
}

// GetName impls Controller.GetName
func (p *BaseController) GetName() string {
	return p.Name
}

// GetPath impls Controller.GetPath
func (p *BaseController) GetPath() string {
	return p.Path
}

// GetPatternMethods impls Controller.GetPatternMethods
func (p *BaseController) GetPatternMethods() map[string]string {
	return p.PatternMethods
}

var (
	stdHandlerType = reflect.TypeOf(http.HandlerFunc(nil))
	errHandlerType = reflect.TypeOf(HandlerFunc(nil))
)

// asHandlerFunc 将方法值转为http.HandlerFunc,方法的签名必须是http.HandlerFunc或者HandlerFunc
func asHandlerFunc(methodVal reflect.Value) (http.HandlerFunc, bool) {
	methodType := methodVal.Type()
	if methodType.ConvertibleTo(stdHandlerType) {
		return methodVal.Convert(stdHandlerType).Interface().(http.HandlerFunc), true
	}
	if methodType.ConvertibleTo(errHandlerType) {
		return methodVal.Convert(errHandlerType).Interface().(HandlerFunc).ServeHTTP, true
	}
	return nil, false
}

// ReflectHandlers 取得controller的所有处理方法,key为路由模式.
// 配置了PatternMethods时按配置查找方法,否则查找所有可导出的处理方法,并将驼峰命名改为下划线分隔的路径,
// 例如Index -> <path>/index,GetUser -> <path>/get_user
func ReflectHandlers(controller Controller) (handlers map[string]http.HandlerFunc, err error) {
	val := reflect.ValueOf(controller)
	if !val.IsValid() || val.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("controller must be a valid pointer")
	}

	handlers = map[string]http.HandlerFunc{}
	if patternMethods := controller.GetPatternMethods(); len(patternMethods) > 0 {
		for pattern, methodName := range patternMethods {
			methodVal := val.MethodByName(methodName)
			if !methodVal.IsValid() {
				return nil, fmt.Errorf("can't find method %s for pattern %s in %T", methodName, pattern, controller)
			}
			h, ok := asHandlerFunc(methodVal)
			if !ok {
				return nil, fmt.Errorf("method %T.%s is not a handler", controller, methodName)
			}
			handlers[pattern] = h
		}
		return handlers, nil
	}

	path := controller.GetPath()
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	controllerType := val.Type()
	for i := 0; i < val.NumMethod(); i++ {
		if h, ok := asHandlerFunc(val.Method(i)); ok {
			handlers[path+ToUnderlineName(controllerType.Method(i).Name)] = h
		}
	}
	return handlers, nil
}

// ToUnderlineName 将驼峰命名改为小写的下划线命名
func ToUnderlineName(camelName string) string {
	nameRune := []rune(camelName)
	normalizeName := make([]rune, 0, len(nameRune))

	for ni := 0; ni < len(nameRune); ni++ {
		if ni != 0 && unicode.IsUpper(nameRune[ni]) && unicode.IsLower(nameRune[ni-1]) {
			normalizeName = append(normalizeName, '_')
		}

		r := nameRune[ni]
		if unicode.IsUpper(nameRune[ni]) {
			r = unicode.ToLower(r)
		}
		normalizeName = append(normalizeName, r)
	}
	return string(normalizeName)
}

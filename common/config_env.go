package common

import (
	"os"
	"strconv"
	"strings"
)

// GetEnv 取得环境变量name的值,为空时返回def
func GetEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// GetEnvInt 取得整数类型的环境变量,为空或者无法解析时返回def
func GetEnvInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		Warnf("invalid int env %s=%q,use %d", name, v, def)
		return def
	}
	return i
}

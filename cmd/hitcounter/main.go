package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	c "github.com/d0ngw/hitcounter/common"
	"github.com/joho/godotenv"
)

const bannerWidth = 70

// bannerLine 在title左侧补齐到half个字符,再在右侧补齐到width个字符
func bannerLine(title string, width int) string {
	half := width / 2
	if n := half - len(title); n > 0 {
		title = strings.Repeat("*", n) + title
	}
	if n := width - len(title); n > 0 {
		title += strings.Repeat("*", n)
	}
	return title
}

func main() {
	confPath := flag.String("conf", "", "the yaml config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env fail,err:%v\n", err)
		os.Exit(1)
	}

	conf, err := LoadConfig(*confPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer c.SyncLogger()

	app, err := NewApp(conf)
	if err != nil {
		c.Criticalf("create app fail,err:%v", err)
		c.SyncLogger()
		os.Exit(1)
	}

	services := c.NewServices(app.HTTP)
	if !services.Init() || !services.Start() {
		c.Criticalf("start service fail")
		c.SyncLogger()
		os.Exit(1)
	}

	c.Infof("%s", strings.Repeat("*", bannerWidth))
	c.Infof("%s", bannerLine("  S E R V I C E   R U N N I N G  ", bannerWidth))
	c.Infof("%s", strings.Repeat("*", bannerWidth))
	c.Infof("Server running on http://%s", conf.HTTP.Addr())

	hook := c.NewShutdownhook()
	hook.AddHook(func() {
		services.Stop()
	})
	hook.WaitShutdown()
}

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/logbase-dev/atsignal/internal/console/bootstrap"
	"github.com/logbase-dev/atsignal/pkg/log"
)

var confDir string

func init() {
	flag.StringVar(&confDir, "conf", "conf.d", "conf dir path, e.g. -conf ./conf.d")
}

func main() {
	flag.Parse()

	_, cleanup, err := bootstrap.Run(confDir)
	if err != nil {
		panic(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("received signal %s, shutting down", sig)

	cleanup()
}

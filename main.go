package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Opafanls/hyflv/server"
	"github.com/Opafanls/hyflv/server/core/config"
	"github.com/Opafanls/hyflv/server/log"
)

func main() {
	path := flag.String("c", "", "yaml config file")
	flag.Parse()

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.LoadFile(*path); err != nil {
			fmt.Fprintf(os.Stderr, "load config: %+v\n", err)
			os.Exit(1)
		}
	}
	hy := server.NewHyflvServer(cfg)
	if err := hy.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init: %+v\n", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hy.Stop(ctx); err != nil {
			log.Errorf(ctx, "stop: %+v", err)
		}
	}()
	hy.Start()
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/S0me0neR0man/headstash/internal/config"
	"github.com/S0me0neR0man/headstash/internal/server"
	"github.com/S0me0neR0man/headstash/internal/stashdb"
)

func main() {
	conf, err := config.NewConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	var logger *zap.Logger
	if conf.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	stash, err := stashdb.NewStash(conf, logger)
	if err != nil {
		logger.Fatal("stashdb.NewStash", zap.Error(err))
	}
	s := server.NewStashServer(stash, conf, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := s.Start(ctx); err != nil {
		logger.Error("server.Start", zap.Error(err))
		stop()
	}

	s.Wait()
}

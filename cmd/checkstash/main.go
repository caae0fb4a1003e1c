package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	address := flag.String("ADDRESS", "127.0.0.1:3200", "headstash address")
	tok := flag.String("TOKEN", "", "bearer token")
	duration := flag.Duration("DURATION", 0, "stop after, 0 - until a signal")
	debug := flag.Bool("DEBUG", false, "development logging")
	flag.Parse()

	var (
		logger *zap.Logger
		err    error
	)
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	c, err := NewChecker(*address, *tok, logger)
	if err != nil {
		logger.Fatal("NewChecker", zap.Error(err))
	}

	start := time.Now()
	c.Go(ctx)
	if err = c.Wait(); err != nil {
		logger.Error("checker.Wait", zap.Error(err))
	}
	logger.Info("checkstash done", zap.Duration("elapsed", time.Since(start)))
}

// Command contactctl sends a message through the portfolio contact form from a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portfolio-backend/config"
	"portfolio-backend/internal/contactform"
	"portfolio-backend/internal/gateway"
	"portfolio-backend/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}
	logger.Init(cfg.LogLevel)

	gw, err := gateway.New(cfg.SubmissionConfig(), nil)
	if err != nil {
		logger.Log.Error("No submission strategy available", "error", err)
		return 1
	}
	logger.Log.Debug("Submission gateway ready", "strategy", gw.Strategy())

	form := contactform.New(gw,
		contactform.WithNotificationTTL(cfg.NotificationTTL),
		contactform.WithNotifyFunc(printNotification(os.Stdout)),
	)
	defer form.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := &session{form: form, prompt: surveyPrompter{}, out: os.Stdout}
	err = s.run(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrAborted), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "aborted")
		return 130
	case errors.Is(err, ErrNotSent):
		return 1
	default:
		logger.Log.Error("contactctl failed", "error", err)
		return 1
	}
}

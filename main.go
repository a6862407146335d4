package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evboard/src-server/metric"
	"evboard/src-server/notify"
	"evboard/src-server/route"
	"evboard/src-server/scheduler"
	"evboard/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logLevel = new(slog.LevelVar)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	logLevel.Set(slog.LevelDebug)
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

// newNotifier fans registrations out to every configured chat target.
func newNotifier(cfg *utils.Config) notify.Notifier {
	var targets notify.Multi
	if webhookURL := cfg.GetDiscordWebhookURL(); webhookURL != "" {
		discord, err := notify.NewDiscord(webhookURL)
		if err != nil {
			slog.Error("can't set up discord notifications", "error", err)
		} else {
			targets = append(targets, discord)
			slog.Info("discord notifications enabled")
		}
	}
	if token := cfg.GetTelegramBotToken(); token != "" {
		telegram, err := notify.NewTelegram(token, cfg.GetTelegramChatID())
		if err != nil {
			slog.Error("can't set up telegram notifications", "error", err)
		} else {
			targets = append(targets, telegram)
			slog.Info("telegram notifications enabled")
		}
	}
	if len(targets) == 0 {
		return notify.Nop
	}
	return targets
}

func main() {
	as := utils.NewAppState()
	logLevel.Set(as.Config.GetLogLevel())

	registry := route.NewPageRegistry(as, newNotifier(as.Config), metric.NewObserver(prometheus.DefaultRegisterer))

	metric.Init(as)
	go scheduler.PageJanitor(as, registry)

	muxer := http.NewServeMux()
	muxer.Handle("GET /metrics", promhttp.Handler())
	route.Ping(muxer, as)
	route.Page(muxer, as, registry)

	server := &http.Server{
		Addr:              ":" + as.Config.GetPort(),
		Handler:           route.LogRequests(muxer),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan

	slog.Info("Gracefully shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("can't shut down HTTP server cleanly", "error", err)
	}
	as.GracefulShutdown()
}

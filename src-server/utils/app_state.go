package utils

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"evboard/src-server/model"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
)

type AppState struct {
	Config      *Config
	RawDB       *sql.DB
	BunDB       *bun.DB
	When        *when.Parser
	MetricChans *Metric
	startTime   time.Time

	// SIGINT/SIGTERM land here; a failing HTTP server pushes into it too
	AppCloseSignalChan chan os.Signal

	shutdownMu            sync.Mutex
	gracefulShutdownChans []chan struct{}
}

func NewAppState() *AppState {
	as, err := NewAppStateWithConfig(context.Background(), NewConfig())
	if err != nil {
		slog.Error("can't initialize app state", "error", err)
		os.Exit(1)
	}
	return as
}

func NewAppStateWithConfig(ctx context.Context, cfg *Config) (*AppState, error) {
	as := &AppState{
		Config:             cfg,
		When:               NewWhenParser(),
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
		startTime:          time.Now(),
	}

	// events never outlive the process
	var err error
	as.RawDB, as.BunDB, err = model.OpenInMemory(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("NewAppStateWithConfig: %w", err)
	}

	return as, nil
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startTime).Truncate(time.Second)
}

// English + common date rules, e.g. "next friday", "tomorrow", "15/11/2024"
func NewWhenParser() *when.Parser {
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
	return parser
}

// The returned channel is closed by GracefulShutdown.
func (as *AppState) CreateGracefulShutdownChan() <-chan struct{} {
	as.shutdownMu.Lock()
	defer as.shutdownMu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, ch)
	return ch
}

func (as *AppState) GracefulShutdown() {
	as.shutdownMu.Lock()
	for _, ch := range as.gracefulShutdownChans {
		close(ch)
	}
	as.gracefulShutdownChans = nil
	as.shutdownMu.Unlock()

	if err := as.BunDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}

package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quench-app/quench/internal/api"
	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/app/journal"
	"github.com/quench-app/quench/internal/app/notify"
	"github.com/quench-app/quench/internal/health"
	_ "github.com/quench-app/quench/internal/infra/metrics" // Register Prometheus metrics
	"github.com/quench-app/quench/internal/infra/sqlite"
)

// Daemon is the core Quench runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Engine  *gamify.Orchestrator
	Journal *journal.Service
	Notify  *notify.Service
	Server  *api.Server
	Health  *health.Checker
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Storage.Dir
	if dataDir == "" {
		dataDir = quenchHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.SeedBadges(gamify.DefaultCatalog()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed badge catalog: %w", err)
	}

	engine := gamify.NewOrchestrator(db, db, db, db)
	jrnl := journal.NewService(db, engine)
	ntfy := notify.NewService(db)

	srv := api.NewServer(jrnl, engine, ntfy, db)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	checker := health.NewChecker(db, dataDir)
	srv.SetHealth(checker)

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Engine:  engine,
		Journal: jrnl,
		Notify:  ntfy,
		Server:  srv,
		Health:  checker,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Quench serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close shuts the daemon down outside of Serve.
func (d *Daemon) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	return d.DB.Close()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/rr-authdns/internal/dns/common/clock"
	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/config"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/gateways/transport"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
	"github.com/haukened/rr-authdns/internal/dns/repos/lookupcache"
	"github.com/haukened/rr-authdns/internal/dns/repos/namefilter"
	"github.com/haukened/rr-authdns/internal/dns/repos/snapshot"
	"github.com/haukened/rr-authdns/internal/dns/repos/zone"
	"github.com/haukened/rr-authdns/internal/dns/repos/zonestore"
	"github.com/haukened/rr-authdns/internal/dns/services/responder"
)

const (
	version = "0.1.0-dev"
	appName = "rr-authdnsd"
)

// Application holds all the components of the responder.
type Application struct {
	config    *config.AppConfig
	transport transport.ServerTransport
	responder *responder.Responder
	store     *zonestore.Store
	snapshot  *snapshot.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info(map[string]any{
		"app":         appName,
		"version":     version,
		"env":         cfg.Env,
		"log_level":   cfg.LogLevel,
		"listen":      cfg.Listen,
		"zone_dir":    cfg.ZoneDir,
		"default_ttl": cfg.DefaultTTL,
		"no_match":    cfg.NoMatch,
		"cache_size":  cfg.CacheSize,
		"snapshot_db": cfg.SnapshotDB,
	}, "Starting authoritative DNS responder")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Failed to build application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Server failed")
	}

	log.Info(nil, "Responder stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	var snap *snapshot.Store
	if cfg.SnapshotDB != "" {
		s, err := snapshot.Open(cfg.SnapshotDB, clock.RealClock{})
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot %s: %w", cfg.SnapshotDB, err)
		}
		snap = s
	}

	records, err := loadRecords(cfg, snap, log.Component("zone"))
	if err != nil {
		closeSnapshot(snap)
		return nil, err
	}

	cache, err := lookupcache.New(cfg.CacheSize)
	if err != nil {
		closeSnapshot(snap)
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}

	store := zonestore.New(records, zonestore.Options{
		Cache:   cache,
		Filters: namefilter.NewFactory(),
		Logger:  log.Component("zonestore"),
	})

	log.Info(map[string]any{
		"zone_dir": cfg.ZoneDir,
		"records":  store.Len(),
		"zones":    store.Zones(),
	}, "Zone store initialized")

	resp := responder.New(responder.Options{
		Store:          store,
		Logger:         log.Component("responder"),
		NXDomainOnMiss: cfg.NXDomainOnMiss(),
	})

	codec := wire.NewUDPCodec(log.Component("wire"))
	tr, err := transport.NewTransport(transport.TransportUDP, cfg.Listen, codec, log.Component("transport"))
	if err != nil {
		closeSnapshot(snap)
		return nil, err
	}

	return &Application{
		config:    cfg,
		transport: tr,
		responder: resp,
		store:     store,
		snapshot:  snap,
	}, nil
}

// loadRecords reads the zone directory. When the directory does not exist and a
// snapshot is configured, the snapshot is served instead. A successful load
// refreshes the snapshot.
func loadRecords(cfg *config.AppConfig, snap *snapshot.Store, logger log.Logger) ([]domain.Record, error) {
	records, err := zone.LoadZoneDirectory(cfg.ZoneDir, cfg.DefaultTTL, logger)
	if err != nil {
		if snap == nil || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load zone directory: %w", err)
		}
		meta := snap.Meta()
		logger.Warn(map[string]any{
			"zone_dir":         cfg.ZoneDir,
			"error":            err.Error(),
			"snapshot_version": meta.Version,
			"snapshot_updated": meta.UpdatedUnix,
		}, "Zone directory unavailable, serving snapshot")
		records, err = snap.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		return records, nil
	}

	if snap != nil {
		if err := snap.Save(records); err != nil {
			logger.Warn(map[string]any{"error": err.Error()}, "Failed to save zone snapshot")
		}
	}
	return records, nil
}

func closeSnapshot(s *snapshot.Store) {
	if s != nil {
		_ = s.Close()
	}
}

// Start begins serving in the background.
func (app *Application) Start(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.responder); err != nil {
		return fmt.Errorf("failed to start UDP transport: %w", err)
	}
	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "UDP",
	}, "DNS responder started")
	return nil
}

// Shutdown stops the transport and releases the snapshot database.
func (app *Application) Shutdown() error {
	err := app.transport.Stop()
	if err != nil {
		log.Warn(map[string]any{"error": err.Error()}, "Error during transport shutdown")
	}

	st := app.store.Stats()
	log.Info(map[string]any{
		"records":      st.Records,
		"cache_hits":   st.CacheHits,
		"cache_misses": st.CacheMisses,
		"filter_skips": st.FilterRejects,
	}, "Zone store statistics")

	if app.snapshot != nil {
		if cerr := app.snapshot.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Run starts the responder and blocks until ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.Start(ctx); err != nil {
		closeSnapshot(app.snapshot)
		return err
	}

	<-ctx.Done()
	log.Info(nil, "Shutdown initiated")

	return app.Shutdown()
}

var _ transport.RequestHandler = (*responder.Responder)(nil)

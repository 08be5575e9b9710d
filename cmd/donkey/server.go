package main

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/donkey/cmd/donkey/shared"
	"github.com/lox/donkey/internal/randutil"
	"github.com/lox/donkey/internal/room"
	"github.com/lox/donkey/internal/server"
)

// ServerCmd contains core server configuration
type ServerCmd struct {
	Addr   string `kong:"help='Server address (overrides config file)'"`
	Config string `kong:"default='donkey.hcl',help='Path to HCL config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for the server (optional)'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel, c.Debug)

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	registry := room.NewRegistry(logger, rng,
		room.WithRoomTTL(cfg.RoomTTL()),
		room.WithSweepInterval(cfg.SweepInterval()),
	)

	srv := server.NewServer(addr, logger)
	srv.SetGameService(server.NewGameService(srv, registry, logger))

	logger.Info("Starting donkey server",
		"addr", addr,
		"room_ttl", cfg.RoomTTL(),
		"sweep_interval", cfg.SweepInterval())

	ctx := shared.SetupSignalHandler(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return registry.Run(ctx)
	})
	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Stop()
	})

	return g.Wait()
}

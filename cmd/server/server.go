package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/oakmund/grindstone/internal/combat"
	"github.com/oakmund/grindstone/internal/config"
	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/itemization"
	"github.com/oakmund/grindstone/internal/orchestrators/game"
	"github.com/oakmund/grindstone/internal/pkg/idgen"
	"github.com/oakmund/grindstone/internal/pkg/rng"
	"github.com/oakmund/grindstone/internal/progression"
	"github.com/oakmund/grindstone/internal/redis"
	"github.com/oakmund/grindstone/internal/repositories/gamestate"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the game loop and gRPC health surface",
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	if _, err := svc.LoadGame(ctx, &game.LoadGameInput{}); err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}

	go runGameLoop(ctx, svc, cfg)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("grindstone.Game", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildService wires the full component graph from the config
func buildService(cfg *config.Server) (game.Service, error) {
	client, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	repo, err := gamestate.NewRedisRepository(&gamestate.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	newSource := func() rng.Source {
		if cfg.RNGSeed != 0 {
			return rng.NewSeeded(cfg.RNGSeed)
		}
		return rng.New()
	}

	itemSrc := newSource()
	rarityTable, err := itemization.NewRarityTable(&itemization.RarityTableConfig{Source: itemSrc})
	if err != nil {
		return nil, fmt.Errorf("failed to create rarity table: %w", err)
	}
	affixRoller, err := itemization.NewAffixRoller(&itemization.AffixRollerConfig{Source: itemSrc})
	if err != nil {
		return nil, fmt.Errorf("failed to create affix roller: %w", err)
	}
	equipmentFactory, err := itemization.NewEquipmentFactory(&itemization.EquipmentFactoryConfig{
		RarityTable: rarityTable,
		AffixRoller: affixRoller,
		Source:      itemSrc,
		IDGenerator: idgen.NewUUID("item"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment factory: %w", err)
	}

	stoneTable, err := itemization.NewRarityTable(&itemization.RarityTableConfig{
		Source:  itemSrc,
		Weights: content.StoneRarityWeights,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stone rarity table: %w", err)
	}
	stoneFactory, err := itemization.NewStoneFactory(&itemization.StoneFactoryConfig{
		RarityTable: stoneTable,
		AffixRoller: affixRoller,
		Source:      itemSrc,
		IDGenerator: idgen.NewUUID("stone"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stone factory: %w", err)
	}

	spawner, err := combat.NewSpawner(&combat.SpawnerConfig{
		IDGenerator: idgen.NewSequential("enemy"),
		Source:      newSource(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create spawner: %w", err)
	}
	resolver, err := combat.NewResolver(&combat.ResolverConfig{Source: newSource()})
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	ledger, err := progression.NewLedger(&progression.LedgerConfig{
		EquipmentFactory: equipmentFactory,
		StoneFactory:     stoneFactory,
		Source:           newSource(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}

	svc, err := game.NewOrchestrator(&game.Config{
		Spawner:    spawner,
		Resolver:   resolver,
		Ledger:     ledger,
		Repo:       repo,
		SaveSlot:   cfg.SaveSlot,
		MaxEnemies: cfg.MaxEnemies,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}
	return svc, nil
}

// runGameLoop drives spawn and combat ticks until the context ends. The
// combat cadence is re-derived after every tick so attack-speed gear takes
// effect immediately.
func runGameLoop(ctx context.Context, svc game.Service, cfg *config.Server) {
	spawnTicker := time.NewTicker(cfg.SpawnInterval)
	defer spawnTicker.Stop()

	combatTimer := time.NewTimer(cfg.CombatInterval)
	defer combatTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-spawnTicker.C:
			if _, err := svc.SpawnTick(ctx, &game.SpawnTickInput{}); err != nil {
				slog.Error("spawn tick failed", "error", err)
			}

		case <-combatTimer.C:
			if _, err := svc.CombatTick(ctx, &game.CombatTickInput{}); err != nil {
				slog.Error("combat tick failed", "error", err)
			}

			interval := cfg.CombatInterval
			if state, err := svc.GetState(ctx, &game.GetStateInput{}); err == nil {
				interval = game.CombatInterval(cfg.CombatInterval, state.Player.Calculated.AttackSpeed)
			}
			combatTimer.Reset(interval)
		}
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}

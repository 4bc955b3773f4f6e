package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetsim/internal/pkg/config"
	"github.com/piresc/fleetsim/internal/pkg/database"
	"github.com/piresc/fleetsim/internal/pkg/health"
	httpclient "github.com/piresc/fleetsim/internal/pkg/http"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/middleware"
	"github.com/piresc/fleetsim/internal/pkg/models"
	natspkg "github.com/piresc/fleetsim/internal/pkg/nats"
	nsqpkg "github.com/piresc/fleetsim/internal/pkg/nsq"
	"github.com/piresc/fleetsim/internal/pkg/retry"
	"github.com/piresc/fleetsim/internal/pkg/server"
	"github.com/piresc/fleetsim/internal/utils"
	demandrepo "github.com/piresc/fleetsim/services/demand/repository"
	dispatchuc "github.com/piresc/fleetsim/services/dispatch/usecase"
	"github.com/piresc/fleetsim/services/fleet"
	"github.com/piresc/fleetsim/services/fleet/entity"
	fleetgw "github.com/piresc/fleetsim/services/fleet/gateway"
	"github.com/piresc/fleetsim/services/fleet/handler"
	fleetrepo "github.com/piresc/fleetsim/services/fleet/repository"
	fleetuc "github.com/piresc/fleetsim/services/fleet/usecase"
	matchuc "github.com/piresc/fleetsim/services/match/usecase"
	"github.com/piresc/fleetsim/services/routing"
	routinggw "github.com/piresc/fleetsim/services/routing/gateway"
	routingrepo "github.com/piresc/fleetsim/services/routing/repository"
	"golang.org/x/sync/errgroup"
)

func main() {
	appName := "fleet-simulator"
	configPath := "config/simulator.env"
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	if err := run(configs, appName, zapLogger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Simulation failed", logger.Err(err))
	}
}

func run(configs *models.Config, appName string, zapLogger *logger.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	zapLogger = zapLogger.With(logger.String("run_id", runID))
	mesh := utils.NewMesh(configs.Mesh)
	checkers := make(map[string]health.Checker)

	// Initialize Redis client for the shared route store
	var redisClient *database.RedisClient
	if configs.Redis.Enabled {
		client, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer client.Close()
		redisClient = client
		checkers["redis"] = health.CheckerFunc(func(ctx context.Context) error {
			return client.Client.Ping(ctx).Err()
		})
	}

	cache, err := routingrepo.NewRouteCache(configs.Routing.CacheSize, redisClient, zapLogger)
	if err != nil {
		return err
	}

	engine, err := newEngine(configs, mesh, cache, zapLogger)
	if err != nil {
		return err
	}

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer postgresClient.Close()
	checkers["postgres"] = health.CheckerFunc(func(ctx context.Context) error {
		return postgresClient.GetDB().PingContext(ctx)
	})

	demand, err := demandrepo.NewBacklogRepository(configs, postgresClient.GetDB(), zapLogger)
	if err != nil {
		return err
	}

	sink, closeSink, err := newSink(configs, runID, zapLogger)
	if err != nil {
		return err
	}
	defer closeSink()

	matcher, err := newMatcher(configs, mesh, engine, zapLogger)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(configs.Sim.Seed))
	dispatcher, err := newDispatcher(configs, mesh, rng, zapLogger)
	if err != nil {
		return err
	}

	// Initialize simulation
	env := &entity.Env{Sink: sink}
	vehicles := fleetrepo.NewVehicleRepository(env)
	customers := fleetrepo.NewCustomerRepository(env, zapLogger)
	sim := fleetuc.NewSimulator(configs.Sim, env, vehicles, customers, engine, demand, rng, zapLogger)
	if err := sim.PopulateVehicles(ctx, configs.Sim.NumVehicles, mesh); err != nil {
		return err
	}
	runner := fleetuc.NewRunner(sim, matcher, dispatcher, sink, zapLogger)

	// Initialize Echo server
	e := echo.New()
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	health.RegisterHealthEndpoints(e, appName, checkers)
	handler.NewHandler(runner).RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger,
		fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port),
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	g.Go(func() error {
		return srv.Run(serverCtx)
	})
	g.Go(func() error {
		defer stopServer()
		return runner.Run(gctx, configs.Sim.Steps)
	})
	return g.Wait()
}

func newEngine(configs *models.Config, mesh *utils.Mesh, cache *routingrepo.RouteCache, zapLogger *logger.ZapLogger) (routing.Engine, error) {
	switch configs.Routing.Engine {
	case "fast":
		assets, err := routingrepo.LoadAssets(configs.Routing.DataDir)
		if err != nil {
			return nil, err
		}
		return routingrepo.NewTensorEngine(mesh, assets, cache, configs.Routing, zapLogger)
	case "osrm":
		client := httpclient.NewClient(httpclient.Config{
			Name:    "osrm",
			Timeout: time.Duration(configs.Routing.HTTPTimeout) * time.Second,
			Retry:   retry.DefaultConfig(),
		}, zapLogger)
		requester := routinggw.NewRequester(client, configs.Routing.Threads)
		return routinggw.NewOSRMEngine(configs.Routing.OSRMURL, requester, cache, mesh, zapLogger), nil
	default:
		return nil, fmt.Errorf("unknown routing engine %q", configs.Routing.Engine)
	}
}

func newMatcher(configs *models.Config, mesh *utils.Mesh, engine routing.Engine, zapLogger *logger.ZapLogger) (fleet.MatchingPolicy, error) {
	switch configs.Match.Policy {
	case "greedy":
		return matchuc.NewGreedyMatchUC(configs.Match, mesh, engine, zapLogger), nil
	case "rough":
		return matchuc.NewRoughMatchUC(configs.Match), nil
	default:
		return nil, fmt.Errorf("unknown matching policy %q", configs.Match.Policy)
	}
}

func newDispatcher(configs *models.Config, mesh *utils.Mesh, rng *rand.Rand, zapLogger *logger.ZapLogger) (fleet.DispatchPolicy, error) {
	switch configs.Dispatch.Policy {
	case "random":
		return dispatchuc.NewRandomCruiseUC(configs.Dispatch, configs.Routing.MaxMove, mesh, rng, zapLogger), nil
	case "none":
		return dispatchuc.NewNopUC(), nil
	default:
		return nil, fmt.Errorf("unknown dispatch policy %q", configs.Dispatch.Policy)
	}
}

func newSink(configs *models.Config, runID string, zapLogger *logger.ZapLogger) (fleet.EventSink, func(), error) {
	var (
		sinks   fleetgw.MultiSink
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	for _, name := range strings.Split(configs.Events.Sink, ",") {
		switch strings.TrimSpace(name) {
		case "":
		case "log":
			sinks = append(sinks, fleetgw.NewLogSink(zapLogger))
		case "nats":
			natsClient, err := natspkg.NewClient(configs.NATS.URL)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
			}
			closers = append(closers, natsClient.Close)
			sinks = append(sinks, fleetgw.NewNATSSink(natsClient, runID, configs.Events.GeohashPrecision, zapLogger))
		case "nsq":
			producer, err := nsqpkg.NewProducer(configs.NSQ.Address)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to connect to NSQ: %w", err)
			}
			closers = append(closers, producer.Stop)
			sinks = append(sinks, fleetgw.NewNSQSink(producer, runID, configs.Events.GeohashPrecision, zapLogger))
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown event sink %q", name)
		}
	}

	if len(sinks) == 0 {
		return fleetgw.NopSink{}, closeAll, nil
	}
	return sinks, closeAll, nil
}

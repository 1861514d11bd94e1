package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/infinitybotlist/infernoplex/internal/api"
	"github.com/infinitybotlist/infernoplex/internal/config"
	"github.com/infinitybotlist/infernoplex/internal/discord"
	"github.com/infinitybotlist/infernoplex/internal/storage"
	"github.com/infinitybotlist/infernoplex/internal/storage/model"
	"github.com/infinitybotlist/infernoplex/internal/tasks"
)

type app struct {
	ctx    context.Context
	cancel context.CancelFunc

	logConf zap.Config
	logger  *zap.Logger

	config *config.Config

	storage *storage.Storage
	discord *discord.Discord
	api     *api.API
	tasks   *tasks.Supervisor
}

func newApp(ctx context.Context, lcf zap.Config, log *zap.Logger) (*app, error) {
	ctx, cancel := context.WithCancel(ctx)
	a := &app{ctx: ctx, cancel: cancel, logConf: lcf, logger: log}
	var err error

	log.Debug("Loading configuration.")
	a.config, err = config.Read()
	if err != nil {
		return nil, fmt.Errorf("couldn't load configuration: %w", err)
	}

	log.Debug("Successfully loaded configuration (also switching log level.)")
	lcf.Level.SetLevel(a.config.Logging.Level)

	log.Debug("Initializing Storage struct.")
	a.storage = storage.NewStorage(ctx, log)

	log.Debug("Initializing Discord struct.")
	a.discord, err = discord.NewDiscord(ctx, log, a.config.Discord.Auth, discord.NewConfig(
		a.config.Discord.AppID, a.config.Site.FrontendURL, a.config.CDN.MainScopePath,
	), a.storage)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize Discord struct: %w", err)
	}

	log.Debug("Initializing API struct.")
	a.api = api.NewAPI(ctx, log.Sugar(), a.storage, a.discord.Session(), api.NewConfig(a.config.Api.Port))

	log.Debug("Initializing task supervisor.")
	a.tasks = tasks.NewSupervisor(log.Sugar())
	a.tasks.Add(tasks.Task{
		Name:        "serversync",
		Description: "Synchronises server member counts with the database",
		Interval:    5 * time.Minute,
		Run:         a.discord.SyncServerStats,
	})
	a.tasks.Add(tasks.Task{
		Name:        "sessionsweep",
		Description: "Deletes expired API sessions",
		Interval:    time.Minute,
		Run: func(ctx context.Context) error {
			return model.ClearExpiredSessions(ctx, a.storage.Pool())
		},
	})

	return a, nil
}

func (a *app) Run() error {
	a.logger.Debug("Connecting to PostgreSQL storage.")
	if err := a.storage.Connect(a.config.Storage.PostgresDSN); err != nil {
		return fmt.Errorf("couldn't connect to storage: %s", err)
	}
	defer func() {
		a.logger.Debug("Closing PostgreSQL storage.")
		if err := a.storage.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close storage: %s.", err)
		}
		a.logger.Debug("Closed PostgreSQL storage.")
	}()
	a.logger.Debug("Successfully connected to PostgreSQL storage.")

	a.logger.Debug("Connecting to Discord API gateway.")
	if err := a.discord.Connect(); err != nil {
		return fmt.Errorf("couldn't connect to Discord: %s", err)
	}
	defer func() {
		a.logger.Debug("Closing connection with Discord API gateway.")
		if err := a.discord.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close Discord: %s.", err)
		}
		a.logger.Debug("Closed connection with Discord API gateway.")
	}()
	a.logger.Debug("Successfully connected to Discord API gateway.")

	a.logger.Debug("Starting API server.")
	a.api.Listen()
	defer func() {
		a.logger.Debug("Closing API server.")
		if err := a.api.Close(); err != nil {
			a.logger.Sugar().Errorf("Couldn't close API server: %s.", err)
		}
	}()

	a.logger.Debug("Starting background tasks.")
	a.tasks.Start(a.ctx)

	a.logger.Info("Launch complete. Send SIGINT to gracefully terminate.")
	<-a.ctx.Done()
	a.logger.Info("SIGINT received, terminating.")

	return a.ctx.Err()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	lcf := zap.NewDevelopmentConfig() // to later switch level without reallocation
	lcf.Level.SetLevel(zapcore.DebugLevel)
	lcf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lcf.DisableCaller = true
	log, _ := lcf.Build()

	log.Info("Initializing application.")
	a, err := newApp(ctx, lcf, log)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Couldn't initialize application: %s.", err)
		}

		return
	}

	log.Debug("Initialization tasks complete, continuing with launch.")
	if err := a.Run(); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Sugar().Fatalf("Application crashed: %s.", err)
		}
	}
}

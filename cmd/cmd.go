package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"event-media-backend/internal/config"
	"event-media-backend/internal/hasher"
	"event-media-backend/internal/repository"
	"event-media-backend/internal/repository/memory"
	"event-media-backend/internal/repository/mongo"
	"event-media-backend/internal/repository/postgres"
	"event-media-backend/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// Run executes the command line and exits non-zero on failure
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

// NewApp builds the CLI
func NewApp() *cli.App {
	return &cli.App{
		Name:  "event-media-backend",
		Usage: "events, media and social graph API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
				Usage:   "path to the YAML configuration file",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			provisionCommand(),
			integrityCommand(),
		},
		DefaultCommand: "serve",
	}
}

// localUploadsPath is where the server exposes locally stored files
const localUploadsPath = "/uploads"

// env is what every command needs once configuration is loaded
type env struct {
	cfg    *config.Config
	store  *repository.Store
	hasher *hasher.Hasher
}

// setup loads configuration, configures logging and opens the store.
// The returned func closes the store.
func setup(c *cli.Context) (*env, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg.Log.Level)

	store, err := openStore(c.Context, cfg)
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}

	return &env{
		cfg:    cfg,
		store:  store,
		hasher: hasher.New(cfg.Hasher.Cost, cfg.Hasher.MaxConcurrent),
	}, closeStore, nil
}

// openStore connects the backend selected by database.driver
func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Warn().Msg("Using in-memory store, data is lost on exit")
		return memory.New(), nil
	case "mongo":
		store, err := mongo.New(ctx, cfg.Database.MongoURI, cfg.Database.DBName)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		log.Info().Str("database", cfg.Database.DBName).Msg("MongoDB connection established")
		return store, nil
	default:
		store, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info().Msg("Database connection established")
		return store, nil
	}
}

// openStorage builds the blob store selected by storage.driver
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage.Driver == "s3" {
		s3, err := storage.NewS3(ctx, storage.S3Options{
			Region:     cfg.AWS.Region,
			Bucket:     cfg.AWS.S3Bucket,
			AccessKey:  cfg.AWS.AccessKey,
			SecretKey:  cfg.AWS.SecretKey,
			Endpoint:   cfg.AWS.Endpoint,
			DisableSSL: cfg.AWS.DisableSSL,
			PublicURL:  cfg.Storage.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 storage: %w", err)
		}
		return s3, nil
	}

	publicURL := cfg.Storage.PublicURL
	if publicURL == "" {
		publicURL = localUploadsPath
	}
	local, err := storage.NewLocal(cfg.Storage.LocalDir, publicURL)
	if err != nil {
		return nil, err
	}
	return local, nil
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

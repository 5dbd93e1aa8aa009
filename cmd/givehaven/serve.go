package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"givehaven/internal/backend"
	"givehaven/internal/db"
	"givehaven/internal/preferences"
	"givehaven/internal/server"
	"givehaven/internal/storage"
	"givehaven/internal/store"
	"givehaven/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const preferenceTTL = 365 * 24 * time.Hour

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx.String("env-prefix"))
	if err != nil {
		return err
	}

	logger, err := newLogger(config)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	jwkCache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := backend.JWKSURL(config.SupabaseProjectRef)
	if err := jwkCache.Register(ctx, jwksURL); err != nil {
		return fmt.Errorf("failed to register supabase jwk with cache: %w", err)
	}

	bucket, err := newBucket(ctx, config)
	if err != nil {
		return err
	}

	codec, err := server.CookieCodec(config)
	if err != nil {
		return err
	}

	prefs, closePrefs, err := newPreferenceProvider(ctx, config, codec)
	if err != nil {
		return err
	}
	defer closePrefs()

	client := backend.New(
		logger,
		store.NewProfileRepository(pool),
		store.NewHomeRepository(pool),
		store.NewNeedRepository(pool),
		store.NewChatRepository(pool),
		backend.NewSupabaseAuth(config.SupabaseProjectRef, config.SupabaseAnonKey),
		backend.NewJWKSVerifier(jwkCache, jwksURL),
		bucket,
	)

	srv, err := server.New(config, logger, client, prefs, codec)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func newBucket(ctx context.Context, config *types.Config) (storage.Bucket, error) {
	switch config.StorageBackend {
	case "s3":
		awsConfig, err := loadAWSConfig(ctx, config.S3Region)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.StorageBucketName, config.S3Region), nil
	default:
		if config.SupabaseServiceKey == "" {
			return nil, fmt.Errorf("supabase storage needs a service key")
		}
		return storage.NewSupabaseStorage(config.SupabaseProjectRef, config.SupabaseServiceKey, config.StorageBucketName), nil
	}
}

func newPreferenceProvider(ctx context.Context, config *types.Config, codec *securecookie.SecureCookie) (preferences.Provider, func(), error) {
	secure := !config.IsDevelopment()

	if config.PreferenceBackend != "redis" {
		return preferences.NewCookieProvider(codec, secure), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close redis client")
		}
	}

	return preferences.NewRedisProvider(client, preferenceTTL, secure), closeFn, nil
}

package main

import (
	"context"
	"fmt"

	"givehaven/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
)

func loadConfig(prefix string) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set %s_DATABASE_URL", prefix)
	}

	switch c.StorageBackend {
	case "supabase", "s3":
	default:
		return nil, fmt.Errorf("unknown storage backend %q, want supabase or s3", c.StorageBackend)
	}

	switch c.PreferenceBackend {
	case "cookie", "redis":
	default:
		return nil, fmt.Errorf("unknown preference backend %q, want cookie or redis", c.PreferenceBackend)
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return cfg, nil
}

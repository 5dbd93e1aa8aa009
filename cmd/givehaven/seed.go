package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"givehaven/internal/db"
	"givehaven/internal/seed"
	"givehaven/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with profiles, homes and needs",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "needs",
			Usage: "Number of fake needs to create",
			Value: 24,
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Delete previously seeded needs first",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Print every seeded record",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		profiles, err := seed.SeedProfiles(ctx, store.NewProfileRepository(pool))
		if err != nil {
			return err
		}
		logrus.WithField("count", len(profiles)).Info("Profiles seeded")

		homes, err := seed.SeedHomes(ctx, store.NewHomeRepository(pool))
		if err != nil {
			return err
		}
		logrus.WithField("count", len(homes)).Info("Homes seeded")

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		needs, err := seed.SeedFakeNeeds(ctx, store.NewNeedRepository(pool), homes, c.Int("needs"), c.Bool("reset"), rng)
		if err != nil {
			return err
		}

		if c.Bool("verbose") {
			pp.Println(profiles, homes, needs)
		}

		return nil
	},
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pharmaware/pharmacare/pkg/config"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/logger"
	"github.com/pharmaware/pharmacare/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down-to|status|version|validate")
	target := flag.String("target", "", "target version for -cmd=down-to")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
		"db":  cfg.DB.Path,
	})

	if *cmd == "validate" {
		requireResource(ctx, logg, "migrations", migrate.Validate())
		logg.Info(ctx, "embedded migrations are valid")
		return
	}

	client, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer client.Close()

	sqlDB, err := client.DB().DB()
	requireResource(ctx, logg, "sql handle", err)

	switch *cmd {
	case "up":
		requireResource(ctx, logg, "migrate up", migrate.Up(ctx, sqlDB))
		logg.Info(ctx, "migrations applied")
	case "down-to":
		version, err := strconv.ParseInt(*target, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -target %q: %v\n", *target, err)
			os.Exit(1)
		}
		requireResource(ctx, logg, "migrate down-to", migrate.DownTo(ctx, sqlDB, version))
		logg.Info(ctx, "rolled back")
	case "status":
		requireResource(ctx, logg, "migrate status", migrate.Status(ctx, sqlDB))
	case "version":
		version, err := migrate.Version(ctx, sqlDB)
		requireResource(ctx, logg, "migrate version", err)
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to initialize "+name, err)
	os.Exit(1)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sorochan/lavka/internal/client/api"
	"github.com/sorochan/lavka/internal/client/auth"
	"github.com/sorochan/lavka/internal/client/cache"
	"github.com/sorochan/lavka/internal/client/cli"
	"github.com/sorochan/lavka/internal/client/iocli"
	"github.com/sorochan/lavka/internal/client/notify"
	"github.com/sorochan/lavka/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "lavka-client.db", "Path to local database")
	keyPath := flag.String("key", "lavka-client.key", "Path to local storage key file")
	offlineWishlist := flag.Bool("offline-wishlist", false, "Keep wishlist locally, without a server account")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	args := flag.Args()
	if len(args) == 0 {
		app := cli.New(stdio, nil, nil, nil, nil)
		app.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	storageKey, err := auth.LoadOrCreateKey(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load storage key: %v\n", err)
		os.Exit(1)
	}

	authStore, err := auth.NewStore(boltStorage, storageKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init session store: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, authStore, logger)
	notifier := notify.NewStdio()

	cart := cache.New(cache.KindCart,
		api.NewCartCollection(apiClient, authService),
		authService, notifier, logger)

	wishlistCollection := api.NewWishlistCollection(apiClient, authService)
	wishlistOpts := []cache.Option{
		cache.WithMembershipChecker(wishlistCollection, cache.DefaultCheckDelay, nil),
	}
	if *offlineWishlist {
		wishlistOpts = append(wishlistOpts, cache.WithLocalFallback(boltStorage))
	}
	wishlist := cache.New(cache.KindWishlist,
		wishlistCollection, authService, notifier, logger, wishlistOpts...)

	app := cli.New(stdio, apiClient, authService, cart, wishlist)
	app.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("Lavka Storefront Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

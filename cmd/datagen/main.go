package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-datagen/internal/config"
	"github.com/dvloznov/finance-datagen/internal/generate"
	"github.com/dvloznov/finance-datagen/internal/llm"
	"github.com/dvloznov/finance-datagen/internal/logger"
	"github.com/dvloznov/finance-datagen/internal/store/postgres"
)

func main() {
	log := logger.New()

	// Bare invocation runs a full generation with defaults.
	command := "generate"
	args := []string{}
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	switch command {
	case "generate":
		runGenerate(log, args)
	case "migrate":
		runMigrate(log, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Synthetic Financial Data Generator")
	fmt.Println("\nUsage:")
	fmt.Println("  datagen [command] [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate  Generate users, accounts and transactions (default)")
	fmt.Println("  migrate   Create the database schema and exit")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'datagen <command> -h' for more information on a command.")
}

func runGenerate(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	users := fs.Int("users", generate.DefaultUserCount, "Number of users to generate")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := logger.WithContext(context.Background(), log)

	store, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer store.Close()

	client, err := llm.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("Generation client construction failed")
	}

	runner := generate.NewRunner(generate.NewModelGenerator(client), store)
	if err := runner.Run(ctx, *users); err != nil {
		log.Fatal().Err(err).Msg("Generation run failed")
	}

	fmt.Println("Generation completed successfully.")
}

func runMigrate(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	fs.Parse(args)

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := logger.WithContext(context.Background(), log)

	store, err := postgres.Open(ctx, *dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Schema creation failed")
	}

	fmt.Println("Schema is up to date.")
}

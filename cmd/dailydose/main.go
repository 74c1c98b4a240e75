// dailydose is "The Daily Dose": a pet-nutrition dashboard in the terminal.
// Owners register up to four pets, plans come from Gemini, and an
// admin-curated feed of news and ads sits alongside the pet slots.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dailydose/internal/auth"
	"dailydose/internal/config"
	"dailydose/internal/feed"
	"dailydose/internal/nutrition"
	"dailydose/internal/pets"
	"dailydose/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dbPath     string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dailydose",
	Short: "The Daily Dose - AI pet nutrition planner",
	Long: `The Daily Dose plans daily feeding for your pets.

Register a pet profile and a veterinary-nutritionist prompt is sent to
Gemini, which returns a structured plan: a calorie target, wet/dry food
amounts, advice for any medical conditions, and product recommendations.

All state lives in a local database. Without a GEMINI_API_KEY the app runs
in review mode: saved pets and the feed stay browsable, but nothing new can
be computed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()
		return app.renderDashboard(cmd.OutOrStdout())
	},
}

// app wires the controllers over one config and one store for the duration
// of a command.
type app struct {
	cfg        *config.Config
	store      *store.Store
	pets       *pets.Controller
	feed       *feed.Controller
	auth       *auth.Manager
	reviewMode bool
}

// openApp loads config, opens the store, and builds the controllers. A
// missing Gemini credential does not fail startup; it flips the app into
// review mode and prints the persistent banner.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.DatabasePath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, store: st}
	a.auth = auth.NewManager(st, logger.Named("auth"))
	a.feed = feed.NewController(st, logger.Named("feed"), cfg.Feed.Passphrase)

	var planner pets.Planner
	svc, err := nutrition.New(ctx, nutrition.Options{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.GetLLMTimeout(),
	})
	var cfgErr *nutrition.ConfigurationError
	switch {
	case err == nil:
		planner = svc
	case errors.As(err, &cfgErr):
		a.reviewMode = true
		fmt.Fprintln(os.Stderr, renderBanner("Review Mode: "+cfgErr.Reason+". Calculations will not work."))
	default:
		st.Close()
		return nil, err
	}

	a.pets, err = pets.NewController(st, planner, logger.Named("pets"), pets.Options{
		MaxPets: cfg.Limits.MaxPets,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	a.pets.SetNudge(pets.NewSignupNudge(cfg.GetSignupNudgeDelay(), a.auth.HasSession, func() {
		fmt.Fprintln(os.Stderr, renderNudge())
	}))

	return a, nil
}

func (a *app) Close() {
	a.pets.Wait()
	if err := a.store.Close(); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "dailydose.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "override database path")

	rootCmd.AddCommand(petCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(accountCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

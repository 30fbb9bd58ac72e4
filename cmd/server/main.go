package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zaqqye/evaluasi_backend/internal/config"
	"github.com/zaqqye/evaluasi_backend/internal/logger"
	"github.com/zaqqye/evaluasi_backend/internal/roster"
	"github.com/zaqqye/evaluasi_backend/internal/storage"
	"github.com/zaqqye/evaluasi_backend/internal/version"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "evaluasi",
		Short:         "Class grade dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(serveCmd(), seedCmd(), rankCmd(), exportCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})
	return cmd
}

// app is the shared wiring behind every command.
type app struct {
	cfg   *config.Config
	store *roster.Store
	close func() error
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	blobs, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:   cfg,
		store: roster.NewStore(blobs, cfg.StoreKey, cfg.Subjects),
		close: closer,
	}, nil
}

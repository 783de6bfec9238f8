package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mindarch/mindarch/internal/ai"
	"github.com/mindarch/mindarch/internal/config"
	"github.com/mindarch/mindarch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mindarch backend server",
	Long:  `Run the HTTP backend: account signup/login, per-user plan storage, and a generation proxy so clients never hold the API key.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	jwtSecret := config.GetEnv(config.EnvJWTSecret, "")
	if jwtSecret == "" {
		return fmt.Errorf("%s must be set to run the server", config.EnvJWTSecret)
	}

	log := newLogger()

	dbPath := config.GetEnv(config.EnvDBPath, filepath.Join(config.DataDir(), "mindarch.db"))
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := server.OpenDB(dbPath)
	if err != nil {
		return err
	}

	// Generation is optional server-side; without an API key the server
	// still stores plans, and /api/generate reports the gap.
	var generator ai.Generator
	if client, err := ai.New(log); err == nil {
		generator = client
	} else {
		log.Warn("generation disabled", "error", err)
	}

	addr := config.GetEnv(config.EnvAddr, ":8080")
	srv := server.New(db, log, jwtSecret, generator)
	if err := srv.Run(addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

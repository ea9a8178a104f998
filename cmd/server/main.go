package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rongwang/txvault/internal/api"
	"github.com/rongwang/txvault/internal/config"
	"github.com/rongwang/txvault/internal/repository"
	"github.com/rongwang/txvault/internal/service"
	"github.com/rongwang/txvault/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	logger := utils.NewLogger()
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:           "txvault",
		Short:         "txvault serves the personal finance ledger API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v, logger)
		},
	}

	flags := rootCmd.Flags()
	flags.String("db", "", "store location (overrides TX_DB)")
	flags.String("host", "0.0.0.0", "address to listen on")
	flags.Int("port", 3000, "port to listen on")

	_ = v.BindPFlag("database.location", flags.Lookup("db"))
	_ = v.BindPFlag("server.host", flags.Lookup("host"))
	_ = v.BindPFlag("server.port", flags.Lookup("port"))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(v *viper.Viper, logger *utils.Logger) error {
	// Load configuration
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up database connection and schema
	logger.Info("Ensuring database exists at %s", cfg.Database.Location)
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	// Create repository
	repo := repository.NewSQLRepository(db)

	// Create service
	svc := service.NewDefaultService(repo)

	// Create API handler
	handler := api.NewHandler(svc, logger)

	// Set up Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

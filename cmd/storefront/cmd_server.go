package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/kernel"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"github.com/shashiranjanraj/storefront/pkg/payment"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

var (
	servePort      string
	serveNoMigrate bool
)

// storefront serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if servePort != "" {
			config.Set("APP_PORT", servePort)
		}
		if err := config.Validate(); err != nil {
			return err
		}

		closeLogs, err := logger.Setup()
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		}
		defer closeLogs()

		if err := database.Connect(); err != nil {
			return err
		}
		defer database.Close()

		if !serveNoMigrate {
			if err := migration.New(database.DB).WithOutput(cmd.OutOrStdout()).Run(); err != nil {
				return err
			}
		}

		if err := cache.Connect(); err != nil {
			logger.Warn("redis unavailable, using memory cache", "error", err)
		}
		if err := storage.Connect(cmd.Context()); err != nil {
			return err
		}

		gateway, err := payment.New()
		if err != nil {
			return err
		}
		logger.Info("payment gateway ready", "driver", config.PaymentDriver())

		k, err := kernel.NewHTTPKernel(kernel.Deps{
			DB:       database.DB,
			Gateway:  gateway,
			Sessions: cache.Default(),
		})
		if err != nil {
			return err
		}

		return server.Start(cmd.Context(), ":"+config.AppPort(), k.Handler())
	},
}

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.Register(r, routes.Controllers{})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (default APP_PORT or 5005)")
	serveCmd.Flags().BoolVar(&serveNoMigrate, "no-migrate", false, "skip running pending migrations on start")
}


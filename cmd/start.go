package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dat-manager/core/loader"
	"dat-manager/core/logger"
	"dat-manager/core/middleware/auth"
	"dat-manager/core/middleware/rayid"
	"dat-manager/feature/catalog"
	"dat-manager/feature/integrity"
	"dat-manager/feature/update"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "dat-manager/docs/swagger"
)

// @title DAT Manager API
// @version 1.0
// @description API for merging, diffing and storing ROM DAT catalogs.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dat manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration and logger
		rt, err := setup()
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)
		cfg := rt.cfg

		// 2. Database (optional) and catalog tables
		db := rt.openDatabase()
		catalogs, err := rt.openCatalogs(cmd.Context(), db)
		if err != nil {
			return err
		}

		// 3. Storage (optional)
		store := rt.openStorage()

		// 4. Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 5. Feature Loader
		mgr := loader.NewManager(logg)
		features := []loader.Feature{
			catalog.NewFeature(db, logg, cfg.Server.FeatureEnabled("catalog")),
			update.NewFeature(update.Options{
				Client:       store,
				Bucket:       cfg.Storage.Bucket,
				OutputPrefix: cfg.Storage.OutputPrefix,
				Catalogs:     catalogs.Loader(),
				Reconcile:    cfg.Reconcile,
				Logger:       logg,
			}, cfg.Server.FeatureEnabled("update")),
			integrity.NewFeature(store, cfg.Storage, logg, db, cfg.Reconcile.Workers, cfg.Server.FeatureEnabled("integrity")),
		}
		for _, f := range features {
			if err := mgr.Register(f); err != nil {
				return err
			}
		}

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		// 6. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

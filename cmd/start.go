package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"asset-bridge/core/config"
	"asset-bridge/core/engine/obj"
	"asset-bridge/core/loader"
	"asset-bridge/core/logger"
	"asset-bridge/core/middleware/auth"
	"asset-bridge/core/middleware/rayid"

	"asset-bridge/feature/contexts"
	"asset-bridge/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-bridge/docs/swagger"
)

// @title Asset Bridge API
// @version 1.0
// @description Handle-based import sessions over a native asset engine.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset bridge server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Server.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		rt, err := newRuntime(cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize bridge", zap.Error(err))
		}
		if rt.history != nil {
			logg.Info("Import history enabled", zap.String("driver", cfg.Database.Driver))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(contexts.NewFeature(rt.registry, rt.history, logg, cfg.Bridge.HistoryLimit))
		mgr.Register(integrity.NewFeature(rt.store, cfg.Storage.Bucket, logg, rt.db, obj.Extensions))

		// RayID first so every log line can be traced.
		app.Use(rayid.New())

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

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next:   func(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/swagger") },
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)

		// Free whatever the hosts left open so the log hub drains.
		rt.Close(context.Background())
		logg.Info("Sessions closed", zap.Int("hub_refs", rt.hub.Refs()))
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

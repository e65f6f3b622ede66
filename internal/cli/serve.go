package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	dbpkg "github.com/BruksfildServices01/ice-routes/internal/db"
	"github.com/BruksfildServices01/ice-routes/internal/routes"
	"github.com/BruksfildServices01/ice-routes/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start the HTTP API and, when rollover.enabled, the in-process daily rollover scheduler`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Database.AutoMigrate {
		if err := dbpkg.Migrate(a.db); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !a.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, a.db, a.cfg, routes.Deps{
		AuditLogger:     a.auditLogger,
		AuditDispatcher: a.audit,
		Rollover:        a.rollover,
	})

	srv := &http.Server{
		Addr:    a.cfg.Addr(),
		Handler: r,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server error")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownGrace)
		defer cancel()

		log.Info().Msg("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})

	if a.cfg.Rollover.Enabled {
		g.Go(func() error {
			return scheduler.Run(ctx, a.cfg.Rollover, a.rollover)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		return err
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}

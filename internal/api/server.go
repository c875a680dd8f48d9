package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/fi-dashboard/internal/api/handler"
	"github.com/vfg2006/fi-dashboard/internal/api/handler/router"
	"github.com/vfg2006/fi-dashboard/internal/config"
	"github.com/vfg2006/fi-dashboard/internal/scheduler"
	"github.com/vfg2006/fi-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/fi-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
	"github.com/vfg2006/fi-dashboard/pkg/log"
	"github.com/vfg2006/fi-dashboard/pkg/middleware"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// Background is a long-running task started alongside the HTTP server, such as the dataset watcher
type Background interface {
	Run(ctx context.Context) error
}

type Server struct {
	httpServer *http.Server
	background []Background
}

func New(
	config *config.Config,
	dashboard dashboarding.Dashboard,
	loader loading.Loader,
	authenticator authenticating.Authenticator,
	datasetReloadService *scheduler.DatasetReloadService,
	background ...Background,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		DatasetReloadService: datasetReloadService,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, dashboard, loader, authenticator, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
		background: background,
	}

	return srv, nil
}

// NewHandler assembles the routes and the global middleware chain
func NewHandler(
	config *config.Config,
	dashboard dashboarding.Dashboard,
	loader loading.Loader,
	authenticator authenticating.Authenticator,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(loader)...),
		router.WithRoutes(handler.Dashboard(dashboard)...),
		router.WithRoutes(handler.Dataset(loader, config.Dataset.DownloadName)...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.CronJobs(cronServices, authenticator)...),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPage, "route not found", map[string]string{"path": r.URL.Path})
		})),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
// A failing background task stops the server too.
func (s Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egctx := errgroup.WithContext(ctx)
	s.httpServer.BaseContext = func(_ net.Listener) context.Context {
		return egctx
	}

	for _, task := range s.background {
		task := task
		eg.Go(func() error {
			return task.Run(egctx)
		})
	}

	eg.Go(func() error {
		log.L.WithField("address", s.httpServer.Addr).Info("server: starting")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		log.L.WithField("timeout", shutdownTimeout.String()).Info("server: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	log.L.Info("server: stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

package handler

import (
	"net/http"

	"github.com/vfg2006/fi-dashboard/internal/api/handler/router"
	"github.com/vfg2006/fi-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/fi-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
	"github.com/vfg2006/fi-dashboard/pkg/middleware"
)

func Healthcheck(loader loading.Loader) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(loader),
		},
	}
}

func Dashboard(service dashboarding.Dashboard) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: RenderPage(service),
		},
		{
			Path:    "/pages/:page",
			Method:  http.MethodGet,
			Handler: RenderPage(service),
		},
		{
			Path:    "/v1/pages",
			Method:  http.MethodGet,
			Handler: ListPages(service),
		},
		{
			Path:    "/v1/pages/:page",
			Method:  http.MethodGet,
			Handler: GetPage(service),
		},
	}
}

func Dataset(loader loading.Loader, downloadName string) []router.Route {
	return []router.Route{
		{
			Path:    dashboarding.DownloadURL,
			Method:  http.MethodGet,
			Handler: DownloadDataset(loader, downloadName),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func CronJobs(services CronJobServices, authService authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly(authService)},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly(authService)},
		},
	}
}

package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
	"github.com/vfg2006/fi-dashboard/pkg/log"
	"github.com/vfg2006/fi-dashboard/pkg/middleware"
)

const CronJobTypeDatasetReload = "dataset-reload"

// CronJobServices are the jobs an operator can trigger by hand
type CronJobServices struct {
	DatasetReloadService DatasetReloader
}

// DatasetReloader is implemented by scheduler.DatasetReloadService
type DatasetReloader interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			logger = logger.WithField("user", claims.Username)
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeDatasetReload:
			if services.DatasetReloadService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "dataset reload job is not available", nil)
				return
			}

			started := services.DatasetReloadService.TriggerManualSync(r.Context())
			logger.WithField("started", started).Info("cron: manual dataset reload")

			message := "dataset reload started"
			if !started {
				message = "dataset reload already running"
			}
			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": message,
				"type":    cronType,
				"started": started,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron job type", map[string]any{
				"accepted": []string{CronJobTypeDatasetReload},
			})
		}
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.DatasetReloadService != nil {
			status[CronJobTypeDatasetReload] = services.DatasetReloadService.GetStatus()
		}
		writeJSON(w, r, http.StatusOK, status)
	}
}

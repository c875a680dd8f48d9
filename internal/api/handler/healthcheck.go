package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
)

type HealthcheckResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Dataset any    `json:"dataset"`
}

// HealthcheckHandler reports "ok" once a dataset is served and "degraded" before that.
// It always answers 200 so the dashboard stays up while the file is fixed.
func HealthcheckHandler(loader loading.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if _, err := loader.Current(); err != nil {
			status = "degraded"
		}

		writeJSON(w, r, http.StatusOK, HealthcheckResponse{
			Status:  status,
			Time:    time.Now().Format(time.RFC3339),
			Dataset: loader.Status(),
		})
	})
}

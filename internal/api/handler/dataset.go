package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/vfg2006/fi-dashboard/infrastructure/filesource"
	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

// DownloadDataset streams the loaded dataset back as CSV. The snapshot version is the
// ETag, so a client holding the current version gets a 304.
func DownloadDataset(loader loading.Loader, fileName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := loader.Current()
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("download requested without dataset")
			apiErrors.WriteError(w, apiErrors.ErrDatasetUnavailable, "dataset is not loaded", map[string]any{
				"dataset": loader.Status(),
			})
			return
		}

		etag := fmt.Sprintf("%q", snapshot.Version)
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		var buf bytes.Buffer
		if err := filesource.WriteCSV(&buf, snapshot.Dataset); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("error serialising dataset")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not serialise dataset", nil)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("error writing dataset download")
		}
	}
}

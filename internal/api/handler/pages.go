package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

type PageListResponse struct {
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle"`
	Pages    []domain.MenuItem `json:"pages"`
}

func ListPages(service dashboarding.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, PageListResponse{
			Title:    dashboarding.Title,
			Subtitle: dashboarding.Subtitle,
			Pages:    service.Menu(domain.PageOverview),
		})
	}
}

// GetPage returns the page view as JSON, charts included as plotly figures
func GetPage(service dashboarding.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := httprouter.ParamsFromContext(r.Context()).ByName("page")

		page, scenario, err := pageRequest(r, slug)
		if err != nil {
			writePageRequestError(w, err)
			return
		}

		view, err := service.Page(r.Context(), page, scenario)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("error building page")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not build page", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, view)
	}
}

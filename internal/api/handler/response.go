package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("error writing response")
	}
}

// pageRequest reads the page slug and scenario query of a page route
func pageRequest(r *http.Request, slug string) (domain.Page, domain.Scenario, error) {
	page, err := domain.ParsePage(slug)
	if err != nil {
		return "", "", err
	}

	scenario, err := domain.ParseScenario(r.URL.Query().Get("scenario"))
	if err != nil {
		return "", "", err
	}

	return page, scenario, nil
}

// writePageRequestError maps page and scenario parsing failures to API errors
func writePageRequestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownPage):
		apiErrors.WriteError(w, apiErrors.ErrUnknownPage, err.Error(), map[string]any{
			"pages": domain.Pages(),
		})
	case errors.Is(err, domain.ErrUnknownScenario):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), map[string]any{
			"scenarios": domain.Scenarios(),
		})
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}

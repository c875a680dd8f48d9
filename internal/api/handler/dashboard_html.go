package handler

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(
	template.New("dashboard.html").Funcs(template.FuncMap{
		"figureJSON": figureJSON,
	}).ParseFS(templateFS, "templates/dashboard.html"),
)

type dashboardData struct {
	Title           string
	Subtitle        string
	Menu            []domain.MenuItem
	View            *domain.PageView
	RunInstructions string
	Error           string
}

// figureJSON renders a figure for a <script> block; HTML-significant characters are escaped by the encoder
func figureJSON(figure *domain.Figure) (template.JS, error) {
	content, err := json.Marshal(figure)
	if err != nil {
		return "", err
	}
	return template.JS(content), nil
}

// RenderPage serves the dashboard shell for the page in the URL, Overview at "/"
func RenderPage(service dashboarding.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := httprouter.ParamsFromContext(r.Context()).ByName("page")

		page, scenario, err := pageRequest(r, slug)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, domain.ErrUnknownPage) {
				status = http.StatusNotFound
			}
			writeDashboard(w, r, status, dashboardData{
				Title:           dashboarding.Title,
				Subtitle:        dashboarding.Subtitle,
				Menu:            service.Menu(domain.PageOverview),
				RunInstructions: dashboarding.RunInstructions,
				Error:           err.Error(),
			})
			return
		}

		view, err := service.Page(r.Context(), page, scenario)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("error building page")
			http.Error(w, "could not build page", http.StatusInternalServerError)
			return
		}

		writeDashboard(w, r, http.StatusOK, dashboardData{
			Title:           dashboarding.Title,
			Subtitle:        dashboarding.Subtitle,
			Menu:            service.Menu(page),
			View:            view,
			RunInstructions: dashboarding.RunInstructions,
		})
	}
}

func writeDashboard(w http.ResponseWriter, r *http.Request, status int, data dashboardData) {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("error rendering dashboard")
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("error writing dashboard")
	}
}

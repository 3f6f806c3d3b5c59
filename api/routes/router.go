package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tariffsheriff/tariffsheriff-backend/api/controllers"
	"github.com/tariffsheriff/tariffsheriff-backend/api/middleware"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/draft"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/export"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/hscodes"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/config"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     controllers.Pinger
	RedisPinger  controllers.Pinger
	Calculations controllers.CalculationService
	SavedTariffs controllers.SavedTariffService
	Exporter     *export.Exporter
	HsSearch     hscodes.Searcher
	Countries    controllers.CountrySource
	Agreements   controllers.AgreementSource
	Autosaver    *draft.Autosaver
	Registry     *prometheus.Registry
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/calculations", func(r chi.Router) {
			r.Post("/", controllers.Calculate(deps.Calculations, logg))
			r.Get("/history", controllers.CalculationHistory(deps.Calculations))
		})

		r.Route("/saved-tariffs", func(r chi.Router) {
			r.Get("/", controllers.ListSavedTariffs(deps.SavedTariffs, logg))
			r.Post("/", controllers.CreateSavedTariff(deps.SavedTariffs, logg))
			r.Get("/export", controllers.ExportSavedTariffs(deps.SavedTariffs, deps.Exporter, logg))
			r.Get("/export/details", controllers.ExportSavedTariffDetails(deps.SavedTariffs, deps.Exporter, logg))
			r.Get("/{id}", controllers.GetSavedTariff(deps.SavedTariffs, logg))
			r.Delete("/{id}", controllers.DeleteSavedTariff(deps.SavedTariffs, logg))
		})

		r.Get("/hs-codes", controllers.SearchHsCodes(deps.HsSearch, logg))
		r.Get("/countries", controllers.ListCountries(deps.Countries, logg))
		r.Get("/agreements", controllers.ListAgreements(deps.Agreements, logg))

		r.Route("/draft", func(r chi.Router) {
			r.Use(middleware.DraftOwner(logg))
			r.Get("/", controllers.GetDraft(deps.Autosaver))
			r.Put("/", controllers.PutDraft(deps.Autosaver, logg))
			r.Delete("/", controllers.DeleteDraft(deps.Autosaver))
		})
	})

	return r
}

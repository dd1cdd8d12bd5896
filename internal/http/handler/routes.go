package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profileviews/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. /metrics is
// only mounted when gatherer is non-nil.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	importSvc service.ImportService,
	viewSvc service.ProfileViewService,
	gatherer prometheus.Gatherer,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/hello", Hello())
	app.Post("/echo", Echo())

	app.Post("/imports", ImportSnapshot(importSvc))

	app.Get("/profile-views", ListProfileViews(viewSvc))
	app.Get("/profile-views/:id", GetProfileView(viewSvc))

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

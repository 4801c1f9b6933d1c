package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/insadmin/pkg/model"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	// Public routes (no auth required).
	r.Get("/login", ui.HandleLogin)
	r.Post("/login", ui.HandleLoginPost)

	// Protected routes (auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.AuthMiddleware)

		r.Get("/", ui.HandleHome)
		r.Get("/logout", ui.HandleLogout)
		r.Get("/employee", ui.HandleEmployeeNotice)

		r.With(ui.requireExport).Get("/exports/{entity}", ui.HandleExport)

		// Admin routes (admin role required).
		r.Route("/admin", func(r chi.Router) {
			r.Use(ui.AdminMiddleware)
			r.Get("/", ui.HandleAdminDashboard)

			r.Route("/centers", func(r chi.Router) {
				r.Get("/", ui.HandleCenters)
				r.Post("/", ui.HandleCenterCreate)
				r.Post("/{id}", ui.HandleCenterUpdate)
				r.Post("/{id}/delete", ui.HandleCenterDelete)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", ui.HandleEmployees)
				r.Post("/", ui.HandleEmployeeCreate)
				r.Post("/{id}/delete", ui.HandleEmployeeDelete)
			})

			r.Get("/payments", ui.HandlePayments)
			r.Get("/records", ui.HandleRecords)

			r.Route("/finance", func(r chi.Router) {
				r.Get("/", ui.HandleFinance)
				r.Post("/rebuild", ui.HandleFinanceRebuild)
				r.Get("/distribution", ui.HandleFinanceDistribution)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", ui.HandleCompanies)
				r.Post("/", ui.HandleCompanyCreate)
				r.Get("/{id}", ui.HandleCompanyPayments)
				r.Post("/{id}", ui.HandleCompanyUpdate)
				r.Post("/{id}/delete", ui.HandleCompanyDelete)
			})

			r.Route("/assistants", func(r chi.Router) {
				r.Get("/", ui.HandleAssistants)
				r.Post("/", ui.HandleAssistantCreate)
				r.Post("/{id}", ui.HandleAssistantUpdate)
			})

			r.Route("/pricing", func(r chi.Router) {
				r.Get("/", ui.HandlePricing)
				r.Post("/percent", ui.HandlePricingPercent)
				r.Post("/item", ui.HandlePricingItem)
				r.Post("/item/delete", ui.HandlePricingItemDelete)
				r.Post("/reset", ui.HandlePricingReset)
			})
		})

		// Assistant routes (assistant admin or admin, gated per permission).
		r.Route("/assistant", func(r chi.Router) {
			r.Use(ui.AssistantMiddleware)
			r.Get("/", ui.HandleAssistantDashboard)
			r.With(ui.RequirePermission(model.PermViewPayments)).Get("/payments", ui.HandlePayments)
			r.With(ui.RequirePermission(model.PermViewFinance)).Get("/finance", ui.HandleFinance)
			r.With(ui.RequirePermission(model.PermExportReports)).Get("/reports", ui.HandleReports)
		})
	})
}

// requireExport admits sessions allowed to download exports.
func (ui *UI) requireExport(next http.Handler) http.Handler {
	return ui.RequirePermission(model.PermExportReports)(next)
}

package ui

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/pkg/model"
)

// ExportEntities are the reports offered on the reports page.
var ExportEntities = []string{"payments", "finance", "centers", "employees", "companies"}

// exportFilters are the query parameters forwarded to the remote export.
var exportFilters = []string{"from", "to", "centerId", "companyId", "q"}

// HandleExport streams a remote report to the browser.
func (ui *UI) HandleExport(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	entity := ui.pathParam(r, "entity")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	filters := url.Values{}
	for _, k := range exportFilters {
		if v := r.URL.Query().Get(k); v != "" {
			filters.Set(k, v)
		}
	}

	dl, err := ui.client.Export(r.Context(), sess.Token, entity, format, filters)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrValidation {
			ui.renderStatus(w, http.StatusBadRequest, "error", map[string]any{
				"Title":   "Export - insadmin",
				"Session": sess,
				"Message": model.ValidationMessage(err),
			})
			return
		}
		ui.remoteError(w, r, "Export failed", err)
		return
	}
	defer dl.Body.Close()

	w.Header().Set("Content-Type", dl.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename}))
	w.WriteHeader(http.StatusOK)
	n, err := io.Copy(w, dl.Body)
	if err != nil {
		ui.logger.Warn("export stream interrupted", "entity", entity, "bytes", n, "error", err)
		return
	}
	ui.logger.Info("export downloaded", "entity", entity, "format", format, "bytes", n, "user", sess.Username)
}

// HandleReports lists the downloadable reports.
func (ui *UI) HandleReports(w http.ResponseWriter, r *http.Request) {
	data := ui.page(r, "Reports")
	data["Entities"] = ExportEntities
	data["Formats"] = apiclient.ExportFormats
	data["Range"] = dateRange(r)
	ui.render(w, "reports", data)
}

package ui

import (
	"net/http"
	"strings"

	"github.com/me/insadmin/pkg/model"
)

// formPermissions reads the checked permission boxes.
func formPermissions(r *http.Request) []model.Permission {
	return model.ParsePermissions(r.Form["permissions"]).List()
}

// HandleAssistants lists the assistant admins.
func (ui *UI) HandleAssistants(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	data := ui.page(r, "Assistant admins")
	data["AllPermissions"] = model.AllPermissions

	list, err := ui.client.ListAssistants(r.Context(), sess.Token)
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load assistant admins: " + model.ValidationMessage(err)
	}
	data["Assistants"] = list
	ui.render(w, "admin/assistants", data)
}

// HandleAssistantCreate creates an assistant admin.
func (ui *UI) HandleAssistantCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/assistants", "error", "Invalid request")
		return
	}
	active := true
	in := model.AssistantInput{
		Username:    strings.TrimSpace(r.FormValue("username")),
		Password:    r.FormValue("password"),
		FullName:    strings.TrimSpace(r.FormValue("fullName")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Permissions: formPermissions(r),
		IsActive:    &active,
	}
	err := ui.client.CreateAssistant(r.Context(), sess.Token, in)
	ui.backTo(w, r, "/admin/assistants", "Assistant admin created", err)
}

// HandleAssistantUpdate replaces an assistant's permissions and active flag.
func (ui *UI) HandleAssistantUpdate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/assistants", "error", "Invalid request")
		return
	}
	active := r.FormValue("isActive") != ""
	in := model.AssistantInput{
		FullName:    strings.TrimSpace(r.FormValue("fullName")),
		Password:    r.FormValue("password"),
		Permissions: formPermissions(r),
		IsActive:    &active,
	}
	err := ui.client.UpdateAssistant(r.Context(), sess.Token, ui.pathParam(r, "id"), in)
	if err == nil {
		ui.logger.Info("assistant updated", "id", ui.pathParam(r, "id"), "permissions", len(in.Permissions), "active", active)
	}
	ui.backTo(w, r, "/admin/assistants", "Assistant admin updated", err)
}

package ui

import (
	"net/http"
	"strings"

	"github.com/me/insadmin/internal/cache"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

const employeeDefaultSize = 50

func (ui *UI) users(r *http.Request) ([]model.User, error) {
	sess := SessionFromContext(r.Context())
	return cache.GetOrLoad(ui.cache, sess.Token, "users", func() ([]model.User, error) {
		return ui.client.ListUsers(r.Context(), sess.Token)
	})
}

// filterUsers keeps users of center (unless empty or "all") whose
// username, name, email or employee id contains q.
func filterUsers(users []model.User, center, q string) []model.User {
	q = strings.ToLower(strings.TrimSpace(q))
	return paging.Filter(users, func(u model.User) bool {
		if center != "" && center != "all" && u.CenterID != center {
			return false
		}
		if q == "" {
			return true
		}
		for _, f := range []string{u.Username, u.FullName, u.Email, u.EmployeeID} {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	})
}

// HandleEmployees renders the client-paged employee list.
func (ui *UI) HandleEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	center := r.URL.Query().Get("center")

	data := ui.page(r, "Employees")
	data["Query"] = q
	data["Center"] = center

	users, err := ui.users(r)
	if err != nil {
		if ui.expired(w, r, err) {
			return
		}
		data["Error"] = "Failed to load employees: " + model.ValidationMessage(err)
		data["Pager"] = ui.emptyPager(r, employeeDefaultSize, paging.DefaultSizes)
		ui.render(w, "admin/employees", data)
		return
	}

	centers, err := ui.allCenters(r)
	if err != nil {
		ui.logger.Warn("center selector unavailable", "error", err)
	}
	data["Centers"] = centers

	visible, pager := clientPage(ui, r, filterUsers(users, center, q), employeeDefaultSize, paging.DefaultSizes)
	data["Users"] = visible
	data["Pager"] = pager
	ui.render(w, "admin/employees", data)
}

// HandleEmployeeCreate creates an employee or admin account.
func (ui *UI) HandleEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, "/admin/employees", "error", "Invalid request")
		return
	}
	in := model.UserInput{
		Username:   r.FormValue("username"),
		Password:   r.FormValue("password"),
		FullName:   r.FormValue("fullName"),
		Email:      r.FormValue("email"),
		Role:       model.UserRole(strings.TrimSpace(r.FormValue("role"))),
		EmployeeID: strings.TrimSpace(r.FormValue("employeeId")),
	}
	if c := strings.TrimSpace(r.FormValue("centerId")); c != "" {
		in.CenterID = &c
	}
	err := ui.client.CreateUser(r.Context(), sess.Token, in)
	if err == nil {
		ui.cache.Invalidate(sess.Token, "users")
	}
	ui.backTo(w, r, "/admin/employees", "Employee created", err)
}

// HandleEmployeeDelete deletes a user and signs out their console sessions.
func (ui *UI) HandleEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")
	err := ui.client.DeleteUser(r.Context(), sess.Token, id)
	if err == nil {
		ui.cache.Invalidate(sess.Token, "users")
		if n, rerr := ui.sessions.RevokeUser(r.Context(), id); rerr != nil {
			ui.logger.Warn("revoke sessions failed", "user_id", id, "error", rerr)
		} else if n > 0 {
			ui.logger.Info("revoked sessions of deleted user", "user_id", id, "sessions", n)
		}
	}
	ui.backTo(w, r, "/admin/employees", "Employee deleted", err)
}

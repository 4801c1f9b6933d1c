package ui

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/me/insadmin/pkg/model"
)

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

func formatMoney(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04")
	},
	"formatDate": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"relTime": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "never"
		}
		return humanize.Time(*t)
	},
	"money": formatMoney,
	"count": formatCount,
	"pct": func(v float64) string {
		return fmt.Sprintf("%.2f%%", v)
	},
	"add": func(a, b int) int {
		return a + b
	},
	"sub": func(a, b int) int {
		return a - b
	},
	"hasPerm": func(list []model.Permission, p model.Permission) bool {
		return slices.Contains(list, p)
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
	"upper": strings.ToUpper,
}

// renderTemplate renders a template with the given data.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	// Get the template content.
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	// Get the layout template.
	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	// Parse templates.
	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	_, err = tmpl.New("content").Parse(content)
	if err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	// Add shared components.
	for compName, compContent := range templates {
		if strings.HasPrefix(compName, "components/") {
			_, err = tmpl.New(filepath.Base(compName)).Parse(compContent)
			if err != nil {
				return fmt.Errorf("parse component %s: %w", compName, err)
			}
		}
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        .htmx-indicator { display: none; }
        .htmx-request .htmx-indicator { display: inline-block; }
        .htmx-request.htmx-indicator { display: inline-block; }
    </style>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Session}}
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">insadmin</a>
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-6">
                        {{if .Session.IsAdmin}}
                        <a href="/admin" class="nav-link text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Dashboard</a>
                        <a href="/admin/centers" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Centers</a>
                        <a href="/admin/employees" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Employees</a>
                        <a href="/admin/payments" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Payments</a>
                        <a href="/admin/records" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Records</a>
                        <a href="/admin/finance" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Finance</a>
                        <a href="/admin/companies" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Companies</a>
                        <a href="/admin/assistants" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Assistants</a>
                        <a href="/admin/pricing" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Pricing</a>
                        {{else if .Session.IsAssistant}}
                        <a href="/assistant" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Home</a>
                        {{if .Session.Can "view_payments"}}<a href="/assistant/payments" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Payments</a>{{end}}
                        {{if .Session.Can "view_finance"}}<a href="/assistant/finance" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Finance</a>{{end}}
                        {{if .Session.CanExport}}<a href="/assistant/reports" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Reports</a>{{end}}
                        {{end}}
                    </div>
                </div>
                <div class="flex items-center">
                    <span class="text-sm text-gray-500 mr-4">{{.Session.DisplayName}}</span>
                    <a href="/logout" class="text-sm text-gray-500 hover:text-gray-700">Sign out</a>
                </div>
            </div>
        </div>
    </nav>
    {{end}}

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "flash" .}}
        {{template "content" .}}
    </main>
</body>
</html>`,

	"components/flash": `{{define "flash"}}
{{if .Flash}}<div class="mb-4 rounded-md bg-green-50 p-4 text-sm text-green-700">{{.Flash}}</div>{{end}}
{{if .Warning}}<div class="mb-4 rounded-md bg-yellow-50 p-4 text-sm text-yellow-800">{{.Warning}}</div>{{end}}
{{if .Error}}<div class="mb-4 rounded-md bg-red-50 p-4 text-sm text-red-700">{{.Error}}</div>{{end}}
{{end}}`,

	"components/pagination": `{{define "pagination"}}
<div class="flex items-center justify-between py-3">
    <p class="text-sm text-gray-600">{{.Label}}</p>
    {{if .Visible}}
    <div class="flex items-center space-x-4">
        {{if not .All}}
        <nav class="inline-flex -space-x-px rounded-md shadow-sm">
            {{if .HasPrev}}
            <a href="{{.URL .PrevPage}}" class="px-3 py-1 border text-sm bg-white text-gray-600 hover:bg-gray-50">&lsaquo;</a>
            {{end}}
            {{range .Pages}}
            {{if .Ellipsis}}
            <span class="px-3 py-1 border text-sm bg-white text-gray-400">...</span>
            {{else if .Current}}
            <span class="px-3 py-1 border text-sm bg-indigo-600 text-white">{{.Number}}</span>
            {{else}}
            <a href="{{$.URL .Number}}" class="px-3 py-1 border text-sm bg-white text-gray-600 hover:bg-gray-50">{{.Number}}</a>
            {{end}}
            {{end}}
            {{if .HasNext}}
            <a href="{{.URL .NextPage}}" class="px-3 py-1 border text-sm bg-white text-gray-600 hover:bg-gray-50">&rsaquo;</a>
            {{end}}
        </nav>
        {{end}}
        {{if .Sizes}}
        <div class="text-sm text-gray-500">
            Per page:
            {{range .Sizes}}
            {{if .Selected}}<span class="font-semibold text-gray-900">{{.Label}}</span>{{else}}<a href="{{$.SizeURL .Value}}" class="text-indigo-600 hover:underline">{{.Label}}</a>{{end}}
            {{end}}
        </div>
        {{end}}
    </div>
    {{end}}
</div>
{{end}}`,

	"components/range": `{{define "range"}}
<label class="text-sm text-gray-600">From <input type="date" name="from" value="{{.From}}" class="ml-1 border rounded px-2 py-1 text-sm"></label>
<label class="text-sm text-gray-600">To <input type="date" name="to" value="{{.To}}" class="ml-1 border rounded px-2 py-1 text-sm"></label>
{{end}}`,

	"login": `{{define "content"}}
<div class="min-h-screen flex items-center justify-center bg-gray-50 py-12 px-4 sm:px-6 lg:px-8">
    <div class="max-w-md w-full space-y-8">
        <div>
            <h2 class="mt-6 text-center text-3xl font-extrabold text-gray-900">insadmin</h2>
            <p class="mt-2 text-center text-sm text-gray-600">Sign in to the administration console</p>
        </div>
        <form class="mt-8 space-y-6" action="/login" method="POST">
            <div class="rounded-md shadow-sm -space-y-px">
                <div>
                    <label for="username" class="sr-only">Username</label>
                    <input id="username" name="username" type="text" required autocomplete="username"
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-t-md focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm"
                           placeholder="Username">
                </div>
                <div>
                    <label for="password" class="sr-only">Password</label>
                    <input id="password" name="password" type="password" required autocomplete="current-password"
                           class="appearance-none rounded-none relative block w-full px-3 py-2 border border-gray-300 placeholder-gray-500 text-gray-900 rounded-b-md focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 sm:text-sm"
                           placeholder="Password">
                </div>
            </div>
            <button type="submit" class="group relative w-full flex justify-center py-2 px-4 border border-transparent text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">
                Sign in
            </button>
        </form>
    </div>
</div>
{{end}}`,

	"error": `{{define "content"}}
<div class="bg-white shadow rounded-lg p-6">
    <h1 class="text-xl font-semibold text-red-600">{{.Message}}</h1>
    {{if .Detail}}<p class="mt-2 text-sm text-gray-600">{{.Detail}}</p>{{end}}
    <a href="/" class="mt-4 inline-block text-indigo-600 hover:underline">Back to start</a>
</div>
{{end}}`,

	"employee": `{{define "content"}}
<div class="bg-white shadow rounded-lg p-6">
    <h1 class="text-xl font-semibold text-gray-900">Hello {{.Session.DisplayName}}</h1>
    <p class="mt-2 text-sm text-gray-600">This console is for administrators. Employee accounts work in the center application.</p>
    <a href="/logout" class="mt-4 inline-block text-indigo-600 hover:underline">Sign out</a>
</div>
{{end}}`,

	"admin/dashboard": `{{define "content"}}
<div class="mb-6">
    <h1 class="text-2xl font-semibold text-gray-900">Dashboard</h1>
    <p class="mt-1 text-sm text-gray-500">Welcome back, {{.Session.DisplayName}}</p>
</div>
<div class="grid grid-cols-1 gap-5 sm:grid-cols-2 lg:grid-cols-4">
    {{range .Tiles}}
    <a href="{{.Href}}" class="bg-white overflow-hidden shadow rounded-lg px-4 py-5 hover:shadow-md">
        <dt class="text-sm font-medium text-gray-500 truncate">{{.Title}}</dt>
        <dd class="mt-1 text-3xl font-semibold text-gray-900">{{.Value}}</dd>
        {{if .Note}}<p class="mt-1 text-xs text-gray-500">{{.Note}}</p>{{end}}
    </a>
    {{end}}
</div>
<p class="mt-6 text-xs text-gray-400">Console uptime {{.Uptime}}</p>
{{end}}`,

	"assistant/dashboard": `{{define "content"}}
<h1 class="text-2xl font-semibold text-gray-900 mb-6">Welcome, {{.Session.DisplayName}}</h1>
{{if .Tiles}}
<div class="grid grid-cols-1 gap-5 sm:grid-cols-3">
    {{range .Tiles}}
    <a href="{{.Href}}" class="bg-white shadow rounded-lg px-4 py-5 hover:shadow-md">
        <dt class="text-lg font-medium text-gray-900">{{.Title}}</dt>
        <dd class="mt-1 text-sm text-gray-500">{{.Note}}</dd>
    </a>
    {{end}}
</div>
{{else}}
<p class="text-sm text-gray-600">No sections have been granted to your account yet.</p>
{{end}}
{{end}}`,

	"admin/centers": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-semibold text-gray-900">Centers</h1>
    <input type="hidden" id="centers-limit" name="limit" value="{{.Limit}}">
    <input type="search" name="q" value="{{.Query}}" placeholder="Search centers"
           hx-get="/admin/centers" hx-trigger="keyup changed delay:300ms, search" hx-include="#centers-limit"
           hx-target="#results" hx-select="#results" hx-swap="outerHTML" hx-push-url="true"
           class="border rounded px-3 py-1 text-sm w-64">
</div>
<div id="results">
    <div class="bg-white shadow rounded-lg overflow-x-auto">
        <table class="min-w-full divide-y divide-gray-200 text-sm">
            <thead class="bg-gray-50"><tr>
                <th class="px-4 py-2 text-left">Name</th><th class="px-4 py-2 text-left">Code</th>
                <th class="px-4 py-2 text-left">IP</th><th class="px-4 py-2 text-left">City</th>
                <th class="px-4 py-2 text-left">Address</th><th class="px-4 py-2"></th>
            </tr></thead>
            <tbody class="divide-y divide-gray-100">
            {{range .Centers}}
            <tr>
                <td class="px-4 py-2"><input form="center-{{.ID}}" name="name" value="{{.Name}}" class="border rounded px-2 py-1 w-full"></td>
                <td class="px-4 py-2"><input form="center-{{.ID}}" name="code" value="{{.Code}}" class="border rounded px-2 py-1 w-24"></td>
                <td class="px-4 py-2"><input form="center-{{.ID}}" name="ip" value="{{.IP}}" class="border rounded px-2 py-1 w-32"></td>
                <td class="px-4 py-2"><input form="center-{{.ID}}" name="city" value="{{.City}}" class="border rounded px-2 py-1 w-28"></td>
                <td class="px-4 py-2"><input form="center-{{.ID}}" name="address" value="{{.Address}}" class="border rounded px-2 py-1 w-full"></td>
                <td class="px-4 py-2 whitespace-nowrap">
                    <form id="center-{{.ID}}" method="POST" action="/admin/centers/{{.ID}}" class="inline">
                        <button type="submit" class="text-indigo-600 hover:underline">Save</button>
                    </form>
                    <form method="POST" action="/admin/centers/{{.ID}}/delete" class="inline" onsubmit="return confirm('Delete center {{.Name}}?')">
                        <button type="submit" class="ml-2 text-red-600 hover:underline">Delete</button>
                    </form>
                </td>
            </tr>
            {{else}}
            <tr><td colspan="6" class="px-4 py-6 text-center text-gray-500">No centers</td></tr>
            {{end}}
            </tbody>
        </table>
    </div>
    {{template "pagination" .Pager}}
</div>
<form method="POST" action="/admin/centers" class="mt-6 bg-white shadow rounded-lg p-4 flex flex-wrap gap-2 items-end">
    <h2 class="w-full text-lg font-medium">New center</h2>
    <input name="name" placeholder="Name" required class="border rounded px-2 py-1 text-sm">
    <input name="code" placeholder="Code" class="border rounded px-2 py-1 text-sm">
    <input name="ip" placeholder="IPv4" class="border rounded px-2 py-1 text-sm">
    <input name="city" placeholder="City" class="border rounded px-2 py-1 text-sm">
    <input name="address" placeholder="Address" class="border rounded px-2 py-1 text-sm">
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Create</button>
</form>
{{end}}`,

	"admin/employees": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-semibold text-gray-900">Employees</h1>
    <form method="GET" action="/admin/employees" class="flex gap-2"
          hx-get="/admin/employees" hx-trigger="keyup changed delay:300ms from:input, change from:select"
          hx-target="#results" hx-select="#results" hx-swap="outerHTML" hx-push-url="true">
        <select name="center" class="border rounded px-2 py-1 text-sm">
            <option value="all">All centers</option>
            {{range .Centers}}<option value="{{.ID}}" {{if eq $.Center .ID}}selected{{end}}>{{.Name}}</option>{{end}}
        </select>
        <input type="search" name="q" value="{{.Query}}" placeholder="Search" class="border rounded px-3 py-1 text-sm w-56">
    </form>
</div>
<div id="results">
    <div class="bg-white shadow rounded-lg overflow-x-auto">
        <table class="min-w-full divide-y divide-gray-200 text-sm">
            <thead class="bg-gray-50"><tr>
                <th class="px-4 py-2 text-left">Username</th><th class="px-4 py-2 text-left">Name</th>
                <th class="px-4 py-2 text-left">Role</th><th class="px-4 py-2 text-left">Center</th>
                <th class="px-4 py-2 text-left">Last seen</th><th class="px-4 py-2 text-left">Last login IP</th><th class="px-4 py-2"></th>
            </tr></thead>
            <tbody class="divide-y divide-gray-100">
            {{range .Users}}
            <tr>
                <td class="px-4 py-2">{{.Username}}{{if .IsOnline}} <span class="ml-1 inline-block w-2 h-2 rounded-full bg-green-500" title="online"></span>{{end}}</td>
                <td class="px-4 py-2">{{.FullName}}<div class="text-xs text-gray-500">{{.Email}}</div></td>
                <td class="px-4 py-2">{{.Role}}</td>
                <td class="px-4 py-2">{{.CenterName}}</td>
                <td class="px-4 py-2" title="{{formatTime .LastSeenAt}}">{{relTime .LastSeenAt}}</td>
                <td class="px-4 py-2">{{.LastLoginIP}}</td>
                <td class="px-4 py-2">
                    <form method="POST" action="/admin/employees/{{.ID}}/delete" onsubmit="return confirm('Delete {{.Username}}?')">
                        <button type="submit" class="text-red-600 hover:underline">Delete</button>
                    </form>
                </td>
            </tr>
            {{else}}
            <tr><td colspan="7" class="px-4 py-6 text-center text-gray-500">No employees</td></tr>
            {{end}}
            </tbody>
        </table>
    </div>
    {{template "pagination" .Pager}}
</div>
<form method="POST" action="/admin/employees" class="mt-6 bg-white shadow rounded-lg p-4 flex flex-wrap gap-2 items-end">
    <h2 class="w-full text-lg font-medium">New account</h2>
    <input name="username" placeholder="Username" required class="border rounded px-2 py-1 text-sm">
    <input name="password" type="password" placeholder="Password" required class="border rounded px-2 py-1 text-sm">
    <input name="fullName" placeholder="Full name" required class="border rounded px-2 py-1 text-sm">
    <input name="email" type="email" placeholder="Email" required class="border rounded px-2 py-1 text-sm">
    <input name="employeeId" placeholder="Employee id" class="border rounded px-2 py-1 text-sm">
    <select name="role" class="border rounded px-2 py-1 text-sm">
        <option value="employee">Employee</option>
        <option value="admin">Admin</option>
    </select>
    <select name="centerId" class="border rounded px-2 py-1 text-sm">
        <option value="">No center</option>
        {{range .Centers}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
    </select>
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Create</button>
</form>
{{end}}`,

	"payments": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-semibold text-gray-900">Payments</h1>
    <input type="search" name="q" value="{{.Query}}" placeholder="Receipt, policy, payer or phone"
           hx-get="{{.Path}}" hx-trigger="keyup changed delay:300ms, search"
           hx-target="#results" hx-select="#results" hx-swap="outerHTML" hx-push-url="true"
           class="border rounded px-3 py-1 text-sm w-72">
</div>
<div id="results">
    {{if .MatchedTotal}}<p class="mb-2 text-sm text-gray-600">Matched amount: {{money .MatchedTotal}}</p>{{end}}
    <div class="bg-white shadow rounded-lg overflow-x-auto">
        <table class="min-w-full divide-y divide-gray-200 text-sm">
            <thead class="bg-gray-50"><tr>
                <th class="px-4 py-2 text-left">Date</th><th class="px-4 py-2 text-left">Receipt</th>
                <th class="px-4 py-2 text-left">Policy</th><th class="px-4 py-2 text-left">Paid by</th>
                <th class="px-4 py-2 text-left">Phone</th><th class="px-4 py-2 text-right">Amount</th>
                <th class="px-4 py-2 text-left">Center</th><th class="px-4 py-2 text-left">Company</th>
                <th class="px-4 py-2 text-left">Status</th>
            </tr></thead>
            <tbody class="divide-y divide-gray-100">
            {{range .Payments}}
            <tr>
                <td class="px-4 py-2 whitespace-nowrap">{{formatTime .CreatedAt}}</td>
                <td class="px-4 py-2">{{.ReceiptNumber}}</td>
                <td class="px-4 py-2">{{.PolicyNumber}}</td>
                <td class="px-4 py-2">{{.PaidBy}}</td>
                <td class="px-4 py-2">{{.Phone}}</td>
                <td class="px-4 py-2 text-right">{{money .Amount}}</td>
                <td class="px-4 py-2">{{.CenterName}}</td>
                <td class="px-4 py-2">{{.CompanyName}}</td>
                <td class="px-4 py-2">{{.Status}}</td>
            </tr>
            {{else}}
            <tr><td colspan="9" class="px-4 py-6 text-center text-gray-500">No payments</td></tr>
            {{end}}
            </tbody>
        </table>
    </div>
    {{template "pagination" .Pager}}
</div>
{{end}}`,

	"admin/records": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-semibold text-gray-900">Vehicle records</h1>
    <input type="search" name="q" value="{{.Query}}" placeholder="Plate, owner or national id"
           hx-get="/admin/records?tab={{.Tab}}" hx-trigger="keyup changed delay:300ms, search"
           hx-target="#results" hx-select="#results" hx-swap="outerHTML" hx-push-url="true"
           class="border rounded px-3 py-1 text-sm w-72">
</div>
<div class="mb-4 flex space-x-4 text-sm">
    <a href="/admin/records?tab=syrian" class="{{if eq .Tab "syrian"}}font-semibold text-indigo-600{{else}}text-gray-500{{end}}">Syrian</a>
    <a href="/admin/records?tab=foreign" class="{{if eq .Tab "foreign"}}font-semibold text-indigo-600{{else}}text-gray-500{{end}}">Foreign</a>
</div>
<div id="results">
    <div class="bg-white shadow rounded-lg overflow-x-auto">
        <table class="min-w-full divide-y divide-gray-200 text-sm">
            <thead class="bg-gray-50"><tr>
                <th class="px-4 py-2 text-left">Plate</th><th class="px-4 py-2 text-left">Owner</th>
                <th class="px-4 py-2 text-left">National id</th><th class="px-4 py-2 text-left">Model</th>
                <th class="px-4 py-2 text-left">Latest policy</th><th class="px-4 py-2 text-right">Amount</th>
                <th class="px-4 py-2 text-left">Valid until</th>
            </tr></thead>
            <tbody class="divide-y divide-gray-100">
            {{range .Vehicles}}
            <tr>
                <td class="px-4 py-2">{{.PlateNumber}}</td>
                <td class="px-4 py-2">{{.OwnerName}}</td>
                <td class="px-4 py-2">{{.NationalID}}</td>
                <td class="px-4 py-2">{{.Model}}</td>
                {{with .LatestPayment}}
                <td class="px-4 py-2">{{.PolicyNumber}}</td>
                <td class="px-4 py-2 text-right">{{money .Amount}}</td>
                <td class="px-4 py-2">{{formatDate .PolicyEndAt}}</td>
                {{else}}
                <td class="px-4 py-2 text-gray-400" colspan="3">No payment</td>
                {{end}}
            </tr>
            {{else}}
            <tr><td colspan="7" class="px-4 py-6 text-center text-gray-500">No vehicles</td></tr>
            {{end}}
            </tbody>
        </table>
    </div>
    {{template "pagination" .Pager}}
</div>
{{end}}`,

	"finance": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-semibold text-gray-900">Finance by center</h1>
    {{if .Session.IsAdmin}}<a href="/admin/finance/distribution" class="text-sm text-indigo-600 hover:underline">Company distribution</a>{{end}}
</div>
<form method="GET" action="{{.Path}}" class="mb-4 flex flex-wrap gap-3 items-end">
    {{template "range" .Filter.Range}}
    <select name="centerId" class="border rounded px-2 py-1 text-sm">
        <option value="all">All centers</option>
        {{range .Centers}}<option value="{{.ID}}" {{if eq $.Filter.CenterID .ID}}selected{{end}}>{{.Name}}</option>{{end}}
    </select>
    <select name="source" class="border rounded px-2 py-1 text-sm">
        <option value="breakdown" {{if eq .Source "breakdown"}}selected{{end}}>Breakdown</option>
        <option value="live" {{if eq .Source "live"}}selected{{end}}>Live totals</option>
        <option value="saved" {{if eq .Source "saved"}}selected{{end}}>Saved totals</option>
    </select>
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Apply</button>
</form>
<div class="bg-white shadow rounded-lg overflow-x-auto">
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr>
            <th class="px-3 py-2 text-left">Center</th><th class="px-3 py-2 text-right">Payments</th>
            <th class="px-3 py-2 text-right">Total</th><th class="px-3 py-2 text-right">Martyr</th>
            <th class="px-3 py-2 text-right">War</th><th class="px-3 py-2 text-right">Stamp</th>
            <th class="px-3 py-2 text-right">Ages</th><th class="px-3 py-2 text-right">Local</th>
            <th class="px-3 py-2 text-right">Proposed</th><th class="px-3 py-2 text-right">State share</th>
            <th class="px-3 py-2 text-right">Federation</th><th class="px-3 py-2 text-right">Company share</th>
        </tr></thead>
        <tbody class="divide-y divide-gray-100">
        {{range .Report.Rows}}
        <tr>
            <td class="px-3 py-2">{{.CenterName}}{{if .CenterCode}} <span class="text-xs text-gray-400">{{.CenterCode}}</span>{{end}}</td>
            <td class="px-3 py-2 text-right">{{count .PaymentsCount}}</td>
            <td class="px-3 py-2 text-right">{{money .TotalAmount}}</td>
            <td class="px-3 py-2 text-right">{{money .MartyrTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .WarTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .StampTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .AgesTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .LocalTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .ProposedTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .StateShareTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .FederationTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .CompanyShareTotal}}</td>
        </tr>
        {{else}}
        <tr><td colspan="12" class="px-4 py-6 text-center text-gray-500">No data for this range</td></tr>
        {{end}}
        </tbody>
        {{with .Report.Grand}}
        <tfoot class="bg-gray-50 font-semibold"><tr>
            <td class="px-3 py-2">Grand total</td>
            <td class="px-3 py-2 text-right">{{count .PaymentsCount}}</td>
            <td class="px-3 py-2 text-right">{{money .TotalAmount}}</td>
            <td class="px-3 py-2 text-right">{{money .MartyrTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .WarTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .StampTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .AgesTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .LocalTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .ProposedTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .StateShareTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .FederationTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .CompanyShareTotal}}</td>
        </tr></tfoot>
        {{end}}
    </table>
</div>
{{if .Session.IsAdmin}}
<form method="POST" action="/admin/finance/rebuild" class="mt-6 bg-white shadow rounded-lg p-4 flex flex-wrap gap-3 items-end">
    <h2 class="w-full text-lg font-medium">Rebuild saved totals</h2>
    {{template "range" .Filter.Range}}
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Rebuild</button>
</form>
{{end}}
{{end}}`,

	"admin/distribution": `{{define "content"}}
<h1 class="text-2xl font-semibold text-gray-900 mb-4">Distribution by company</h1>
<form method="GET" action="/admin/finance/distribution" class="mb-4 flex flex-wrap gap-3 items-end">
    {{template "range" .Filter.Range}}
    <select name="centerId" class="border rounded px-2 py-1 text-sm">
        <option value="all">All centers</option>
        {{range .Centers}}<option value="{{.ID}}" {{if eq $.Filter.CenterID .ID}}selected{{end}}>{{.Name}}</option>{{end}}
    </select>
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Apply</button>
</form>
<div class="bg-white shadow rounded-lg overflow-x-auto">
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr>
            <th class="px-3 py-2 text-left">Company</th><th class="px-3 py-2 text-right">Payments</th>
            <th class="px-3 py-2 text-right">Total</th><th class="px-3 py-2 text-right">Company share</th>
            <th class="px-3 py-2 text-right">State share</th><th class="px-3 py-2 text-right">Federation</th>
        </tr></thead>
        <tbody class="divide-y divide-gray-100">
        {{range .Report.Rows}}
        <tr>
            <td class="px-3 py-2">{{.CompanyName}}</td>
            <td class="px-3 py-2 text-right">{{count .PaymentsCount}}</td>
            <td class="px-3 py-2 text-right">{{money .TotalAmount}}</td>
            <td class="px-3 py-2 text-right">{{money .CompanyShareTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .StateShareTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .FederationTotal}}</td>
        </tr>
        {{else}}
        <tr><td colspan="6" class="px-4 py-6 text-center text-gray-500">No data for this range</td></tr>
        {{end}}
        </tbody>
        {{with .Report.Grand}}
        <tfoot class="bg-gray-50 font-semibold"><tr>
            <td class="px-3 py-2">Grand total</td>
            <td class="px-3 py-2 text-right">{{count .PaymentsCount}}</td>
            <td class="px-3 py-2 text-right">{{money .TotalAmount}}</td>
            <td class="px-3 py-2 text-right">{{money .CompanyShareTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .StateShareTotal}}</td>
            <td class="px-3 py-2 text-right">{{money .FederationTotal}}</td>
        </tr></tfoot>
        {{end}}
    </table>
</div>
{{end}}`,

	"admin/companies": `{{define "content"}}
<h1 class="text-2xl font-semibold text-gray-900 mb-4">Insurance companies</h1>
<form method="GET" action="/admin/companies" class="mb-4 flex flex-wrap gap-3 items-end">
    {{template "range" .Range}}
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Apply</button>
</form>
{{if .ShareWarning}}
<div class="mb-4 rounded-md bg-yellow-50 p-4 text-sm text-yellow-800">Active shares add up to {{pct .TotalShare}}, not 100%.</div>
{{end}}
<div class="bg-white shadow rounded-lg overflow-x-auto">
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr>
            <th class="px-3 py-2 text-left">Company</th><th class="px-3 py-2 text-right">Share</th>
            <th class="px-3 py-2 text-left">Active</th><th class="px-3 py-2 text-right">Contracts</th>
            <th class="px-3 py-2 text-right">Amount</th><th class="px-3 py-2"></th>
        </tr></thead>
        <tbody class="divide-y divide-gray-100">
        {{range .Rows}}
        <tr>
            {{if .Known}}
            <td class="px-3 py-2"><input form="company-{{.CompanyID}}" name="name" value="{{.Name}}" class="border rounded px-2 py-1"></td>
            <td class="px-3 py-2 text-right"><input form="company-{{.CompanyID}}" name="sharePercent" value="{{.SharePercent}}" class="border rounded px-2 py-1 w-20 text-right"></td>
            <td class="px-3 py-2"><input form="company-{{.CompanyID}}" type="checkbox" name="isActive" value="1" {{if .IsActive}}checked{{end}}></td>
            <td class="px-3 py-2 text-right"><a href="/admin/companies/{{.CompanyID}}" class="text-indigo-600 hover:underline">{{count .ContractsCount}}</a></td>
            <td class="px-3 py-2 text-right">{{money .TotalAmount}}</td>
            <td class="px-3 py-2 whitespace-nowrap">
                <form id="company-{{.CompanyID}}" method="POST" action="/admin/companies/{{.CompanyID}}" class="inline">
                    <button type="submit" class="text-indigo-600 hover:underline">Save</button>
                </form>
                <form method="POST" action="/admin/companies/{{.CompanyID}}/delete" class="inline" onsubmit="return confirm('Delete {{.Name}}?')">
                    <button type="submit" class="ml-2 text-red-600 hover:underline">Delete</button>
                </form>
            </td>
            {{else}}
            <td class="px-3 py-2 text-gray-500">{{.Name}}</td>
            <td class="px-3 py-2 text-right">{{pct .SharePercent}}</td>
            <td class="px-3 py-2">no</td>
            <td class="px-3 py-2 text-right">{{count .ContractsCount}}</td>
            <td class="px-3 py-2 text-right">{{money .TotalAmount}}</td>
            <td></td>
            {{end}}
        </tr>
        {{else}}
        <tr><td colspan="6" class="px-4 py-6 text-center text-gray-500">No companies</td></tr>
        {{end}}
        </tbody>
        <tfoot class="bg-gray-50">
            <tr><td class="px-3 py-2 font-semibold">Total active share</td><td class="px-3 py-2 text-right font-semibold">{{pct .TotalShare}}</td><td colspan="4"></td></tr>
            <tr><td class="px-3 py-2">Unassigned</td><td></td><td></td>
                <td class="px-3 py-2 text-right">{{count .Unassigned.ContractsCount}}</td>
                <td class="px-3 py-2 text-right">{{money .Unassigned.TotalAmount}}</td><td></td></tr>
        </tfoot>
    </table>
</div>
<form method="POST" action="/admin/companies" class="mt-6 bg-white shadow rounded-lg p-4 flex flex-wrap gap-2 items-end">
    <h2 class="w-full text-lg font-medium">New company</h2>
    <input name="name" placeholder="Name" required class="border rounded px-2 py-1 text-sm">
    <input name="sharePercent" placeholder="Share %" class="border rounded px-2 py-1 text-sm w-24">
    <label class="text-sm"><input type="checkbox" name="isActive" value="1" checked> Active</label>
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Create</button>
</form>
{{end}}`,

	"admin/company_payments": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-semibold text-gray-900">{{.CompanyName}}</h1>
    <a href="/admin/companies" class="text-sm text-indigo-600 hover:underline">All companies</a>
</div>
<form method="GET" action="/admin/companies/{{.CompanyID}}" class="mb-4 flex flex-wrap gap-3 items-end">
    {{template "range" .Range}}
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Apply</button>
</form>
{{with .Stats}}<p class="mb-2 text-sm text-gray-600">{{count .ContractsCount}} contracts, {{money .TotalAmount}} total</p>{{end}}
<div class="bg-white shadow rounded-lg overflow-x-auto">
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr>
            <th class="px-4 py-2 text-left">Date</th><th class="px-4 py-2 text-left">Policy</th>
            <th class="px-4 py-2 text-left">Receipt</th><th class="px-4 py-2 text-left">Paid by</th>
            <th class="px-4 py-2 text-right">Amount</th>
        </tr></thead>
        <tbody class="divide-y divide-gray-100">
        {{range .Payments}}
        <tr>
            <td class="px-4 py-2">{{formatTime .PaidAt}}</td>
            <td class="px-4 py-2">{{.PolicyNumber}}</td>
            <td class="px-4 py-2">{{.ReceiptNumber}}</td>
            <td class="px-4 py-2">{{.PaidBy}}</td>
            <td class="px-4 py-2 text-right">{{money .Amount}}</td>
        </tr>
        {{else}}
        <tr><td colspan="5" class="px-4 py-6 text-center text-gray-500">No payments</td></tr>
        {{end}}
        </tbody>
    </table>
</div>
{{template "pagination" .Pager}}
{{end}}`,

	"admin/assistants": `{{define "content"}}
<h1 class="text-2xl font-semibold text-gray-900 mb-4">Assistant admins</h1>
<div class="bg-white shadow rounded-lg overflow-x-auto">
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr>
            <th class="px-3 py-2 text-left">Username</th><th class="px-3 py-2 text-left">Name</th>
            <th class="px-3 py-2 text-left">Permissions</th><th class="px-3 py-2 text-left">Active</th><th class="px-3 py-2"></th>
        </tr></thead>
        <tbody class="divide-y divide-gray-100">
        {{range $a := .Assistants}}
        <tr>
            <td class="px-3 py-2">{{$a.Username}}<div class="text-xs text-gray-500">{{$a.Email}}</div></td>
            <td class="px-3 py-2"><input form="assistant-{{$a.ID}}" name="fullName" value="{{$a.FullName}}" class="border rounded px-2 py-1"></td>
            <td class="px-3 py-2">
                {{range $.AllPermissions}}
                <label class="mr-2 whitespace-nowrap"><input form="assistant-{{$a.ID}}" type="checkbox" name="permissions" value="{{.}}" {{if hasPerm $a.Permissions .}}checked{{end}}> {{.}}</label>
                {{end}}
            </td>
            <td class="px-3 py-2"><input form="assistant-{{$a.ID}}" type="checkbox" name="isActive" value="1" {{if $a.IsActive}}checked{{end}}></td>
            <td class="px-3 py-2">
                <form id="assistant-{{$a.ID}}" method="POST" action="/admin/assistants/{{$a.ID}}">
                    <button type="submit" class="text-indigo-600 hover:underline">Save</button>
                </form>
            </td>
        </tr>
        {{else}}
        <tr><td colspan="5" class="px-4 py-6 text-center text-gray-500">No assistant admins</td></tr>
        {{end}}
        </tbody>
    </table>
</div>
<form method="POST" action="/admin/assistants" class="mt-6 bg-white shadow rounded-lg p-4 flex flex-wrap gap-2 items-end">
    <h2 class="w-full text-lg font-medium">New assistant admin</h2>
    <input name="username" placeholder="Username" required class="border rounded px-2 py-1 text-sm">
    <input name="password" type="password" placeholder="Password" required class="border rounded px-2 py-1 text-sm">
    <input name="fullName" placeholder="Full name" class="border rounded px-2 py-1 text-sm">
    <input name="email" type="email" placeholder="Email" class="border rounded px-2 py-1 text-sm">
    <div class="w-full text-sm">
        {{range .AllPermissions}}<label class="mr-3"><input type="checkbox" name="permissions" value="{{.}}"> {{.}}</label>{{end}}
    </div>
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Create</button>
</form>
{{end}}`,

	"admin/pricing": `{{define "content"}}
<div class="flex items-center justify-between mb-4">
    <h1 class="text-2xl font-semibold text-gray-900">Pricing</h1>
    <form method="POST" action="/admin/pricing/reset" onsubmit="return confirm('Reset every tariff to its default?')">
        <button type="submit" class="text-sm text-red-600 hover:underline">Reset to defaults</button>
    </form>
</div>
<div class="mb-4 flex space-x-4 text-sm">
    <a href="/admin/pricing?scope=internal" class="{{if eq .Scope "internal"}}font-semibold text-indigo-600{{else}}text-gray-500{{end}}">Internal</a>
    <a href="/admin/pricing?scope=border" class="{{if eq .Scope "border"}}font-semibold text-indigo-600{{else}}text-gray-500{{end}}">Border</a>
    {{if .Config.Version}}<span class="text-gray-400">version {{.Config.Version}}</span>{{end}}
</div>
<form method="GET" action="/admin/pricing" class="mb-4 flex flex-wrap gap-2 items-end">
    <input type="hidden" name="scope" value="{{.Scope}}">
    <input type="search" name="q" value="{{.Filter.Q}}" placeholder="Search" class="border rounded px-3 py-1 text-sm">
    <select name="group" class="border rounded px-2 py-1 text-sm">
        <option value="all">All groups</option>
        {{range .Groups}}<option value="{{.}}" {{if eq $.Filter.Group .}}selected{{end}}>{{.}}</option>{{end}}
    </select>
    <select name="duration" class="border rounded px-2 py-1 text-sm">
        <option value="all">All durations</option>
        {{range .Durations}}<option value="{{.}}" {{if eq $.Filter.Duration .}}selected{{end}}>{{.}}</option>{{end}}
    </select>
    <button type="submit" class="px-3 py-1 border rounded text-sm">Filter</button>
</form>
<form method="POST" action="/admin/pricing/percent" class="mb-4 flex flex-wrap gap-2 items-end">
    <input type="hidden" name="scope" value="{{.Scope}}">
    <input type="hidden" name="q" value="{{.Filter.Q}}">
    <input type="hidden" name="group" value="{{.Filter.Group}}">
    <input type="hidden" name="duration" value="{{.Filter.Duration}}">
    <label class="text-sm">Change listed rows by <input name="percent" value="{{if .Percent}}{{.Percent}}{{end}}" class="border rounded px-2 py-1 w-20"> %</label>
    <button type="submit" name="action" value="preview" class="px-3 py-1 border rounded text-sm">Preview</button>
    {{if .Preview}}<button type="submit" name="action" value="apply" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Apply to {{len .Preview}} rows</button>{{end}}
</form>
{{if .Preview}}
<div class="mb-6 bg-white shadow rounded-lg overflow-x-auto">
    <p class="px-4 pt-3 text-sm text-gray-600">Preview of {{.Percent}}%: {{.Changed}} rows change. Nothing is saved until you apply.</p>
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr><th class="px-3 py-2 text-left">Key</th><th class="px-3 py-2 text-right">Current</th><th class="px-3 py-2 text-right">New</th></tr></thead>
        <tbody class="divide-y divide-gray-100">
        {{range .Preview}}<tr><td class="px-3 py-2">{{.Key}}</td><td class="px-3 py-2 text-right">{{money .Value}}</td><td class="px-3 py-2 text-right font-semibold">{{money .NewValue}}</td></tr>{{end}}
        </tbody>
    </table>
</div>
{{end}}
<div class="bg-white shadow rounded-lg overflow-x-auto">
    <table class="min-w-full divide-y divide-gray-200 text-sm">
        <thead class="bg-gray-50"><tr>
            <th class="px-3 py-2 text-left">Key</th><th class="px-3 py-2 text-left">Label</th>
            <th class="px-3 py-2 text-left">Group</th><th class="px-3 py-2 text-left">Duration</th>
            <th class="px-3 py-2 text-right">Value</th><th class="px-3 py-2"></th>
        </tr></thead>
        <tbody class="divide-y divide-gray-100">
        {{range .Rows}}
        <tr>
            <td class="px-3 py-2 font-mono">{{.Key}}</td>
            {{if .Fixed}}
            <td class="px-3 py-2">{{.Label}}</td><td class="px-3 py-2">{{.Group}}</td><td class="px-3 py-2">{{.Duration}}</td>
            {{else}}
            <td class="px-3 py-2"><input form="price-{{.Key}}" name="label" value="{{.Label}}" class="border rounded px-2 py-1"></td>
            <td class="px-3 py-2"><input form="price-{{.Key}}" name="group" value="{{.Group}}" class="border rounded px-2 py-1 w-24"></td>
            <td class="px-3 py-2"><input form="price-{{.Key}}" name="duration" value="{{.Duration}}" class="border rounded px-2 py-1 w-16"></td>
            {{end}}
            <td class="px-3 py-2 text-right"><input form="price-{{.Key}}" name="value" value="{{.Value}}" class="border rounded px-2 py-1 w-28 text-right"></td>
            <td class="px-3 py-2 whitespace-nowrap">
                <form id="price-{{.Key}}" method="POST" action="/admin/pricing/item" class="inline">
                    <input type="hidden" name="scope" value="{{$.Scope}}">
                    <input type="hidden" name="key" value="{{.Key}}">
                    <input type="hidden" name="fq" value="{{$.Filter.Q}}">
                    <input type="hidden" name="fgroup" value="{{$.Filter.Group}}">
                    <input type="hidden" name="fduration" value="{{$.Filter.Duration}}">
                    {{if .Fixed}}
                    <input type="hidden" name="label" value="{{.Label}}">
                    <input type="hidden" name="group" value="{{.Group}}">
                    <input type="hidden" name="duration" value="{{.Duration}}">
                    {{end}}
                    <button type="submit" class="text-indigo-600 hover:underline">Save</button>
                </form>
                <form method="POST" action="/admin/pricing/item/delete" class="inline" onsubmit="return confirm('Delete {{.Key}}?')">
                    <input type="hidden" name="scope" value="{{$.Scope}}">
                    <input type="hidden" name="key" value="{{.Key}}">
                    <button type="submit" class="ml-2 text-red-600 hover:underline">Delete</button>
                </form>
            </td>
        </tr>
        {{else}}
        <tr><td colspan="6" class="px-4 py-6 text-center text-gray-500">No tariffs match</td></tr>
        {{end}}
        </tbody>
    </table>
</div>
<form method="POST" action="/admin/pricing/item" class="mt-6 bg-white shadow rounded-lg p-4 flex flex-wrap gap-2 items-end">
    <h2 class="w-full text-lg font-medium">Add tariff</h2>
    <input type="hidden" name="scope" value="{{.Scope}}">
    <input type="hidden" name="mode" value="add">
    <input name="key" placeholder="key" required class="border rounded px-2 py-1 text-sm font-mono">
    <input name="value" placeholder="Value" required class="border rounded px-2 py-1 text-sm w-28">
    <input name="label" placeholder="Label" class="border rounded px-2 py-1 text-sm">
    <input name="group" placeholder="Group" class="border rounded px-2 py-1 text-sm">
    <input name="duration" placeholder="Duration" class="border rounded px-2 py-1 text-sm w-20">
    <label class="text-sm"><input type="checkbox" name="replace" value="1"> Replace if it exists</label>
    <button type="submit" class="px-3 py-1 bg-indigo-600 text-white rounded text-sm">Add</button>
</form>
{{end}}`,

	"reports": `{{define "content"}}
<h1 class="text-2xl font-semibold text-gray-900 mb-4">Reports</h1>
<form method="GET" action="{{.Path}}" class="mb-4 flex flex-wrap gap-3 items-end">
    {{template "range" .Range}}
    <button type="submit" class="px-3 py-1 border rounded text-sm">Set range</button>
</form>
<div class="bg-white shadow rounded-lg divide-y">
    {{range $e := .Entities}}
    <div class="px-4 py-3 flex items-center justify-between">
        <span class="font-medium capitalize">{{$e}}</span>
        <span class="space-x-3 text-sm">
            {{range $.Formats}}<a href="/exports/{{$e}}?format={{.}}{{if $.Range.From}}&from={{$.Range.From}}{{end}}{{if $.Range.To}}&to={{$.Range.To}}{{end}}" class="text-indigo-600 hover:underline">{{upper .}}</a>{{end}}
        </span>
    </div>
    {{end}}
</div>
{{end}}`,
}

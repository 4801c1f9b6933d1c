package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

// strip renders the page buttons of w, e.g. "< 1 ... [5] 6 7 8 9 ... 10 >".
// It is empty when the control is hidden or in show-all mode.
func strip(w paging.Window) string {
	if !w.Visible || w.All() {
		return ""
	}
	var parts []string
	if w.HasPrev {
		parts = append(parts, "<")
	}
	for _, it := range w.Pages {
		switch {
		case it.Ellipsis:
			parts = append(parts, "...")
		case it.Current:
			parts = append(parts, fmt.Sprintf("[%d]", it.Number))
		default:
			parts = append(parts, fmt.Sprint(it.Number))
		}
	}
	if w.HasNext {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}

// printFooter writes the strip and the "Showing" label below a table.
func printFooter(out io.Writer, w paging.Window) {
	fmt.Fprintln(out)
	if s := strip(w); s != "" {
		fmt.Fprintln(out, s)
	}
	fmt.Fprintln(out, labeler.Showing(w))
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printCenters(out io.Writer, centers []model.Center) {
	fmt.Fprintf(out, "%-12s %-30s %-10s %-16s %s\n", "ID", "NAME", "CODE", "CITY", "IP")
	for _, c := range centers {
		fmt.Fprintf(out, "%-12s %-30s %-10s %-16s %s\n", truncate(c.ID, 12), truncate(c.Name, 30), c.Code, truncate(c.City, 16), c.IP)
	}
}

func printUsers(out io.Writer, users []model.User) {
	fmt.Fprintf(out, "%-12s %-18s %-26s %-10s %s\n", "ID", "USERNAME", "NAME", "ROLE", "CENTER")
	for _, u := range users {
		fmt.Fprintf(out, "%-12s %-18s %-26s %-10s %s\n", truncate(u.ID, 12), truncate(u.Username, 18), truncate(u.FullName, 26), u.Role, u.CenterName)
	}
}

func printPayments(out io.Writer, payments []model.Payment) {
	fmt.Fprintf(out, "%-16s %-24s %14s %-10s %s\n", "RECEIPT", "PAID BY", "AMOUNT", "STATUS", "CENTER")
	for _, p := range payments {
		fmt.Fprintf(out, "%-16s %-24s %14s %-10s %s\n", p.ReceiptNumber, truncate(p.PaidBy, 24), money(p.Amount), p.Status, p.CenterName)
	}
}

func printVehicles(out io.Writer, vehicles []model.Vehicle) {
	fmt.Fprintf(out, "%-14s %-26s %-20s %s\n", "PLATE", "OWNER", "MODEL", "KIND")
	for _, v := range vehicles {
		fmt.Fprintf(out, "%-14s %-26s %-20s %s\n", v.PlateNumber, truncate(v.OwnerName, 26), truncate(v.Model, 20), v.Kind)
	}
}

func printCompanies(out io.Writer, companies []model.InsuranceCompany) {
	fmt.Fprintf(out, "%-12s %-30s %8s %s\n", "ID", "NAME", "SHARE", "ACTIVE")
	for _, c := range companies {
		fmt.Fprintf(out, "%-12s %-30s %7.2f%% %t\n", truncate(c.ID, 12), truncate(c.Name, 30), c.SharePercent, c.IsActive)
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/insadmin/internal/fetch"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

// listOptions are the paging and filter flags shared by list and browse.
type listOptions struct {
	page  int
	limit int
	all   bool
	q     string
	kind  string
}

func (o listOptions) size() int {
	if o.all {
		return paging.PageSizeAll
	}
	return o.limit
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:       "list <centers|employees|payments|vehicles|companies>",
		Short:     "List one page of a collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"centers", "employees", "payments", "vehicles", "companies"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.limit <= 0 && !opts.all {
				return fmt.Errorf("--limit must be positive")
			}
			token, err := requireToken()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "centers":
				return listCenters(ctx, out, cmd.ErrOrStderr(), token, opts)
			case "employees":
				users, err := client.ListUsers(ctx, token)
				if err != nil {
					return fmt.Errorf("list employees: %w", err)
				}
				users = paging.Filter(users, func(u model.User) bool {
					return containsAny(opts.q, u.Username, u.FullName, u.Email, u.EmployeeID)
				})
				page, w := clientPage(users, opts)
				printUsers(out, page)
				printFooter(out, w)
			case "payments":
				payments, err := client.ListPayments(ctx, token)
				if err != nil {
					return fmt.Errorf("list payments: %w", err)
				}
				payments = paging.Filter(payments, func(p model.Payment) bool { return p.Matches(opts.q) })
				page, w := clientPage(payments, opts)
				printPayments(out, page)
				printFooter(out, w)
			case "vehicles":
				vehicles, err := client.ListVehicles(ctx, token, model.ParseVehicleKind(opts.kind))
				if err != nil {
					return fmt.Errorf("list vehicles: %w", err)
				}
				vehicles = paging.Filter(vehicles, func(v model.Vehicle) bool { return v.Matches(opts.q) })
				page, w := clientPage(vehicles, opts)
				printVehicles(out, page)
				printFooter(out, w)
			case "companies":
				companies, err := client.ListCompanies(ctx, token)
				if err != nil {
					return fmt.Errorf("list companies: %w", err)
				}
				companies = paging.Filter(companies, func(c model.InsuranceCompany) bool {
					return containsAny(opts.q, c.Name)
				})
				page, w := clientPage(companies, opts)
				printCompanies(out, page)
				printFooter(out, w)
			default:
				return fmt.Errorf("unknown collection %q", args[0])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "Page size")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Fetch every page")
	cmd.Flags().StringVar(&opts.q, "q", "", "Search text")
	cmd.Flags().StringVar(&opts.kind, "kind", string(model.VehicleSyrian), "Vehicle register (syrian, foreign)")
	return cmd
}

// listCenters fetches centers through the server-paged adapter. A partial
// show-all result is printed with a warning rather than failing.
func listCenters(ctx context.Context, out, errOut io.Writer, token string, opts listOptions) error {
	adapter := fetch.NewAdapter("centers", client.CenterFetcher(token), logger)
	params := url.Values{}
	if q := strings.TrimSpace(opts.q); q != "" {
		params.Set("q", q)
	}

	if opts.all {
		res := adapter.FetchAll(ctx, params)
		if res.Err != nil && !res.Partial {
			return fmt.Errorf("list centers: %w", res.Err)
		}
		printCenters(out, res.Items)
		printFooter(out, res.Meta.Window(paging.PageSizeAll))
		if res.Partial {
			fmt.Fprintf(errOut, "warning: partial result after %d chunks, total may be under-reported: %v\n", res.Chunks, res.Err)
		}
		return nil
	}

	p, err := adapter.FetchPage(ctx, params, opts.page, opts.limit)
	if err != nil {
		return fmt.Errorf("list centers: %w", err)
	}
	printCenters(out, p.Items)
	printFooter(out, p.Meta.Window(opts.limit))
	return nil
}

// clientPage slices a fully loaded collection for the requested page,
// clamping out-of-range pages.
func clientPage[T any](items []T, opts listOptions) ([]T, paging.Window) {
	w := paging.ComputeWindow(opts.page, opts.size(), len(items))
	return paging.Slice(items, w.Page, opts.size()), w
}

func containsAny(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

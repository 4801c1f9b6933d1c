package cli

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/insadmin/internal/debounce"
	"github.com/me/insadmin/internal/fetch"
	"github.com/me/insadmin/internal/listview"
	"github.com/me/insadmin/internal/paging"
	"github.com/me/insadmin/pkg/model"
)

const browseHelp = "commands: n (next), p (prev), g N (go to page), s SIZE|all (page size), /TEXT (search), r (reload), q (quit)"

func newBrowseCmd() *cobra.Command {
	var (
		limit int
		q     string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:       "browse centers",
		Short:     "Page through centers interactively",
		Long:      "Reads one command per line from stdin. Commands arriving within the delay are coalesced into a single fetch.\n" + browseHelp,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"centers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != "centers" {
				return fmt.Errorf("browse supports only centers, got %q", args[0])
			}
			token, err := requireToken()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var mu sync.Mutex
			view := listview.New(cmd.Context(), "centers",
				fetch.NewAdapter("centers", client.CenterFetcher(token), logger),
				listview.Criteria{Query: q, Filters: url.Values{}, Page: 1, PageSize: limit},
				logger,
				listview.WithDelay[model.Center](delay),
				listview.WithOnCommit(func(s listview.Snapshot[model.Center]) {
					mu.Lock()
					defer mu.Unlock()
					printSnapshot(out, s)
				}),
			)
			defer view.Close()

			fmt.Fprintln(out, browseHelp)
			view.Reload()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "q" || line == "quit" {
					return nil
				}
				if err := browseCommand(view, line); err != nil {
					mu.Lock()
					fmt.Fprintf(out, "%v\n", err)
					mu.Unlock()
				}
			}
			// Input ended with a change still pending: show its result.
			if view.Snapshot().State != listview.Idle {
				view.Reload()
			}
			return scanner.Err()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().StringVar(&q, "q", "", "Initial search text")
	cmd.Flags().DurationVar(&delay, "delay", debounce.DefaultDelay, "Quiet period before a change is fetched")
	return cmd
}

// browseCommand applies one input line to the view.
func browseCommand(view *listview.View[model.Center], line string) error {
	cur := view.Criteria()
	switch {
	case line == "":
	case line == "n":
		view.SetPage(cur.Page + 1)
	case line == "p":
		view.SetPage(cur.Page - 1)
	case line == "r":
		view.Reload()
	case strings.HasPrefix(line, "/"):
		view.SetQuery(strings.TrimSpace(line[1:]))
	case strings.HasPrefix(line, "g "):
		n, err := strconv.Atoi(strings.TrimSpace(line[2:]))
		if err != nil {
			return fmt.Errorf("invalid page %q", line[2:])
		}
		view.SetPage(n)
	case strings.HasPrefix(line, "s "):
		arg := strings.TrimSpace(line[2:])
		size := paging.ParseSize(arg, 0, paging.CenterSizes)
		if size == 0 {
			return fmt.Errorf("invalid size %q (one of 10, 20, 50, 100, 200, all)", arg)
		}
		view.SetPageSize(size)
	default:
		return fmt.Errorf("unknown command %q; %s", line, browseHelp)
	}
	return nil
}

func printSnapshot(out io.Writer, s listview.Snapshot[model.Center]) {
	header := fmt.Sprintf("-- page %d, size %s", s.Window.Page, paging.SizeLabel(s.Criteria.PageSize))
	if s.Criteria.Query != "" {
		header += fmt.Sprintf(", q=%q", s.Criteria.Query)
	}
	fmt.Fprintln(out, header)
	if s.Err != nil && !s.Partial {
		fmt.Fprintf(out, "error: %v\n", s.Err)
		return
	}
	printCenters(out, s.Items)
	printFooter(out, s.Window)
	if s.Partial {
		fmt.Fprintf(out, "warning: partial result, total may be under-reported: %v\n", s.Err)
	}
}

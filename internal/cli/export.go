package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format, outPath, from, to, center string

	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Download a report (payments, finance, centers, employees, companies)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := requireToken()
			if err != nil {
				return err
			}

			filters := url.Values{}
			filters.Set("from", from)
			filters.Set("to", to)
			filters.Set("centerId", center)

			dl, err := client.Export(cmd.Context(), token, args[0], format, filters)
			if err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			defer dl.Body.Close()

			if outPath == "" {
				outPath = filepath.Base(dl.Filename)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			n, err := io.Copy(f, dl.Body)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(outPath)
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			logger.Info("export saved", "entity", args[0], "format", format, "bytes", n, "path", outPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", humanize.Bytes(uint64(n)), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "Report format (pdf, xlsx, csv)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: the server's filename)")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&center, "center", "", "Center id")
	return cmd
}

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/internal/config"
	"github.com/me/insadmin/internal/logging"
	"github.com/me/insadmin/internal/paging"
)

var (
	flagAPI       string
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger  *slog.Logger
	client  *apiclient.Client
	labeler *paging.Labeler
)

// defaultAPI returns the default remote API root, checking INSADMIN_API first.
func defaultAPI() string {
	if s := os.Getenv("INSADMIN_API"); s != "" {
		return s
	}
	return config.DefaultServerConfig().APIBaseURL
}

// NewRootCmd creates the root cobra command for the insadmin CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "insadmin",
		Short: "insadmin - back-office console for vehicle insurance",
		Long:  "insadmin lists, exports and reprices the records of the vehicle-insurance back office.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)

			cfg := config.DefaultServerConfig()
			if flagConfig != "" {
				loaded, err := config.Load(flagConfig)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// An explicit --api or INSADMIN_API wins over the config file.
			if flagConfig == "" || cmd.Flags().Changed("api") || os.Getenv("INSADMIN_API") != "" {
				cfg.APIBaseURL = flagAPI
			}
			if cfg.APIBaseURL == "" {
				return fmt.Errorf("no remote API configured (use --api or INSADMIN_API)")
			}

			client = apiclient.New(apiclient.Config{
				BaseURL:         cfg.APIBaseURL,
				Timeout:         cfg.RequestTimeout,
				BreakerFailures: cfg.BreakerFailures,
				BreakerTimeout:  cfg.BreakerTimeout,
			}, logger)
			labeler = paging.NewLabeler(cfg.Locale)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagAPI, "api", defaultAPI(), "Remote API root URL (or INSADMIN_API env)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newListCmd(),
		newBrowseCmd(),
		newExportCmd(),
		newPricingCmd(),
	)

	return root
}

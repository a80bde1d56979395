package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/client"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/config"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/ui"
)

var (
	configFile string
	apiURL     string
	jsonOutput bool
	verbose    bool

	cfg     *config.Config
	logger  = zap.NewNop()
	gateway client.Gateway
)

var rootCmd = &cobra.Command{
	Use:           "rescuedogs <command>",
	Short:         "Browse adoptable rescue dogs from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if apiURL != "" {
			c.APIURL = apiURL
		}
		cfg = c

		l, err := cfg.Logger(verbose)
		if err != nil {
			return err
		}
		logger = l

		gateway = client.NewHTTPClient(cfg.APIURL,
			client.WithToken(cfg.APIToken),
			client.WithTimeout(cfg.RequestTimeout),
			client.WithLogger(logger.Named("api")),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: search ., $HOME/.rescuedogs, /etc/rescuedogs)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides api.url)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: "listing", Title: "Listing:"},
		&cobra.Group{ID: "views", Title: "Views:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Listing
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(orgsCmd)

	// Views
	rootCmd.AddCommand(viewsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.NewStyles(ui.ShouldUseColor(os.Stderr)).Error("Error: "+err.Error()))
		os.Exit(1)
	}
}

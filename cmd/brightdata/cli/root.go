// Package cli implements the brightdata command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/brightdata/datasets"
	"github.com/deepnoodle-ai/brightdata/slogger"
	"github.com/deepnoodle-ai/brightdata/unlocker"
	"github.com/spf13/cobra"
)

var (
	apiToken string
	zone     string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "brightdata",
	Short: "Search, scrape, and extract web data through Bright Data",
	Long: `brightdata reaches the web through the Bright Data APIs: scraping search
engine results as markdown, scraping individual webpages without getting
blocked, and collecting structured records from popular websites.

Authentication uses --api-token or the BRIGHTDATA_API_TOKEN environment
variable.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(errorStyle.Sprint(err))
		os.Exit(1)
	}
}

func getLogger() slogger.Logger {
	return slogger.New(slogger.LevelFromString(logLevel))
}

func newUnlockerClient() (*unlocker.Client, error) {
	var opts []unlocker.ClientOption
	if apiToken != "" {
		opts = append(opts, unlocker.WithAPIToken(apiToken))
	}
	if zone != "" {
		opts = append(opts, unlocker.WithZone(zone))
	}
	return unlocker.New(opts...)
}

func newDatasetsClient() (*datasets.Client, error) {
	opts := []datasets.ClientOption{
		datasets.WithLogger(getLogger()),
	}
	if apiToken != "" {
		opts = append(opts, datasets.WithAPIToken(apiToken))
	}
	return datasets.New(opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiToken, "api-token", "", "Bright Data API token (defaults to $BRIGHTDATA_API_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&zone, "zone", "", "Web Unlocker zone (defaults to mcp_unlocker)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

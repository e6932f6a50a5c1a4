// Command brightdata-mcp serves the Bright Data tools over the Model
// Context Protocol.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deepnoodle-ai/brightdata/config"
	"github.com/deepnoodle-ai/brightdata/mcp"
	"github.com/deepnoodle-ai/brightdata/slogger"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "brightdata-mcp",
	Short: "Serve the Bright Data tools over MCP",
	Long: `brightdata-mcp exposes the Bright Data search, scrape, and extract tools
to MCP clients, over stdio by default or streamable HTTP with --http.

Without a configuration file every tool is enabled, authenticated by the
BRIGHTDATA_API_TOKEN environment variable. A YAML or JSON configuration
selects tools, sets credentials, and tunes rate limiting and circuit
breaking.

Examples:
  brightdata-mcp
  brightdata-mcp --config config.yaml
  brightdata-mcp --config conf.d/ --http :8080
  brightdata-mcp --config config.yaml --watch`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func runServe(cmd *cobra.Command) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	httpAddr, err := cmd.Flags().GetString("http")
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}

	cfg := &config.Config{}
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	// The flag wins over the configured level when set explicitly.
	level := cfg.Logging.Level
	if level == "" || cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	logger := slogger.New(slogger.LevelFromString(level))

	tools, err := config.InitializeTools(cfg, logger)
	if err != nil {
		return err
	}
	if len(tools) == 0 {
		return fmt.Errorf("no tools enabled")
	}

	name := cfg.Name
	if name == "" {
		name = mcp.DefaultServerName
	}
	server, err := mcp.NewServer(mcp.ServerOptions{
		Name:         name,
		Version:      version,
		Instructions: cfg.Description,
		Tools:        tools,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	if watch {
		if configPath == "" {
			return fmt.Errorf("--watch requires --config")
		}
		patterns, err := watchPatterns(configPath)
		if err != nil {
			return err
		}
		watcher, err := newConfigWatcher(patterns, 500*time.Millisecond, logger, func(path string) {
			logger.Info("configuration changed, exiting for restart", "path", path)
			os.Exit(0)
		})
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Start(cmd.Context()); err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	transport := "stdio"
	if httpAddr != "" {
		transport = "http"
	}
	logger.Info("starting mcp server",
		"version", version,
		"tools", len(tools),
		"transport", transport)

	if httpAddr != "" {
		return server.ListenAndServe(httpAddr)
	}
	return server.ServeStdio()
}

// watchPatterns maps the --config path to the glob patterns the watcher
// tracks: the file itself, or every config file in the directory.
func watchPatterns(configPath string) ([]string, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return []string{filepath.Join(configPath, "*.{yml,yaml,json}")}, nil
	}
	return []string{configPath}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "Path to a configuration file or directory")
	rootCmd.Flags().String("http", "", "Serve streamable HTTP on this address (e.g. :8080) instead of stdio")
	rootCmd.Flags().Bool("watch", false, "Exit when the configuration changes so a supervisor can restart")
	rootCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

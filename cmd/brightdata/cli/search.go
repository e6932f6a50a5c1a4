package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/deepnoodle-ai/brightdata/toolkit"
	"github.com/deepnoodle-ai/brightdata/web"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Scrape search engine results for a query",
	Long: `Scrape the results page of a search engine for a query and print it as
markdown. Multiple arguments are joined into a single query.

Examples:
  brightdata search cloud security companies
  brightdata search --engine bing "golang http client"
  brightdata search --json "site:github.com mcp"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := cmd.Flags().GetString("engine")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		jsonOutput, err := cmd.Flags().GetBool("json")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}

		client, err := newUnlockerClient()
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		tool := toolkit.NewSearchEngineTool(toolkit.SearchEngineToolOptions{
			Searcher: client,
		})

		query := strings.Join(args, " ")
		result, err := tool.Call(cmd.Context(), &toolkit.SearchEngineInput{
			Query:  brightdata.MessageText{Text: query},
			Engine: web.Engine(engine),
		})
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		renderResult(result, jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("engine", "e", "google", "Search engine (google, bing, yandex)")
	searchCmd.Flags().BoolP("json", "j", false, "Output the result record as JSON")
}

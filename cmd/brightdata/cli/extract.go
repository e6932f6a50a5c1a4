package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/brightdata/toolkit"
	"github.com/deepnoodle-ai/brightdata/web"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [url]",
	Short: "Collect structured data for a URL",
	Long: `Collect structured records for a URL through the datasets API. The
dataset type is detected from the URL unless --type names one. Collection
runs asynchronously upstream; the command polls until the snapshot is ready.

Examples:
  brightdata extract https://www.amazon.com/dp/B0CRMZHDG8
  brightdata extract --type linkedin_company_profile https://www.linkedin.com/company/example
  brightdata extract --max-wait 600 --param days_limit=7 https://www.tiktok.com/@example
  brightdata extract --json https://www.amazon.com/dp/B0CRMZHDG8`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dataType, err := cmd.Flags().GetString("type")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		noAutoDetect, err := cmd.Flags().GetBool("no-auto-detect")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		maxWait, err := cmd.Flags().GetInt("max-wait")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		params, err := cmd.Flags().GetStringArray("param")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		jsonOutput, err := cmd.Flags().GetBool("json")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}

		additionalParams, err := parseParams(params)
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}

		client, err := newDatasetsClient()
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		tool := toolkit.NewExtractTool(toolkit.ExtractToolOptions{
			Extractor: client,
		})

		input := &web.ExtractInput{
			URL:              args[0],
			DataType:         dataType,
			MaxWaitTime:      maxWait,
			AdditionalParams: additionalParams,
		}
		if noAutoDetect {
			autoDetect := false
			input.AutoDetect = &autoDetect
		}

		result, err := tool.Call(cmd.Context(), input)
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		renderResult(result, jsonOutput)
	},
}

// parseParams converts repeated key=value flags into a payload map.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("type", "t", "", "Dataset type (e.g. amazon_product); detected from the URL when omitted")
	extractCmd.Flags().Bool("no-auto-detect", false, "Disable dataset type detection (requires --type)")
	extractCmd.Flags().Int("max-wait", 0, "Maximum seconds to wait for the collection (0 uses the default)")
	extractCmd.Flags().StringArray("param", nil, "Additional trigger parameter as key=value (repeatable)")
	extractCmd.Flags().BoolP("json", "j", false, "Output the result record as JSON")
}

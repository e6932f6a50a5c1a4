package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/brightdata/datasets"
	"github.com/deepnoodle-ai/brightdata/internal/tablewriter"
	"github.com/spf13/cobra"
)

// datasetView is the JSON projection of a catalog entry. The compiled URL
// patterns are internal to detection and are left out.
type datasetView struct {
	Name      string            `json:"name"`
	DatasetID string            `json:"dataset_id"`
	Inputs    []string          `json:"inputs"`
	Defaults  map[string]string `json:"defaults,omitempty"`
	Domains   []string          `json:"domains,omitempty"`
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the dataset types available to extract",
	Long: `List the dataset catalog used by the extract command, with the domains
each type covers. With --detect, preview which type a URL resolves to
without triggering a collection.

Examples:
  brightdata datasets
  brightdata datasets --json
  brightdata datasets --detect https://www.amazon.com/dp/B0CRMZHDG8`,
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, err := cmd.Flags().GetBool("json")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		detectURL, err := cmd.Flags().GetString("detect")
		if err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}

		if detectURL != "" {
			runDetect(detectURL, jsonOutput)
			return
		}

		types := datasets.Types()
		if jsonOutput {
			views := make([]datasetView, 0, len(types))
			for _, dt := range types {
				views = append(views, datasetView{
					Name:      dt.Name,
					DatasetID: dt.DatasetID,
					Inputs:    dt.Inputs,
					Defaults:  dt.Defaults,
					Domains:   dt.Domains,
				})
			}
			if err := printJSON(views); err != nil {
				fmt.Println(errorStyle.Sprint(err))
				os.Exit(1)
			}
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Name", "Dataset ID", "Domains"})
		for _, dt := range types {
			table.Append([]string{
				dt.Name,
				mutedStyle.Sprint(dt.DatasetID),
				infoStyle.Sprint(truncate(strings.Join(dt.Domains, ", "), 40)),
			})
		}
		table.Render()
		fmt.Printf("%d dataset types\n", len(types))
	},
}

func runDetect(rawURL string, jsonOutput bool) {
	detection, err := datasets.Detect(rawURL)
	if err != nil {
		fmt.Println(errorStyle.Sprint(err))
		os.Exit(1)
	}
	if jsonOutput {
		if err := printJSON(map[string]any{
			"url":                  rawURL,
			"data_type":            detection.DataType,
			"detection_confidence": detection.Confidence,
		}); err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
		return
	}
	fmt.Printf("%s  %s\n",
		successStyle.Sprint(detection.DataType),
		mutedStyle.Sprintf("confidence %d", detection.Confidence))
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
	datasetsCmd.Flags().BoolP("json", "j", false, "Output the dataset catalog as JSON")
	datasetsCmd.Flags().String("detect", "", "Preview which dataset type the given URL resolves to")
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/brightdata"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	successStyle = color.New(color.FgGreen)
	errorStyle   = color.New(color.FgRed)
	infoStyle    = color.New(color.FgCyan)
	mutedStyle   = color.New(color.Faint)
)

// truncate shortens text to width display columns, accounting for
// double-width characters.
func truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// renderResult prints a tool result and exits non-zero for error records so
// scripts can branch on the outcome. With jsonOutput the structured record
// is printed instead of the text content.
func renderResult(result *brightdata.ToolResult, jsonOutput bool) {
	switch {
	case jsonOutput:
		var payload any = result.Structured
		if payload == nil {
			payload = result
		}
		if err := printJSON(payload); err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
	case result.IsError:
		fmt.Println(errorStyle.Sprint(result.Text()))
	default:
		fmt.Println(result.Text())
	}
	if result.IsError {
		os.Exit(1)
	}
}

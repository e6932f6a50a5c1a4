package main

import "github.com/deepnoodle-ai/brightdata/cmd/brightdata/cli"

func main() {
	cli.Execute()
}

// Package brightdata provides a Go client library and agent tools for the
// Bright Data web scraping platform. It takes a library-first approach,
// covering the Web Unlocker request API (search engine results and page
// scraping) and the Datasets API (structured data collection), and packaging
// each capability as a tool that agent frameworks and MCP hosts can call.
//
// The core types are:
//
//   - [Tool] and [TypedTool] define callable tools with JSON schemas.
//   - [ToolResult] is the uniform result record: text content plus a
//     structured map, with IsError marking failure outcomes.
//   - [MessageText] accepts free-text input as either a plain string or a
//     message-shaped object.
//
// # Quick Start
//
//	client, _ := unlocker.New(unlocker.WithAPIToken(token))
//	tool := toolkit.NewSearchEngineTool(toolkit.SearchEngineToolOptions{
//	    Searcher: client,
//	})
//	result, _ := tool.Call(ctx, &toolkit.SearchEngineInput{
//	    Query:  brightdata.MessageText{Text: "climate news"},
//	    Engine: web.EngineBing,
//	})
//	fmt.Println(result.Text())
//
// Ready-made tools are in the
// [github.com/deepnoodle-ai/brightdata/toolkit] package. The underlying API
// clients are in [github.com/deepnoodle-ai/brightdata/unlocker] and
// [github.com/deepnoodle-ai/brightdata/datasets].
package brightdata

package web

import "context"

// Format selects the representation of scraped page content.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

func (f Format) String() string {
	return string(f)
}

type ScrapeInput struct {
	URL    string `json:"url"`
	Format Format `json:"format,omitempty"`
	Zone   string `json:"zone,omitempty"`
}

type ScrapeOutput struct {
	URL     string `json:"url"`
	Format  Format `json:"format"`
	Content string `json:"content"`
}

type Scraper interface {
	Scrape(ctx context.Context, input *ScrapeInput) (*ScrapeOutput, error)
}

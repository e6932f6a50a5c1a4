package web

import "context"

// Engine identifies a target search engine.
type Engine string

const (
	EngineGoogle Engine = "google"
	EngineBing   Engine = "bing"
	EngineYandex Engine = "yandex"
)

func (e Engine) String() string {
	return string(e)
}

// Engines returns the supported search engines.
func Engines() []Engine {
	return []Engine{EngineGoogle, EngineBing, EngineYandex}
}

type SearchInput struct {
	Query  string `json:"query"`
	Engine Engine `json:"engine,omitempty"`
}

// SearchOutput carries the raw results page for a search, along with the
// search URL it was fetched from.
type SearchOutput struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

type Searcher interface {
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)
}

package unlocker

import (
	"net/url"

	"github.com/deepnoodle-ai/brightdata/web"
)

// Results-page URL prefixes per engine. The percent-encoded query is
// appended directly.
const (
	googleSearchURL = "https://www.google.com/search?q="
	bingSearchURL   = "https://www.bing.com/search?q="
	yandexSearchURL = "https://yandex.com/search/?text="
)

// SearchURL builds the results-page URL for the given engine and query.
// Engines are matched exactly; any other value, including empty, falls back
// to Google. The builder never fails.
func SearchURL(engine web.Engine, query string) string {
	q := url.QueryEscape(query)
	switch engine {
	case web.EngineYandex:
		return yandexSearchURL + q
	case web.EngineBing:
		return bingSearchURL + q
	default:
		return googleSearchURL + q
	}
}

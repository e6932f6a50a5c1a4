package datasets

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Detection is the outcome of matching a URL against the dataset catalog.
type Detection struct {
	DataType   string
	Confidence int
}

// Scoring weights. A domain match outweighs any combination of pattern and
// refinement bonuses from another site, so the domain always decides first.
const (
	domainScore  = 100
	patternScore = 50
	refineBonus  = 25
)

var (
	profileSegmentRe = regexp.MustCompile(`/[^/]+/?$`)
	handleRe         = regexp.MustCompile(`/@[^/]+/?$`)
)

// Detect scores every dataset type against the URL and returns the best
// match. Domains weigh heaviest, then URL patterns, then a small bonus from
// site-specific rules that disambiguate related types on the same site.
// Ties keep the earliest catalog entry.
func Detect(rawURL string) (*Detection, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.ToLower(parsed.Path)
	query := strings.ToLower(parsed.RawQuery)
	// Some patterns span the path/query boundary, like /watch?v= or /s?.
	target := path
	if query != "" {
		target = path + "?" + query
	}

	refined := refineDataType(host, path, query, target, rawURL)

	best := ""
	bestScore := 0
	for _, dt := range catalog {
		score := 0
		for _, domain := range dt.Domains {
			if strings.Contains(host, domain) {
				score += domainScore
				break
			}
		}
		for _, pattern := range dt.URLPatterns {
			if pattern.MatchString(path) || pattern.MatchString(query) || pattern.MatchString(target) {
				score += patternScore
				break
			}
		}
		if score > 0 && dt.Name == refined {
			score += refineBonus
		}
		if score > bestScore {
			best = dt.Name
			bestScore = score
		}
	}
	if best == "" {
		return nil, fmt.Errorf("Could not automatically detect website type for domain: %s. Please disable auto-detect and manually select a data type.", parsed.Host)
	}
	return &Detection{DataType: best, Confidence: bestScore}, nil
}

// refineDataType applies site-specific rules that pick one dataset type out
// of several matching the same site. Returns "" when no rule applies.
func refineDataType(host, path, query, target, rawURL string) string {
	switch {
	case strings.Contains(host, "linkedin.com"):
		switch {
		case strings.Contains(path, "/in/") &&
			!strings.Contains(path, "/company/") &&
			!strings.Contains(path, "/posts/") &&
			!strings.Contains(path, "/jobs/"):
			return "linkedin_person_profile"
		case strings.Contains(path, "/company/"):
			return "linkedin_company_profile"
		case strings.Contains(path, "/jobs/"):
			return "linkedin_job_listings"
		case strings.Contains(path, "/posts/") || strings.Contains(path, "/feed/update/"):
			return "linkedin_posts"
		}
	case strings.Contains(host, "instagram.com"):
		switch {
		case strings.Contains(path, "/p/"):
			return "instagram_posts"
		case strings.Contains(path, "/reel/"):
			return "instagram_reels"
		case profileSegmentRe.MatchString(path):
			return "instagram_profiles"
		}
	case strings.Contains(host, "amazon.com") ||
		strings.Contains(host, "amazon.co.uk") ||
		strings.Contains(host, "amazon.de"):
		switch {
		case strings.Contains(path, "/dp/") || strings.Contains(path, "/gp/product/"):
			if strings.Contains(rawURL, "#customerReviews") || strings.Contains(path, "/product-reviews/") {
				return "amazon_product_reviews"
			}
			return "amazon_product"
		case strings.Contains(target, "/s?") || strings.Contains(query, "field-keywords"):
			return "amazon_product_search"
		}
	case strings.Contains(host, "youtube.com"):
		switch {
		case strings.Contains(target, "/watch?v="):
			return "youtube_videos"
		case strings.Contains(path, "/channel/") || strings.Contains(path, "/c/") || handleRe.MatchString(path):
			return "youtube_profiles"
		}
	}
	return ""
}

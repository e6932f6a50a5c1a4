package datasets

import "regexp"

// DatasetType describes one entry in the dataset catalog: the upstream
// dataset ID, the fields its trigger payload accepts, per-dataset payload
// defaults, and the domains and URL patterns used for auto-detection.
type DatasetType struct {
	Name        string
	DatasetID   string
	Inputs      []string
	Defaults    map[string]string
	Domains     []string
	URLPatterns []*regexp.Regexp
}

// Types returns the dataset catalog. The order is significant: when
// detection scores tie, the earliest entry wins.
func Types() []DatasetType {
	return catalog
}

// Lookup returns the dataset type with the given name.
func Lookup(name string) (*DatasetType, bool) {
	dt, ok := byName[name]
	return dt, ok
}

var byName = make(map[string]*DatasetType, len(catalog))

func init() {
	for i := range catalog {
		byName[catalog[i].Name] = &catalog[i]
	}
}

func rx(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, pattern := range patterns {
		compiled[i] = regexp.MustCompile(pattern)
	}
	return compiled
}

var amazonDomains = []string{
	"amazon.com", "amazon.co.uk", "amazon.de", "amazon.fr", "amazon.it",
	"amazon.es", "amazon.ca", "amazon.com.au", "amazon.co.jp",
}

var ebayDomains = []string{
	"ebay.com", "ebay.co.uk", "ebay.de", "ebay.fr", "ebay.it",
	"ebay.es", "ebay.ca", "ebay.com.au",
}

var catalog = []DatasetType{
	{
		Name:        "amazon_product",
		DatasetID:   "gd_l7q7dkf244hwjntr0",
		Inputs:      []string{"url"},
		Domains:     amazonDomains,
		URLPatterns: rx(`/dp/`, `/gp/product/`),
	},
	{
		Name:        "amazon_product_reviews",
		DatasetID:   "gd_le8e811kzy4ggddlq",
		Inputs:      []string{"url"},
		Domains:     amazonDomains,
		URLPatterns: rx(`/dp/.*#customerReviews`, `/product-reviews/`),
	},
	{
		Name:        "amazon_product_search",
		DatasetID:   "gd_lwdb4vjm1ehb499uxs",
		Inputs:      []string{"keyword", "url", "pages_to_search"},
		Defaults:    map[string]string{"pages_to_search": "1"},
		Domains:     amazonDomains,
		URLPatterns: rx(`/s\?`, `field-keywords`),
	},
	{
		Name:        "walmart_product",
		DatasetID:   "gd_l95fol7l1ru6rlo116",
		Inputs:      []string{"url"},
		Domains:     []string{"walmart.com"},
		URLPatterns: rx(`/ip/`),
	},
	{
		Name:        "walmart_seller",
		DatasetID:   "gd_m7ke48w81ocyu4hhz0",
		Inputs:      []string{"url"},
		Domains:     []string{"walmart.com"},
		URLPatterns: rx(`/seller/`),
	},
	{
		Name:        "ebay_product",
		DatasetID:   "gd_ltr9mjt81n0zzdk1fb",
		Inputs:      []string{"url"},
		Domains:     ebayDomains,
		URLPatterns: rx(`/itm/`),
	},
	{
		Name:        "homedepot_products",
		DatasetID:   "gd_lmusivh019i7g97q2n",
		Inputs:      []string{"url"},
		Domains:     []string{"homedepot.com"},
		URLPatterns: rx(`/p/`),
	},
	{
		Name:        "zara_products",
		DatasetID:   "gd_lct4vafw1tgx27d4o0",
		Inputs:      []string{"url"},
		Domains:     []string{"zara.com"},
		URLPatterns: rx(`/product/`),
	},
	{
		Name:        "etsy_products",
		DatasetID:   "gd_ltppk0jdv1jqz25mz",
		Inputs:      []string{"url"},
		Domains:     []string{"etsy.com"},
		URLPatterns: rx(`/listing/`),
	},
	{
		Name:        "bestbuy_products",
		DatasetID:   "gd_ltre1jqe1jfr7cccf",
		Inputs:      []string{"url"},
		Domains:     []string{"bestbuy.com"},
		URLPatterns: rx(`/site/`),
	},
	{
		Name:        "linkedin_person_profile",
		DatasetID:   "gd_l1viktl72bvl7bjuj0",
		Inputs:      []string{"url"},
		Domains:     []string{"linkedin.com"},
		URLPatterns: rx(`/in/[^/]+/?$`),
	},
	{
		Name:        "linkedin_company_profile",
		DatasetID:   "gd_l1vikfnt1wgvvqz95w",
		Inputs:      []string{"url"},
		Domains:     []string{"linkedin.com"},
		URLPatterns: rx(`/company/`),
	},
	{
		Name:        "linkedin_job_listings",
		DatasetID:   "gd_lpfll7v5hcqtkxl6l",
		Inputs:      []string{"url"},
		Domains:     []string{"linkedin.com"},
		URLPatterns: rx(`/jobs/`),
	},
	{
		Name:        "linkedin_posts",
		DatasetID:   "gd_lyy3tktm25m4avu764",
		Inputs:      []string{"url"},
		Domains:     []string{"linkedin.com"},
		URLPatterns: rx(`/posts/`, `/feed/update/`),
	},
	{
		Name:        "linkedin_people_search",
		DatasetID:   "gd_m8d03he47z8nwb5xc",
		Inputs:      []string{"url", "first_name", "last_name"},
		Domains:     []string{"linkedin.com"},
		URLPatterns: rx(`/search/results/people/`),
	},
	{
		Name:        "crunchbase_company",
		DatasetID:   "gd_l1vijqt9jfj7olije",
		Inputs:      []string{"url"},
		Domains:     []string{"crunchbase.com"},
		URLPatterns: rx(`/organization/`),
	},
	{
		Name:        "zoominfo_company_profile",
		DatasetID:   "gd_m0ci4a4ivx3j5l6nx",
		Inputs:      []string{"url"},
		Domains:     []string{"zoominfo.com"},
		URLPatterns: rx(`/c/`),
	},
	{
		Name:        "instagram_profiles",
		DatasetID:   "gd_l1vikfch901nx3by4",
		Inputs:      []string{"url"},
		Domains:     []string{"instagram.com"},
		URLPatterns: rx(`/[^/]+/?$`),
	},
	{
		Name:        "instagram_posts",
		DatasetID:   "gd_lk5ns7kz21pck8jpis",
		Inputs:      []string{"url"},
		Domains:     []string{"instagram.com"},
		URLPatterns: rx(`/p/`),
	},
	{
		Name:        "instagram_reels",
		DatasetID:   "gd_lyclm20il4r5helnj",
		Inputs:      []string{"url"},
		Domains:     []string{"instagram.com"},
		URLPatterns: rx(`/reel/`),
	},
	{
		Name:        "instagram_comments",
		DatasetID:   "gd_ltppn085pokosxh13",
		Inputs:      []string{"url"},
		Domains:     []string{"instagram.com"},
		URLPatterns: rx(`/p/`, `/reel/`),
	},
	{
		Name:        "facebook_posts",
		DatasetID:   "gd_lyclm1571iy3mv57zw",
		Inputs:      []string{"url"},
		Domains:     []string{"facebook.com"},
		URLPatterns: rx(`/posts/`, `/permalink/`),
	},
	{
		Name:        "facebook_marketplace_listings",
		DatasetID:   "gd_lvt9iwuh6fbcwmx1a",
		Inputs:      []string{"url"},
		Domains:     []string{"facebook.com"},
		URLPatterns: rx(`/marketplace/`),
	},
	{
		Name:        "facebook_company_reviews",
		DatasetID:   "gd_m0dtqpiu1mbcyc2g86",
		Inputs:      []string{"url", "num_of_reviews"},
		Defaults:    map[string]string{"num_of_reviews": "10"},
		Domains:     []string{"facebook.com"},
		URLPatterns: rx(`/[^/]+/?$`),
	},
	{
		Name:        "facebook_events",
		DatasetID:   "gd_m14sd0to1jz48ppm51",
		Inputs:      []string{"url"},
		Domains:     []string{"facebook.com"},
		URLPatterns: rx(`/events/`),
	},
	{
		Name:        "tiktok_profiles",
		DatasetID:   "gd_l1villgoiiidt09ci",
		Inputs:      []string{"url"},
		Domains:     []string{"tiktok.com"},
		URLPatterns: rx(`/@[^/]+/?$`),
	},
	{
		Name:        "tiktok_posts",
		DatasetID:   "gd_lu702nij2f790tmv9h",
		Inputs:      []string{"url"},
		Domains:     []string{"tiktok.com"},
		URLPatterns: rx(`/video/`),
	},
	{
		Name:        "tiktok_shop",
		DatasetID:   "gd_m45m1u911dsa4274pi",
		Inputs:      []string{"url"},
		Domains:     []string{"tiktok.com"},
		URLPatterns: rx(`/shop/`),
	},
	{
		Name:        "tiktok_comments",
		DatasetID:   "gd_lkf2st302ap89utw5k",
		Inputs:      []string{"url"},
		Domains:     []string{"tiktok.com"},
		URLPatterns: rx(`/video/`),
	},
	{
		Name:        "google_maps_reviews",
		DatasetID:   "gd_luzfs1dn2oa0teb81",
		Inputs:      []string{"url", "days_limit"},
		Defaults:    map[string]string{"days_limit": "3"},
		Domains:     []string{"google.com", "maps.google.com"},
		URLPatterns: rx(`/maps/`, `/@`),
	},
	{
		Name:        "google_shopping",
		DatasetID:   "gd_ltppk50q18kdw67omz",
		Inputs:      []string{"url"},
		Domains:     []string{"google.com"},
		URLPatterns: rx(`/shopping/`),
	},
	{
		Name:        "google_play_store",
		DatasetID:   "gd_lsk382l8xei8vzm4u",
		Inputs:      []string{"url"},
		Domains:     []string{"play.google.com"},
		URLPatterns: rx(`/store/apps/`),
	},
	{
		Name:        "apple_app_store",
		DatasetID:   "gd_lsk9ki3u2iishmwrui",
		Inputs:      []string{"url"},
		Domains:     []string{"apps.apple.com"},
		URLPatterns: rx(`/app/`),
	},
	{
		Name:        "reuter_news",
		DatasetID:   "gd_lyptx9h74wtlvpnfu",
		Inputs:      []string{"url"},
		Domains:     []string{"reuters.com"},
		URLPatterns: rx(`/`),
	},
	{
		Name:        "github_repository_file",
		DatasetID:   "gd_lyrexgxc24b3d4imjt",
		Inputs:      []string{"url"},
		Domains:     []string{"github.com"},
		URLPatterns: rx(`/blob/`, `/tree/`),
	},
	{
		Name:        "yahoo_finance_business",
		DatasetID:   "gd_lmrpz3vxmz972ghd7",
		Inputs:      []string{"url"},
		Domains:     []string{"finance.yahoo.com"},
		URLPatterns: rx(`/quote/`),
	},
	{
		Name:        "x_posts",
		DatasetID:   "gd_lwxkxvnf1cynvib9co",
		Inputs:      []string{"url"},
		Domains:     []string{"x.com", "twitter.com"},
		URLPatterns: rx(`/status/`),
	},
	{
		Name:        "zillow_properties_listing",
		DatasetID:   "gd_lfqkr8wm13ixtbd8f5",
		Inputs:      []string{"url"},
		Domains:     []string{"zillow.com"},
		URLPatterns: rx(`/homedetails/`),
	},
	{
		Name:        "booking_hotel_listings",
		DatasetID:   "gd_m5mbdl081229ln6t4a",
		Inputs:      []string{"url"},
		Domains:     []string{"booking.com"},
		URLPatterns: rx(`/hotel/`),
	},
	{
		Name:        "youtube_profiles",
		DatasetID:   "gd_lk538t2k2p1k3oos71",
		Inputs:      []string{"url"},
		Domains:     []string{"youtube.com"},
		URLPatterns: rx(`/channel/`, `/c/`, `/@[^/]+/?$`),
	},
	{
		Name:        "youtube_videos",
		DatasetID:   "gd_m5mbdl081229ln6t4a",
		Inputs:      []string{"url"},
		Domains:     []string{"youtube.com"},
		URLPatterns: rx(`/watch\?v=`),
	},
	{
		Name:        "youtube_comments",
		DatasetID:   "gd_lk9q0ew71spt1mxywf",
		Inputs:      []string{"url", "num_of_comments"},
		Defaults:    map[string]string{"num_of_comments": "10"},
		Domains:     []string{"youtube.com"},
		URLPatterns: rx(`/watch\?v=`),
	},
	{
		Name:        "reddit_posts",
		DatasetID:   "gd_lvz8ah06191smkebj4",
		Inputs:      []string{"url"},
		Domains:     []string{"reddit.com"},
		URLPatterns: rx(`/r/`, `/comments/`),
	},
}

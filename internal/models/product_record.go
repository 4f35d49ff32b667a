package models

// ProductRecord holds raw product data scraped from a captured retail
// page. Title and Price are kept as the page presented them; the cleaner
// normalizes them later.
type ProductRecord struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	URL       string `json:"url"`
	FetchTime string `json:"fetch_time,omitempty"`
}

// CleanedProductRecord is a ProductRecord after normalization: price
// parsed to a number (nil when unparseable) and fetch time in RFC3339.
type CleanedProductRecord struct {
	Title     string   `json:"title"`
	Price     *float64 `json:"price"`
	URL       string   `json:"url"`
	FetchTime string   `json:"fetch_time,omitempty"`
}

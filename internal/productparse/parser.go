package productparse

import (
	"io"
	"regexp"
	"strings"

	"ccextract/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

var (
	titleTextRegex  = regexp.MustCompile(`Title:\s*(.*)`)
	priceTokenRegex = regexp.MustCompile(`\d+(?:\.\d{2})?`)
)

// ProductParser extracts product title and price strings from captured
// retail product pages. Selectors are tried most-specific first; retail
// page templates changed over the crawl years, so each field has a chain
// of fallbacks ending in a plain-text regex scan.
type ProductParser struct {
	logger zerolog.Logger
}

// NewProductParser creates a new ProductParser.
func NewProductParser(logger zerolog.Logger) *ProductParser {
	return &ProductParser{
		logger: logger.With().Str("component", "ProductParser").Logger(),
	}
}

// Parse extracts product data from an HTML document.
func (pp *ProductParser) Parse(htmlContent io.Reader) (models.ProductRecord, error) {
	doc, err := goquery.NewDocumentFromReader(htmlContent)
	if err != nil {
		return models.ProductRecord{}, err
	}

	record := models.ProductRecord{
		Title: pp.extractTitle(doc),
		Price: pp.extractPrice(doc),
	}
	if record.Title == "" {
		record.Title = "No Title Found"
	}
	if record.Price == "" {
		record.Price = "No Price Found"
	}
	return record, nil
}

// extractTitle walks the title selector chain.
func (pp *ProductParser) extractTitle(doc *goquery.Document) string {
	selectors := []string{"#productTitle", "#btAsinTitle", "h1.title", "title", "h1"}
	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			if title := strings.TrimSpace(sel.Text()); title != "" {
				return title
			}
		}
	}

	if match := titleTextRegex.FindStringSubmatch(doc.Text()); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// extractPrice walks the price selector chain, falling back to the first
// decimal-looking token in the page text.
func (pp *ProductParser) extractPrice(doc *goquery.Document) string {
	selectors := []string{
		"#priceblock_saleprice, #priceblock_ourprice, #priceblock_dealprice",
		"span.a-price-whole",
		"span.a-price",
		"span#price_inside_buybox",
	}
	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			if price := strings.TrimSpace(sel.Text()); price != "" {
				return price
			}
		}
	}

	if match := priceTokenRegex.FindString(doc.Text()); match != "" {
		return match
	}
	return ""
}

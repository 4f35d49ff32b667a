package extractor

import (
	"strings"

	"ccextract/internal/common"
	"ccextract/internal/config"
	"ccextract/internal/models"
)

// FilterSpec is the immutable, normalized predicate set applied to every
// index record. Crawl ids match exactly; domains and URL substrings are
// compared case-insensitively. Substring matching is plain containment,
// not word-boundary matching.
type FilterSpec struct {
	allowedCrawls       map[string]struct{}
	allowedDomains      map[string]struct{}
	requiredSubstring   string
	forbiddenSubstrings []string
}

// NewFilterSpec builds a FilterSpec from configuration, lowercasing
// domains and substrings once so record evaluation stays allocation-free.
func NewFilterSpec(cfg config.FilterConfig) (*FilterSpec, error) {
	if len(cfg.AllowedCrawls) == 0 {
		return nil, common.NewValidationError("allowed_crawls", cfg.AllowedCrawls, "at least one crawl id is required")
	}
	if len(cfg.AllowedDomains) == 0 {
		return nil, common.NewValidationError("allowed_domains", cfg.AllowedDomains, "at least one domain is required")
	}
	if cfg.RequiredSubstring == "" {
		return nil, common.NewValidationError("required_substring", cfg.RequiredSubstring, "required substring cannot be empty")
	}

	spec := &FilterSpec{
		allowedCrawls:     make(map[string]struct{}, len(cfg.AllowedCrawls)),
		allowedDomains:    make(map[string]struct{}, len(cfg.AllowedDomains)),
		requiredSubstring: strings.ToLower(cfg.RequiredSubstring),
	}

	for _, crawl := range cfg.AllowedCrawls {
		spec.allowedCrawls[crawl] = struct{}{}
	}
	for _, domain := range cfg.AllowedDomains {
		spec.allowedDomains[strings.ToLower(domain)] = struct{}{}
	}
	for _, substr := range cfg.ForbiddenSubstrings {
		spec.forbiddenSubstrings = append(spec.forbiddenSubstrings, strings.ToLower(substr))
	}

	return spec, nil
}

// Matches reports whether a record satisfies all four predicates:
// allowed crawl, allowed registered domain, required URL substring
// present, no forbidden URL substring present.
func (fs *FilterSpec) Matches(rec models.IndexRecord) bool {
	if _, ok := fs.allowedCrawls[rec.Crawl]; !ok {
		return false
	}
	if _, ok := fs.allowedDomains[strings.ToLower(rec.RegisteredDomain)]; !ok {
		return false
	}

	loweredURL := strings.ToLower(rec.URL)
	if !strings.Contains(loweredURL, fs.requiredSubstring) {
		return false
	}
	for _, forbidden := range fs.forbiddenSubstrings {
		if strings.Contains(loweredURL, forbidden) {
			return false
		}
	}

	return true
}

package config

// FilterConfig defines the predicate set applied to index records.
// All string matching against the URL is case-insensitive substring
// containment; crawl ids match exactly.
type FilterConfig struct {
	AllowedCrawls       []string `json:"allowed_crawls,omitempty" yaml:"allowed_crawls,omitempty" validate:"omitempty,dive,required"`
	AllowedDomains      []string `json:"allowed_domains,omitempty" yaml:"allowed_domains,omitempty" validate:"omitempty,dive,required"`
	RequiredSubstring   string   `json:"required_substring,omitempty" yaml:"required_substring,omitempty"`
	ForbiddenSubstrings []string `json:"forbidden_substrings,omitempty" yaml:"forbidden_substrings,omitempty" validate:"omitempty,dive,required"`
}

// NewDefaultFilterConfig creates default filter configuration
func NewDefaultFilterConfig() FilterConfig {
	return FilterConfig{
		AllowedCrawls:       []string{},
		AllowedDomains:      []string{},
		ForbiddenSubstrings: []string{},
	}
}

package urlhandler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Regex for cleaning filenames
var (
	unsafeFilenameCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)
	multipleUnderscoresRegex = regexp.MustCompile(`_+`)
)

// ExtractHostname returns the hostname of a URL string. Crawl index URLs
// occasionally arrive without a scheme, so one is assumed when missing.
func ExtractHostname(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", fmt.Errorf("URL is empty or only whitespace")
	}

	if !strings.Contains(trimmedURL, "://") && !strings.HasPrefix(trimmedURL, "//") {
		trimmedURL = "http://" + trimmedURL
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", rawURL, err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		return "", fmt.Errorf("URL '%s' lacks a valid hostname", rawURL)
	}

	return strings.ToLower(host), nil
}

// RegisteredDomain returns the organizationally registrable portion of a
// URL's hostname (e.g. "amazon.com" for "www.amazon.com") using the
// public suffix list.
func RegisteredDomain(rawURL string) (string, error) {
	host, err := ExtractHostname(rawURL)
	if err != nil {
		return "", err
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", fmt.Errorf("could not determine registered domain for host '%s': %w", host, err)
	}

	return domain, nil
}

// SanitizeFilename cleans a string so it is safe to use as a file name.
func SanitizeFilename(input string) string {
	sanitized := strings.TrimSpace(input)
	sanitized = strings.TrimPrefix(sanitized, "http://")
	sanitized = strings.TrimPrefix(sanitized, "https://")
	sanitized = unsafeFilenameCharsRegex.ReplaceAllString(sanitized, "_")
	sanitized = multipleUnderscoresRegex.ReplaceAllString(sanitized, "_")
	return strings.Trim(sanitized, "_")
}

// ResolveDestinationPath converts a destination URI into a local
// filesystem path. Plain paths are returned as-is; file:// URIs have the
// scheme stripped. Any other scheme is rejected.
func ResolveDestinationPath(destinationURI string) (string, error) {
	trimmed := strings.TrimSpace(destinationURI)
	if trimmed == "" {
		return "", fmt.Errorf("destination URI is empty")
	}

	if !strings.Contains(trimmed, "://") {
		return trimmed, nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("could not parse destination URI '%s': %w", destinationURI, err)
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("unsupported destination scheme '%s' (only file paths and file:// URIs are supported)", parsed.Scheme)
	}
	if parsed.Path == "" {
		return "", fmt.Errorf("destination URI '%s' has no path", destinationURI)
	}

	return parsed.Path, nil
}

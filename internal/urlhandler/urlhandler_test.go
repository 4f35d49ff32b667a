package urlhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHostname(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"full url", "https://www.amazon.com/laptop", "www.amazon.com", false},
		{"schemeless", "amazon.com/laptop", "amazon.com", false},
		{"uppercase host lowered", "https://WWW.Amazon.COM/x", "www.amazon.com", false},
		{"with port", "http://amazon.com:8080/x", "amazon.com", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractHostname(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegisteredDomain(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"strips www", "https://www.amazon.com/dp/B08N5WRWNW", "amazon.com", false},
		{"bare domain", "bestbuy.com/site/laptops", "bestbuy.com", false},
		{"deep subdomain", "https://smile.images.amazon.com/x", "amazon.com", false},
		{"country code suffix", "https://www.amazon.co.uk/x", "amazon.co.uk", false},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RegisteredDomain(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "amazon.com_laptop-1", SanitizeFilename("https://amazon.com/laptop-1"))
	assert.Equal(t, "a_b", SanitizeFilename("a///b"))
	assert.Equal(t, "report.json", SanitizeFilename(" report.json "))
}

func TestResolveDestinationPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain path", "/data/extracted", "/data/extracted", false},
		{"relative path", "out/extracted", "out/extracted", false},
		{"file uri", "file:///data/extracted", "/data/extracted", false},
		{"s3 rejected", "s3://bucket/key", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDestinationPath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

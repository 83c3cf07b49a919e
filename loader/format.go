package loader

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/erraggy/oassamples/document"
)

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) document.SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return document.SourceFormatJSON
	case ".yaml", ".yml":
		return document.SourceFormatYAML
	default:
		return document.SourceFormatUnknown
	}
}

// detectFormatFromContent sniffs the first non-whitespace byte: JSON documents
// start with '{' or '['; everything else is treated as YAML.
func detectFormatFromContent(data []byte) document.SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r\ufeff")
	if len(trimmed) == 0 {
		return document.SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return document.SourceFormatJSON
	}
	return document.SourceFormatYAML
}

// detectFormatFromURL tries the URL path extension, then the Content-Type header.
func detectFormatFromURL(urlStr, contentType string) document.SourceFormat {
	if parsed, err := url.Parse(urlStr); err == nil && parsed.Path != "" {
		if format := detectFormatFromPath(parsed.Path); format != document.SourceFormatUnknown {
			return format
		}
	}

	contentType = strings.ToLower(contentType)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)

	switch {
	case contentType == "application/json" || strings.HasSuffix(contentType, "+json"):
		return document.SourceFormatJSON
	case strings.Contains(contentType, "yaml"):
		return document.SourceFormatYAML
	default:
		return document.SourceFormatUnknown
	}
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

package network

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ResolveURL resolves a reference against a base URL.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) (string, error) {
	if ref == "" {
		return base, nil
	}
	if IsDataURL(ref) {
		return ref, nil
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference URL: %w", err)
	}
	if refURL.IsAbs() {
		return refURL.String(), nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// IsRemoteURL reports whether ref is an http or https URL.
func IsRemoteURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// IsDataURL returns true if the URL is a data URL.
func IsDataURL(ref string) bool {
	return strings.HasPrefix(strings.ToLower(ref), "data:")
}

// DataURL represents a parsed data URL.
type DataURL struct {
	MediaType string
	Charset   string
	Base64    bool
	Data      []byte
}

// ParseDataURL parses a data URL and returns its components.
// Format: data:[<mediatype>][;base64],<data>
func ParseDataURL(ref string) (*DataURL, error) {
	if !IsDataURL(ref) {
		return nil, fmt.Errorf("not a data URL")
	}
	content := ref[5:]

	commaIdx := strings.Index(content, ",")
	if commaIdx == -1 {
		return nil, fmt.Errorf("invalid data URL: missing comma")
	}
	metadata := content[:commaIdx]
	data := content[commaIdx+1:]

	result := &DataURL{
		MediaType: "text/plain",
		Charset:   "US-ASCII",
	}
	for i, part := range strings.Split(metadata, ";") {
		switch {
		case i == 0 && part != "" && !strings.Contains(part, "=") && part != "base64":
			result.MediaType = strings.ToLower(part)
		case part == "base64":
			result.Base64 = true
		case strings.HasPrefix(strings.ToLower(part), "charset="):
			result.Charset = part[8:]
		}
	}

	if result.Base64 {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 data: %w", err)
		}
		result.Data = decoded
		return result, nil
	}
	decoded, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("failed to URL-decode data: %w", err)
	}
	result.Data = []byte(decoded)
	return result, nil
}

// Extension returns the lowercase file extension of a path or URL, without
// the dot. Query strings and fragments are ignored.
func Extension(ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil && (u.Scheme != "" || u.RawQuery != "" || u.Fragment != "") {
		p = u.Path
	}
	if strings.HasSuffix(p, "/") {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
}

// mediaTypeExtensions maps the media types of dialog inputs to the file
// extension they would carry.
var mediaTypeExtensions = map[string]string{
	"application/json":       "json",
	"application/yaml":       "yaml",
	"application/x-yaml":     "yaml",
	"text/yaml":              "yaml",
	"application/toml":       "toml",
	"text/html":              "html",
	"text/javascript":        "js",
	"application/javascript": "js",
}

// ExtensionForMediaType returns the file extension of a media type, or "".
func ExtensionForMediaType(mediaType string) string {
	return mediaTypeExtensions[strings.ToLower(mediaType)]
}

package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// uriToPath converts a file:// URI to a local path. Other schemes, such as
// untitled:, yield "".
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// documentName picks the name a document is parsed under: its path when it
// has one, the URI otherwise. The extension selects the language mode.
func documentName(uri, languageID string) string {
	if path := uriToPath(uri); path != "" {
		return path
	}
	switch strings.ToLower(languageID) {
	case "javascript", "javascriptreact":
		return uri + ".js"
	}
	return uri
}

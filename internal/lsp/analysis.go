package lsp

import (
	"tsiface/internal/diag"
	"tsiface/internal/driver"
)

// document is one open text buffer and its latest analysis.
type document struct {
	uri        string
	languageID string
	version    int32
	text       string
	result     *driver.Result
}

func (s *Server) analyze(doc *document) error {
	opts := s.parseOpts
	if doc.languageID == "javascript" || doc.languageID == "javascriptreact" {
		opts.TypeScript = false
	}
	res, err := driver.ParseSource(documentName(doc.uri, doc.languageID), []byte(doc.text), opts)
	if err != nil {
		return err
	}
	doc.result = res
	return nil
}

func (d *document) items() []diag.Diagnostic {
	if d == nil || d.result == nil || d.result.Bag == nil {
		return nil
	}
	return d.result.Bag.Items()
}

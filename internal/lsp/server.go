// Package lsp serves interface diagnostics, outlines and quick fixes over
// the Language Server Protocol.
package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"tsiface/internal/driver"
)

const serverName = "tsiface"

var log = commonlog.GetLogger("tsiface.lsp")

// Options configures a Server.
type Options struct {
	Parse   driver.ParseOptions
	Version string
	Debug   bool
}

// Server keeps open documents and re-parses them on every change.
type Server struct {
	mu        sync.Mutex
	docs      map[string]*document
	parseOpts driver.ParseOptions
	version   string

	handler protocol.Handler
	server  *glspserver.Server
}

func NewServer(opts Options) *Server {
	s := &Server{
		docs:      make(map[string]*document),
		parseOpts: opts.Parse,
		version:   opts.Version,
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.didOpen,
		TextDocumentDidChange:      s.didChange,
		TextDocumentDidClose:       s.didClose,
		TextDocumentDidSave:        s.didSave,
		TextDocumentDocumentSymbol: s.documentSymbol,
		TextDocumentCodeAction:     s.codeAction,
	}
	s.server = glspserver.NewServer(&s.handler, serverName, opts.Debug)
	return s
}

// RunStdio serves on stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.RootURI != nil {
		log.Infof("initialize: root %s", *params.RootURI)
	}
	capabilities := s.handler.CreateServerCapabilities()
	change := protocol.TextDocumentSyncKindIncremental
	includeText := true
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &includeText,
		Change:    &change,
		Save:      &protocol.SaveOptions{IncludeText: &includeText},
	}
	capabilities.DocumentSymbolProvider = true
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
	}
	version := s.version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo:   &protocol.InitializeResultServerInfo{Name: serverName, Version: &version},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := &document{
		uri:        item.URI,
		languageID: item.LanguageID,
		version:    item.Version,
		text:       item.Text,
	}
	s.mu.Lock()
	s.docs[item.URI] = doc
	s.mu.Unlock()
	return s.refresh(ctx, doc)
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		s.mu.Unlock()
		log.Warningf("didChange for unknown document %s", params.TextDocument.URI)
		return nil
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	s.mu.Unlock()
	return s.refresh(ctx, doc)
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
	publishDiagnostics(ctx, uri, nil, nil)
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	if ok && params.Text != nil {
		doc.text = *params.Text
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.refresh(ctx, doc)
}

func (s *Server) documentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[params.TextDocument.URI]
	if !ok || doc.result == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	symbols := documentSymbols(doc.result.File, doc.result.Events)
	if symbols == nil {
		symbols = []protocol.DocumentSymbol{}
	}
	return symbols, nil
}

func (s *Server) codeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return []protocol.CodeAction{}, nil
	}
	actions := codeActions(doc, params.Range)
	if actions == nil {
		actions = []protocol.CodeAction{}
	}
	return actions, nil
}

// refresh re-parses doc and publishes its diagnostics.
func (s *Server) refresh(ctx *glsp.Context, doc *document) error {
	s.mu.Lock()
	err := s.analyze(doc)
	var diagnostics []protocol.Diagnostic
	if err == nil {
		diagnostics = buildDiagnostics(doc)
	}
	uri, version := doc.uri, documentVersion(doc)
	s.mu.Unlock()
	if err != nil {
		log.Errorf("analyze %s: %s", uri, err.Error())
		return err
	}
	log.Debugf("published %d diagnostics for %s", len(diagnostics), uri)
	publishDiagnostics(ctx, uri, version, diagnostics)
	return nil
}

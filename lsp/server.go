// Package lsp serves calc documents over the Language Server Protocol:
// every open document is re-parsed on change, its diagnostics are
// published, and hover shows the syntax path under the cursor.
package lsp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/greennom/calc"
	"github.com/dhamidi/greennom/green"
	"github.com/dhamidi/greennom/nom"
	"github.com/dhamidi/greennom/syntax"
)

const lsName = "greennom"

var log = commonlog.GetLogger("greennom.lsp")

type document struct {
	uri   protocol.DocumentUri
	text  string
	lines *lineIndex
	root  *syntax.Node
	diags []nom.Error
}

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	parser  *calc.Parser
	cache   *green.Cache

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*document
}

func NewServer(version string, opts ...calc.Option) *Server {
	ls := &Server{
		version: version,
		cache:   green.NewExpiringCache(green.DefaultExpiration, green.DefaultCleanupInterval),
		docs:    make(map[protocol.DocumentUri]*document),
	}
	ls.parser = calc.NewParser(append([]calc.Option{calc.WithCache(ls.cache)}, opts...)...)

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	ls.cache.Flush()
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	ls.mu.Lock()
	doc, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	if !ok {
		return nil
	}

	text := doc.text
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			lines := newLineIndex(text)
			start, end := lines.offset(c.Range.Start), lines.offset(c.Range.End)
			end = max(end, start)
			text = text[:start] + c.Text + text[end:]
		}
	}
	return ls.update(ctx, params.TextDocument.URI, text)
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.retainOpenDocuments()
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	ls.mu.Lock()
	doc, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	if !ok {
		return nil, nil
	}

	tok := doc.root.TokenAtOffset(doc.lines.offset(params.Position))
	if tok == nil {
		return nil, nil
	}

	r := tok.TextRange()
	rng := doc.lines.rangeOf(r.Start, r.End)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: describe(tok),
		},
		Range: &rng,
	}, nil
}

// describe renders a token and the kinds of its enclosing nodes, innermost
// first.
func describe(tok *syntax.Token) string {
	var path []string
	for _, n := range tok.Parent().Ancestors() {
		path = append(path, calc.KindName(n.Kind()))
	}
	return fmt.Sprintf("%s %q in %s", calc.KindName(tok.Kind()), tok.Text(), strings.Join(path, " > "))
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	root, diags, err := ls.parser.Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s: %w", uri, err)
	}
	doc := &document{
		uri:   uri,
		text:  text,
		lines: newLineIndex(text),
		root:  root,
		diags: diags,
	}

	ls.mu.Lock()
	ls.docs[uri] = doc
	ls.retainOpenDocuments()
	ls.mu.Unlock()

	log.Debugf("parsed %s: %d diagnostics", uri, len(diags))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: doc.diagnostics(),
	})
	return nil
}

// retainOpenDocuments evicts interned records no open document uses any
// more. ls.mu must be held.
func (ls *Server) retainOpenDocuments() {
	roots := make([]green.Element, 0, len(ls.docs))
	for _, doc := range ls.docs {
		roots = append(roots, doc.root.GreenNode())
	}
	ls.cache.Retain(roots...)
}

func (d *document) diagnostics() []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(d.diags))
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, diag := range d.diags {
		out = append(out, protocol.Diagnostic{
			Range:    d.lines.rangeOf(diag.Offset, diag.Offset),
			Severity: &severity,
			Source:   &source,
			Message:  diag.Message,
		})
	}
	return out
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

package parser

import (
	"slices"

	"tsiface/internal/diag"
	"tsiface/internal/lexer"
	"tsiface/internal/source"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

type Options struct {
	// TypeScript enables TypeScript syntax. When false, interface
	// declarations are still parsed but reported as not allowed.
	TypeScript    bool
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File source.FileID
	Bag  *diag.Bag
}

// fnContext tracks which contextual keywords are reserved in the enclosing
// function.
type fnContext struct {
	async     bool
	generator bool
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	file     source.FileID
	fs       *source.FileSet
	opts     Options
	v        visit.Visitor
	lastSpan source.Span // span of the last consumed token
	fnStack  []fnContext
}

// New creates a parser reading from lx and sending events to v.
// A nil visitor discards events.
func New(fs *source.FileSet, lx *lexer.Lexer, v visit.Visitor, opts Options) *Parser {
	if v == nil {
		v = visit.Nop{}
	}
	return &Parser{
		lx:       lx,
		file:     lx.File().ID,
		fs:       fs,
		opts:     opts,
		v:        v,
		lastSpan: lx.EmptySpan(),
	}
}

// ParseFile parses a whole module and finishes with EndOfModule.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, v visit.Visitor, opts Options) Result {
	p := New(fs, lx, v, opts)
	p.ParseModule()
	return p.result()
}

// ParseInterface parses the single interface declaration the lexer is
// positioned at. It does not emit EndOfModule.
func ParseInterface(fs *source.FileSet, lx *lexer.Lexer, v visit.Visitor, opts Options) Result {
	p := New(fs, lx, v, opts)
	p.ParseInterface()
	return p.result()
}

func (p *Parser) result() Result {
	var bag *diag.Bag
	switch r := p.opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = r.Bag
	case diag.BagReporter:
		bag = r.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

// Errors returns the number of error diagnostics reported so far.
func (p *Parser) Errors() uint {
	return p.opts.CurrentErrors
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

func (p *Parser) pushFn(ctx fnContext) { p.fnStack = append(p.fnStack, ctx) }

func (p *Parser) popFn() { p.fnStack = p.fnStack[:len(p.fnStack)-1] }

func (p *Parser) inAsync() bool {
	return len(p.fnStack) > 0 && p.fnStack[len(p.fnStack)-1].async
}

func (p *Parser) inGenerator() bool {
	return len(p.fnStack) > 0 && p.fnStack[len(p.fnStack)-1].generator
}

package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsiface/internal/source"
	"tsiface/internal/visit"
)

type symbolFrame struct {
	sym   *protocol.DocumentSymbol
	depth int // nested non-interface scopes
}

// documentSymbols rebuilds an outline from the visitor event stream.
// Interfaces nest their named members; top-level functions and variables
// are listed flat. A property immediately followed by a function scope is
// a method.
func documentSymbols(file *source.File, events []visit.Event) []protocol.DocumentSymbol {
	root := &protocol.DocumentSymbol{}
	stack := []*symbolFrame{{sym: root}}
	var pending *protocol.DocumentSymbol

	for i, ev := range events {
		top := stack[len(stack)-1]
		next := func() (visit.Event, bool) {
			if i+1 < len(events) {
				return events[i+1], true
			}
			return visit.Event{}, false
		}

		switch ev.Kind {
		case visit.EvVariableDeclaration:
			if top.depth > 0 || !ev.HasName {
				continue
			}
			switch ev.VarKind {
			case visit.VarInterface:
				if n, ok := next(); ok && n.Kind == visit.EvEnterInterfaceScope {
					s := newSymbol(file, ev, protocol.SymbolKindInterface)
					pending = &s
				}
			case visit.VarFunction:
				top.sym.Children = append(top.sym.Children, newSymbol(file, ev, protocol.SymbolKindFunction))
			case visit.VarVariable:
				top.sym.Children = append(top.sym.Children, newSymbol(file, ev, protocol.SymbolKindVariable))
			}
		case visit.EvEnterInterfaceScope:
			stack = append(stack, &symbolFrame{sym: pending})
			pending = nil
		case visit.EvExitInterfaceScope:
			if len(stack) == 1 {
				continue
			}
			stack = stack[:len(stack)-1]
			if top.sym == nil {
				continue
			}
			if ev.Span.End > 0 {
				extendRange(top.sym, rangeForSpan(file, ev.Span))
			}
			parent := stack[len(stack)-1]
			if parent.sym != nil {
				parent.sym.Children = append(parent.sym.Children, *top.sym)
			}
		case visit.EvPropertyDeclaration:
			if top.sym == nil || top == stack[0] || top.depth > 0 || !ev.HasName {
				continue
			}
			kind := protocol.SymbolKindProperty
			if n, ok := next(); ok && n.Kind == visit.EvEnterFunctionScope {
				kind = protocol.SymbolKindMethod
			}
			child := newSymbol(file, ev, kind)
			extendRange(top.sym, child.Range)
			top.sym.Children = append(top.sym.Children, child)
		case visit.EvEnterFunctionScope, visit.EvEnterIndexSignatureScope, visit.EvEnterBlockScope:
			top.depth++
		case visit.EvExitFunctionScope, visit.EvExitIndexSignatureScope, visit.EvExitBlockScope:
			top.depth = max(top.depth-1, 0)
		}
	}

	// Unterminated interfaces still show up.
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.sym != nil && stack[len(stack)-1].sym != nil {
			parent := stack[len(stack)-1].sym
			parent.Children = append(parent.Children, *top.sym)
		}
	}
	return root.Children
}

func newSymbol(file *source.File, ev visit.Event, kind protocol.SymbolKind) protocol.DocumentSymbol {
	r := rangeForSpan(file, ev.Span)
	return protocol.DocumentSymbol{
		Name:           ev.Name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
}

func extendRange(sym *protocol.DocumentSymbol, r protocol.Range) {
	if positionLess(r.Start, sym.Range.Start) {
		sym.Range.Start = r.Start
	}
	if positionLess(sym.Range.End, r.End) {
		sym.Range.End = r.End
	}
}

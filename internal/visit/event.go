package visit

import (
	"fmt"
	"strings"

	"tsiface/internal/source"
)

// EventKind tags a recorded event.
type EventKind uint8

const (
	EvEnterInterfaceScope EventKind = iota
	EvExitInterfaceScope
	EvEnterFunctionScope
	EvEnterFunctionScopeBody
	EvExitFunctionScope
	EvEnterIndexSignatureScope
	EvExitIndexSignatureScope
	EvEnterBlockScope
	EvExitBlockScope
	EvVariableDeclaration
	EvPropertyDeclaration
	EvVariableUse
	EvVariableTypeUse
	EvVariableNamespaceUse
	EvEndOfModule
)

var eventKindNames = [...]string{
	EvEnterInterfaceScope:      "enter_interface_scope",
	EvExitInterfaceScope:       "exit_interface_scope",
	EvEnterFunctionScope:       "enter_function_scope",
	EvEnterFunctionScopeBody:   "enter_function_scope_body",
	EvExitFunctionScope:        "exit_function_scope",
	EvEnterIndexSignatureScope: "enter_index_signature_scope",
	EvExitIndexSignatureScope:  "exit_index_signature_scope",
	EvEnterBlockScope:          "enter_block_scope",
	EvExitBlockScope:           "exit_block_scope",
	EvVariableDeclaration:      "variable_declaration",
	EvPropertyDeclaration:      "property_declaration",
	EvVariableUse:              "variable_use",
	EvVariableTypeUse:          "variable_type_use",
	EvVariableNamespaceUse:     "variable_namespace_use",
	EvEndOfModule:              "end_of_module",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is one recorded visitor call.
type Event struct {
	Kind EventKind
	// Name is the identifier for declarations and uses. HasName is false for
	// scope events and for unnamed property declarations.
	Name    string
	HasName bool
	Span    source.Span
	VarKind VarKind
}

// String renders the compact form used by tests and the events command:
// enter_interface, decl(I:interface), prop(m), prop(?), use(x),
// type_use(T), ns_use(ns), exit_fn and so on.
func (e Event) String() string {
	switch e.Kind {
	case EvEnterInterfaceScope:
		return "enter_interface"
	case EvExitInterfaceScope:
		return "exit_interface"
	case EvEnterFunctionScope:
		return "enter_fn"
	case EvEnterFunctionScopeBody:
		return "enter_fn_body"
	case EvExitFunctionScope:
		return "exit_fn"
	case EvEnterIndexSignatureScope:
		return "enter_idx"
	case EvExitIndexSignatureScope:
		return "exit_idx"
	case EvEnterBlockScope:
		return "enter_block"
	case EvExitBlockScope:
		return "exit_block"
	case EvVariableDeclaration:
		return fmt.Sprintf("decl(%s:%s)", e.Name, e.VarKind)
	case EvPropertyDeclaration:
		if !e.HasName {
			return "prop(?)"
		}
		return fmt.Sprintf("prop(%s)", e.Name)
	case EvVariableUse:
		return fmt.Sprintf("use(%s)", e.Name)
	case EvVariableTypeUse:
		return fmt.Sprintf("type_use(%s)", e.Name)
	case EvVariableNamespaceUse:
		return fmt.Sprintf("ns_use(%s)", e.Name)
	case EvEndOfModule:
		return "eom"
	}
	return e.Kind.String()
}

// Recorder is a Visitor that stores every event.
type Recorder struct {
	Events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{Events: make([]Event, 0, 32)}
}

func (r *Recorder) push(kind EventKind) {
	r.Events = append(r.Events, Event{Kind: kind})
}

func (r *Recorder) pushID(kind EventKind, id Identifier, vk VarKind) {
	r.Events = append(r.Events, Event{Kind: kind, Name: id.Name, HasName: true, Span: id.Span, VarKind: vk})
}

func (r *Recorder) EnterInterfaceScope() { r.push(EvEnterInterfaceScope) }
func (r *Recorder) ExitInterfaceScope() { r.push(EvExitInterfaceScope) }
func (r *Recorder) EnterFunctionScope() { r.push(EvEnterFunctionScope) }
func (r *Recorder) EnterFunctionScopeBody() { r.push(EvEnterFunctionScopeBody) }
func (r *Recorder) ExitFunctionScope() { r.push(EvExitFunctionScope) }
func (r *Recorder) EnterIndexSignatureScope() { r.push(EvEnterIndexSignatureScope) }
func (r *Recorder) ExitIndexSignatureScope() { r.push(EvExitIndexSignatureScope) }
func (r *Recorder) EnterBlockScope() { r.push(EvEnterBlockScope) }
func (r *Recorder) ExitBlockScope() { r.push(EvExitBlockScope) }
func (r *Recorder) EndOfModule() { r.push(EvEndOfModule) }

func (r *Recorder) VariableDeclaration(id Identifier, kind VarKind) {
	r.pushID(EvVariableDeclaration, id, kind)
}

func (r *Recorder) PropertyDeclaration(name *Identifier) {
	if name == nil {
		r.push(EvPropertyDeclaration)
		return
	}
	r.pushID(EvPropertyDeclaration, *name, 0)
}

func (r *Recorder) VariableUse(id Identifier) { r.pushID(EvVariableUse, id, 0) }
func (r *Recorder) VariableTypeUse(id Identifier) { r.pushID(EvVariableTypeUse, id, 0) }
func (r *Recorder) VariableNamespaceUse(id Identifier) { r.pushID(EvVariableNamespaceUse, id, 0) }

// Strings returns the compact form of every event.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.String()
	}
	return out
}

// Summary joins Strings with ", ".
func (r *Recorder) Summary() string {
	return strings.Join(r.Strings(), ", ")
}

// Reset drops the recorded events, keeping the buffer.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Replay sends recorded events to v in order.
func Replay(v Visitor, events ...Event) {
	for _, e := range events {
		id := Identifier{Name: e.Name, Span: e.Span}
		switch e.Kind {
		case EvEnterInterfaceScope:
			v.EnterInterfaceScope()
		case EvExitInterfaceScope:
			v.ExitInterfaceScope()
		case EvEnterFunctionScope:
			v.EnterFunctionScope()
		case EvEnterFunctionScopeBody:
			v.EnterFunctionScopeBody()
		case EvExitFunctionScope:
			v.ExitFunctionScope()
		case EvEnterIndexSignatureScope:
			v.EnterIndexSignatureScope()
		case EvExitIndexSignatureScope:
			v.ExitIndexSignatureScope()
		case EvEnterBlockScope:
			v.EnterBlockScope()
		case EvExitBlockScope:
			v.ExitBlockScope()
		case EvVariableDeclaration:
			v.VariableDeclaration(id, e.VarKind)
		case EvPropertyDeclaration:
			if e.HasName {
				v.PropertyDeclaration(&id)
			} else {
				v.PropertyDeclaration(nil)
			}
		case EvVariableUse:
			v.VariableUse(id)
		case EvVariableTypeUse:
			v.VariableTypeUse(id)
		case EvVariableNamespaceUse:
			v.VariableNamespaceUse(id)
		case EvEndOfModule:
			v.EndOfModule()
		}
	}
}

package visit

import "tsiface/internal/source"

// VarKind says what a VariableDeclaration introduces.
type VarKind uint8

const (
	VarInterface VarKind = iota
	VarGenericParameter
	VarParameter
	VarFunction
	VarVariable
)

func (k VarKind) String() string {
	switch k {
	case VarInterface:
		return "interface"
	case VarGenericParameter:
		return "generic_parameter"
	case VarParameter:
		return "parameter"
	case VarFunction:
		return "function"
	case VarVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Identifier is a name together with the span it was written at.
type Identifier struct {
	Name string
	Span source.Span
}

// Visitor receives parser events in source order.
type Visitor interface {
	EnterInterfaceScope()
	ExitInterfaceScope()
	EnterFunctionScope()
	EnterFunctionScopeBody()
	ExitFunctionScope()
	EnterIndexSignatureScope()
	ExitIndexSignatureScope()
	EnterBlockScope()
	ExitBlockScope()

	VariableDeclaration(id Identifier, kind VarKind)
	// PropertyDeclaration announces an interface member. name is nil for
	// string, numeric and computed keys and for call, construct and
	// index-signature members.
	PropertyDeclaration(name *Identifier)

	VariableUse(id Identifier)
	VariableTypeUse(id Identifier)
	VariableNamespaceUse(id Identifier)

	EndOfModule()
}

// Nop ignores every event. Embed it to implement only the events you need.
type Nop struct{}

func (Nop) EnterInterfaceScope() {}
func (Nop) ExitInterfaceScope() {}
func (Nop) EnterFunctionScope() {}
func (Nop) EnterFunctionScopeBody() {}
func (Nop) ExitFunctionScope() {}
func (Nop) EnterIndexSignatureScope() {}
func (Nop) ExitIndexSignatureScope() {}
func (Nop) EnterBlockScope() {}
func (Nop) ExitBlockScope() {}
func (Nop) VariableDeclaration(Identifier, VarKind) {}
func (Nop) PropertyDeclaration(*Identifier) {}
func (Nop) VariableUse(Identifier) {}
func (Nop) VariableTypeUse(Identifier) {}
func (Nop) VariableNamespaceUse(Identifier) {}
func (Nop) EndOfModule() {}

// Multi forwards each event to every visitor in order.
type Multi []Visitor

func (m Multi) EnterInterfaceScope() {
	for _, v := range m {
		v.EnterInterfaceScope()
	}
}

func (m Multi) ExitInterfaceScope() {
	for _, v := range m {
		v.ExitInterfaceScope()
	}
}

func (m Multi) EnterFunctionScope() {
	for _, v := range m {
		v.EnterFunctionScope()
	}
}

func (m Multi) EnterFunctionScopeBody() {
	for _, v := range m {
		v.EnterFunctionScopeBody()
	}
}

func (m Multi) ExitFunctionScope() {
	for _, v := range m {
		v.ExitFunctionScope()
	}
}

func (m Multi) EnterIndexSignatureScope() {
	for _, v := range m {
		v.EnterIndexSignatureScope()
	}
}

func (m Multi) ExitIndexSignatureScope() {
	for _, v := range m {
		v.ExitIndexSignatureScope()
	}
}

func (m Multi) EnterBlockScope() {
	for _, v := range m {
		v.EnterBlockScope()
	}
}

func (m Multi) ExitBlockScope() {
	for _, v := range m {
		v.ExitBlockScope()
	}
}

func (m Multi) VariableDeclaration(id Identifier, kind VarKind) {
	for _, v := range m {
		v.VariableDeclaration(id, kind)
	}
}

func (m Multi) PropertyDeclaration(name *Identifier) {
	for _, v := range m {
		v.PropertyDeclaration(name)
	}
}

func (m Multi) VariableUse(id Identifier) {
	for _, v := range m {
		v.VariableUse(id)
	}
}

func (m Multi) VariableTypeUse(id Identifier) {
	for _, v := range m {
		v.VariableTypeUse(id)
	}
}

func (m Multi) VariableNamespaceUse(id Identifier) {
	for _, v := range m {
		v.VariableNamespaceUse(id)
	}
}

func (m Multi) EndOfModule() {
	for _, v := range m {
		v.EndOfModule()
	}
}

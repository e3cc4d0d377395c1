package parser

import (
	"fmt"

	"tsiface/internal/diag"
)

// validate applies the interface member restrictions to m. Each rule is
// independent and reports at most once.
func (p *Parser) validate(m *member) {
	if acc, ok := m.mods.first(modAccess); ok {
		p.report(diag.ModAccessSpecifierNotAllowed, diag.SevError, acc.span,
			fmt.Sprintf("interface members cannot be marked '%s'", acc.text),
			diag.DeleteFix("remove '"+acc.text+"'", acc.span))
	}
	if st, ok := m.mods.first(modStatic); ok {
		p.report(diag.ModStaticNotAllowed, diag.SevError, st.span,
			"interface properties cannot be static",
			diag.DeleteFix("remove 'static'", st.span))
	}

	switch m.shape {
	case shapeMethod, shapeAccessor:
		if as, ok := m.mods.first(modAsync); ok {
			p.report(diag.ModAsyncNotAllowed, diag.SevError, as.span,
				"interface methods cannot be async",
				diag.DeleteFix("remove 'async'", as.span))
		}
	case shapeField, shapeCallSignature, shapeConstructSignature, shapeIndexSignature:
	}

	switch m.shape {
	case shapeMethod, shapeCallSignature:
		if star, ok := m.mods.first(modGenerator); ok {
			p.report(diag.ModGeneratorNotAllowed, diag.SevError, star.span,
				"interface methods cannot be generators",
				diag.DeleteFix("remove '*'", star.span))
		}
	case shapeField, shapeAccessor, shapeConstructSignature, shapeIndexSignature:
	}

	if m.key.private {
		p.report(diag.ModPrivateNotAllowed, diag.SevError, m.key.span,
			"interface properties cannot be private")
	}

	switch m.shape {
	case shapeField:
		if m.initializer.seen {
			p.report(diag.ModInitializerNotAllowed, diag.SevError, m.initializer.span,
				"interface fields cannot have initializers")
		}
		if m.definite.seen {
			p.report(diag.ModDefiniteAssignmentNotAllowed, diag.SevError, m.definite.span,
				"interface fields cannot be marked with a definite assignment assertion",
				diag.DeleteFix("remove '!'", m.definite.span))
		}
	case shapeMethod, shapeAccessor, shapeCallSignature, shapeConstructSignature:
		if ro, ok := m.mods.first(modReadonly); ok {
			p.report(diag.ModReadonlyMethod, diag.SevError, ro.span,
				"interface methods cannot be readonly",
				diag.DeleteFix("remove 'readonly'", ro.span))
		}
		if m.body.seen {
			p.report(diag.SynMethodCannotContainBody, diag.SevError, m.body.span,
				"interface methods cannot contain bodies")
		}
		if m.arrow.seen {
			p.report(diag.SynArrowOperatorOnMethod, diag.SevError, m.arrow.span,
				"functions or methods should not have an arrow operator",
				diag.DeleteFix("remove '=>'", m.arrow.span))
		}
	case shapeIndexSignature:
		switch {
		case m.indexParen.seen:
			p.report(diag.SynIndexSignatureCannotBeMethod, diag.SevError, m.indexParen.span,
				"index signatures cannot be methods")
		case !m.indexValue.seen:
			at := m.indexClose.span.AtEnd()
			p.report(diag.SynIndexSignatureNeedsType, diag.SevError, at,
				"index signatures require a value type",
				diag.InsertFix("add a value type", at, ": unknown"))
		}
	}
}

package visit

import "fmt"

// CheckBalance verifies that scope events nest correctly and that every scope
// is closed. EnterFunctionScopeBody must appear inside a function scope, at
// most once per scope.
func CheckBalance(events []Event) error {
	type frame struct {
		kind    EventKind
		hasBody bool
	}
	stack := make([]frame, 0, 8)
	pop := func(i int, enter EventKind) error {
		if len(stack) == 0 {
			return fmt.Errorf("event %d: %v without a matching enter", i, events[i].Kind)
		}
		top := stack[len(stack)-1]
		if top.kind != enter {
			return fmt.Errorf("event %d: %v closes %v", i, events[i].Kind, top.kind)
		}
		stack = stack[:len(stack)-1]
		return nil
	}
	for i, e := range events {
		var err error
		switch e.Kind {
		case EvEnterInterfaceScope, EvEnterFunctionScope, EvEnterIndexSignatureScope, EvEnterBlockScope:
			stack = append(stack, frame{kind: e.Kind})
		case EvEnterFunctionScopeBody:
			if len(stack) == 0 || stack[len(stack)-1].kind != EvEnterFunctionScope {
				return fmt.Errorf("event %d: function body outside a function scope", i)
			}
			if stack[len(stack)-1].hasBody {
				return fmt.Errorf("event %d: second function body in one scope", i)
			}
			stack[len(stack)-1].hasBody = true
		case EvExitInterfaceScope:
			err = pop(i, EvEnterInterfaceScope)
		case EvExitFunctionScope:
			err = pop(i, EvEnterFunctionScope)
		case EvExitIndexSignatureScope:
			err = pop(i, EvEnterIndexSignatureScope)
		case EvExitBlockScope:
			err = pop(i, EvEnterBlockScope)
		}
		if err != nil {
			return err
		}
	}
	if len(stack) != 0 {
		return fmt.Errorf("%d scope(s) left open, innermost %v", len(stack), stack[len(stack)-1].kind)
	}
	return nil
}

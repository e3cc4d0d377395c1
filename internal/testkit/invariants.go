// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tsiface/internal/source"
	"tsiface/internal/visit"
)

// CheckEventInvariants runs the invariants every parse must satisfy:
// 1) scope events nest and every scope is closed
// 2) with wantEOM, end_of_module appears exactly once, as the last event
// 3) every span is ordered, within the file content and points at sf
func CheckEventInvariants(sf *source.File, events []visit.Event, wantEOM bool) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if err := visit.CheckBalance(events); err != nil {
		return err
	}

	eom := 0
	for i, e := range events {
		if e.Kind == visit.EvEndOfModule {
			eom++
			if i != len(events)-1 {
				return fmt.Errorf("event %d: end_of_module before the last event", i)
			}
		}
	}
	switch {
	case wantEOM && eom != 1:
		return fmt.Errorf("expected one end_of_module, got %d", eom)
	case !wantEOM && eom != 0:
		return fmt.Errorf("unexpected end_of_module")
	}

	contentLen, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	for i, e := range events {
		sp := e.Span
		if sp.End < sp.Start {
			return fmt.Errorf("event %d (%s): inverted span %v", i, e, sp)
		}
		if sp.End > contentLen {
			return fmt.Errorf("event %d (%s): span %v beyond content end %d", i, e, sp, contentLen)
		}
		if sp.End > 0 && sp.File != sf.ID {
			return fmt.Errorf("event %d (%s): span file mismatch: got=%d want=%d", i, e, sp.File, sf.ID)
		}
	}
	return nil
}

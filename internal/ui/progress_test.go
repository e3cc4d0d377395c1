package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tsiface/internal/driver"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("checking", files, nil).(*progressModel)
}

func send(m *progressModel, ev driver.Event) {
	m.Update(eventMsg(ev))
}

func TestProgressCountsFinishedFiles(t *testing.T) {
	m := newTestModel("a.ts", "b.ts", "c.ts")
	send(m, driver.Event{File: "a.ts", Status: driver.StatusWorking})
	send(m, driver.Event{File: "a.ts", Status: driver.StatusDone, Elapsed: time.Millisecond})
	send(m, driver.Event{File: "b.ts", Status: driver.StatusError})
	send(m, driver.Event{File: "b.ts", Status: driver.StatusError})
	send(m, driver.Event{File: "unknown.ts", Status: driver.StatusDone})

	if m.finished != 2 || m.errors != 1 {
		t.Errorf("finished=%d errors=%d, want 2 and 1", m.finished, m.errors)
	}
	view := m.View()
	for _, want := range []string{"checking (2/3 files, 1 with errors)", "done a.ts", "error b.ts", "queued c.ts"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressQuitsWhenEventsClose(t *testing.T) {
	m := newTestModel("a.ts")
	_, cmd := m.Update(doneMsg{})
	if !m.done {
		t.Error("model should be done")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "done: checking") {
		t.Errorf("unexpected view:\n%s", m.View())
	}
}

func TestListenForEvent(t *testing.T) {
	events := make(chan driver.Event, 1)
	m := NewProgressModel("checking", []string{"a.ts"}, events).(*progressModel)

	events <- driver.Event{File: "a.ts", Status: driver.StatusWorking}
	if msg, ok := m.listenForEvent()().(eventMsg); !ok || msg.File != "a.ts" {
		t.Errorf("unexpected message %#v", msg)
	}
	close(events)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Error("expected doneMsg after close")
	}
}

func TestVisibleItemsKeepsPendingFiles(t *testing.T) {
	m := newTestModel("a.ts", "b.ts", "c.ts", "d.ts")
	m.maxRows = 2
	send(m, driver.Event{File: "a.ts", Status: driver.StatusDone})
	send(m, driver.Event{File: "b.ts", Status: driver.StatusCached})

	got := m.visibleItems()
	if len(got) != 2 || got[0].path != "c.ts" || got[1].path != "d.ts" {
		t.Errorf("unexpected visible items %+v", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.ts", 20, "short.ts"},
		{"src/very/long/path.ts", 10, "src/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

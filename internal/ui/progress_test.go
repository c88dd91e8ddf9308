package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"sympool/internal/bench"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	m := NewProgressModel("bench", []string{"intern_basic_4", "intern_short_4"}, nil).(*progressModel)

	m.Update(eventMsg(bench.Event{Case: "intern_basic_4", Status: bench.StatusWorking}))
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
	m.Update(eventMsg(bench.Event{Case: "intern_basic_4", Status: bench.StatusDone, Elapsed: 1500 * time.Millisecond}))
	m.Update(eventMsg(bench.Event{Case: "intern_short_4", Status: bench.StatusError, Err: errors.New("boom")}))
	m.Update(eventMsg(bench.Event{Case: "unknown", Status: bench.StatusDone}))

	if m.finished() != 2 || m.failed != 1 {
		t.Fatalf("finished=%d failed=%d", m.finished(), m.failed)
	}
	view := m.View()
	for _, want := range []string{"(2/2)", "1 failed", "intern_basic_4", "1.5s", "error"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsOnClose(t *testing.T) {
	ch := make(chan bench.Event)
	close(ch)
	m := NewProgressModel("bench", []string{"a"}, ch).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("got %T, want doneMsg", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatal("model should be done and quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.Quit")
	}
	if !strings.Contains(m.View(), "done: bench") {
		t.Fatalf("view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("parallel-resolve_locked_32", 10); got != "paralle..." {
		t.Fatalf("truncate = %q", got)
	}
	// truncated names fill the column they are padded to
	for _, w := range []int{4, 12, 20} {
		if got := truncate("parallel-resolve_locked_32", w); runewidth.StringWidth(got) != w {
			t.Fatalf("truncate(_, %d) = %q, width %d", w, got, runewidth.StringWidth(got))
		}
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}

package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFrame_FillsTerminal(t *testing.T) {
	var gotW, gotH int
	out := Frame{Title: "Question 1 of 15", Status: "⏱ 29:59"}.Render(100, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})

	if gotW != 100 {
		t.Errorf("body width = %d, want 100", gotW)
	}
	if gotH <= 0 || gotH >= 30 {
		t.Errorf("body height = %d, want between header and footer", gotH)
	}
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	for _, want := range []string{"Quizo", "Question 1 of 15", "29:59", "body", "Ctrl+C"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestFrame_ScreenHints(t *testing.T) {
	out := Frame{Hints: []KeyHint{{Key: "Enter", Description: "Start"}}}.Render(80, 24, func(int, int) string { return "" })
	if !strings.Contains(out, "Enter") || strings.Contains(out, "Ctrl+C") {
		t.Error("screen hints should replace the defaults")
	}
}

func TestFrame_TooSmall(t *testing.T) {
	called := false
	out := Frame{}.Render(40, 10, func(int, int) string { called = true; return "" })
	if called {
		t.Error("body rendered in a too-small terminal")
	}
	if !strings.Contains(out, "Terminal too small") {
		t.Errorf("unexpected output %q", out)
	}
}

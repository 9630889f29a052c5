package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestModel_FetchDoneStoresResultAndQuits(t *testing.T) {
	m := newModel(context.Background(), "results.html", nil)

	updated, cmd := m.Update(fetchDoneMsg{data: []byte("page")})
	if cmd == nil {
		t.Fatal("expected quit command after fetch completes")
	}
	fm := updated.(model)
	if string(fm.data) != "page" {
		t.Errorf("fetch result not stored: %q", fm.data)
	}
	if fm.View() != "" {
		t.Errorf("view should go quiet once done, got %q", fm.View())
	}
}

func TestModel_FetchErrorPropagates(t *testing.T) {
	m := newModel(context.Background(), "results.html", nil)

	updated, _ := m.Update(fetchDoneMsg{err: errors.New("connection refused")})
	fm := updated.(model)
	if fm.err == nil {
		t.Fatal("expected stored error")
	}
}

func TestModel_ViewShowsLabelWhileFetching(t *testing.T) {
	m := newModel(context.Background(), "https://logs.example.org/r.html", nil)
	view := m.View()
	if !strings.Contains(view, "https://logs.example.org/r.html") {
		t.Errorf("view %q missing download label", view)
	}
}

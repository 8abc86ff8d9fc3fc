package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/rnwolfe/tofi/internal/history"
	"github.com/rnwolfe/tofi/internal/store"
)

func TestRunHistory_Empty(t *testing.T) {
	configTestEnv(t)
	historyLimit, historyMode = history.DefaultLimit, ""

	out := captureStdout(t, func() {
		if err := runHistory(nil, nil); err != nil {
			t.Errorf("runHistory: %v", err)
		}
	})
	if !strings.Contains(out, "Nothing launched yet") {
		t.Fatalf("expected empty message, got %q", out)
	}
}

func TestRunHistory_ListsAndFilters(t *testing.T) {
	configTestEnv(t)

	db, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	hs := history.NewStore(db.Conn())
	hs.Record(history.Launch{Mode: "run", Selection: "firefox", Outcome: "close-success"})
	hs.Record(history.Launch{Mode: "dmenu", Selection: "notes.txt", Outcome: "close-success"})
	db.Close()

	historyLimit, historyMode = 10, "run"
	defer func() { historyMode = "" }()

	out := captureStdout(t, func() {
		if err := runHistory(nil, nil); err != nil {
			t.Errorf("runHistory: %v", err)
		}
	})
	if !strings.Contains(out, "firefox") {
		t.Fatalf("expected run entry, got %q", out)
	}
	if strings.Contains(out, "notes.txt") {
		t.Fatalf("dmenu entry should be filtered out, got %q", out)
	}
}

func TestRunHistory_BadMode(t *testing.T) {
	configTestEnv(t)
	historyMode = "bogus"
	defer func() { historyMode = "" }()

	if err := runHistory(nil, nil); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}

func TestFormatLaunch_Failure(t *testing.T) {
	l := history.Launch{Mode: "run", Selection: "nope", Outcome: "close-failure", CreatedAt: time.Now()}
	if !strings.Contains(formatLaunch(l), "failed") {
		t.Fatal("failed launches should be marked")
	}
}

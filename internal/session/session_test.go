package session

import (
	"errors"
	"testing"
)

func TestRepository_BeginAndEnd(t *testing.T) {
	repo := newTestStore(t).Sessions()

	sess, err := repo.Begin("landmarks.csv")
	if err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}
	if sess.ID == "" {
		t.Error("expected a session id")
	}
	if sess.DatasetPath != "landmarks.csv" {
		t.Errorf("expected dataset path landmarks.csv, got %s", sess.DatasetPath)
	}

	if err := repo.End(sess.ID); err != nil {
		t.Fatalf("failed to end session: %v", err)
	}

	sessions, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].EndedAt == nil {
		t.Error("expected session to be ended")
	}
}

func TestRepository_EndUnknownSession(t *testing.T) {
	repo := newTestStore(t).Sessions()

	if err := repo.End("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_LabelCounts(t *testing.T) {
	repo := newTestStore(t).Sessions()

	sess, err := repo.Begin("landmarks.csv")
	if err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementLabel(sess.ID, 0); err != nil {
			t.Fatalf("failed to increment label 0: %v", err)
		}
	}
	if err := repo.IncrementLabel(sess.ID, 1); err != nil {
		t.Fatalf("failed to increment label 1: %v", err)
	}

	sessions, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if got := sessions[0].Counts[0]; got != 3 {
		t.Errorf("expected 3 samples for label 0, got %d", got)
	}
	if got := sessions[0].Counts[1]; got != 1 {
		t.Errorf("expected 1 sample for label 1, got %d", got)
	}
}

func TestRepository_Totals(t *testing.T) {
	repo := newTestStore(t).Sessions()

	first, err := repo.Begin("a.csv")
	if err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}
	second, err := repo.Begin("b.csv")
	if err != nil {
		t.Fatalf("failed to begin session: %v", err)
	}

	repo.IncrementLabel(first.ID, 0)
	repo.IncrementLabel(first.ID, 1)
	repo.IncrementLabel(second.ID, 1)

	totals, err := repo.Totals()
	if err != nil {
		t.Fatalf("failed to get totals: %v", err)
	}
	if totals[0] != 1 || totals[1] != 2 {
		t.Errorf("unexpected totals: %v", totals)
	}
}

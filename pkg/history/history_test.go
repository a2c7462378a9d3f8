package history

import (
	"testing"
	"time"

	"github.com/kaiwastudio/kaiwa/pkg/session"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalAppendAndAll(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		rec := &CallRecord{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			EndedAt:   base.Add(time.Duration(i)*time.Hour + 5*time.Minute),
			Transcript: []session.TranscriptEvent{
				{Role: session.RoleUser, Text: "こんにちは", ProducedAt: base},
			},
		}
		if err := j.Append(rec); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if rec.ID == "" {
			t.Fatal("Append() did not assign an ID")
		}
	}

	var got []*CallRecord
	for rec, err := range j.All() {
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		got = append(got, rec)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartedAt.Before(got[i-1].StartedAt) {
			t.Errorf("records out of chronological order at %d", i)
		}
	}
	if len(got[0].Transcript) != 1 || got[0].Transcript[0].Text != "こんにちは" {
		t.Errorf("transcript did not round-trip: %+v", got[0].Transcript)
	}
}

func TestJournalAppendSpansDays(t *testing.T) {
	j := openTestJournal(t)

	// Records on different days still come back in order; the date
	// partition is part of the key.
	times := []time.Time{
		time.Date(2026, 8, 29, 23, 50, 0, 0, time.UTC),
		time.Date(2026, 8, 30, 0, 10, 0, 0, time.UTC),
	}
	for _, at := range times {
		if err := j.Append(&CallRecord{StartedAt: at}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	var got []*CallRecord
	for rec, err := range j.All() {
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		got = append(got, rec)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].StartedAt.Equal(times[0]) || !got[1].StartedAt.Equal(times[1]) {
		t.Errorf("order wrong: %v then %v", got[0].StartedAt, got[1].StartedAt)
	}
}

func TestJournalRecent(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	for i := range 5 {
		rec := &CallRecord{StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := j.Append(rec); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	recent, err := j.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if !recent[0].StartedAt.After(recent[1].StartedAt) {
		t.Errorf("Recent() not newest first: %v, %v",
			recent[0].StartedAt, recent[1].StartedAt)
	}
	if !recent[0].StartedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("newest = %v, want %v", recent[0].StartedAt, base.Add(4*time.Minute))
	}
}

func TestJournalRecentEmpty(t *testing.T) {
	j := openTestJournal(t)
	recent, err := j.Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("len = %d, want 0", len(recent))
	}
}

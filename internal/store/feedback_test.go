package store

import "testing"

func seedSession(t *testing.T, s *Store, id string) {
	t.Helper()
	if err := s.Sessions().Create(&Session{ID: id}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
}

func TestFeedbackRepository_Record(t *testing.T) {
	s := newTestStore(t)
	seedSession(t, s, "sess-1")

	e := &FeedbackEvent{
		SessionID: "sess-1",
		Frame:     57,
		Timestamp: 1.9,
		ErrorCode: "right_knee_too_closed",
		Severity:  1.0,
	}
	if err := s.Feedback().Record(e); err != nil {
		t.Fatalf("failed to record feedback: %v", err)
	}
	if e.ID == 0 {
		t.Error("ID should be set after Record")
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set after Record")
	}
}

func TestFeedbackRepository_Record_UnknownSession(t *testing.T) {
	s := newTestStore(t)

	err := s.Feedback().Record(&FeedbackEvent{
		SessionID: "missing",
		Frame:     1,
		ErrorCode: "spine_vertical",
	})
	if err == nil {
		t.Error("recording against a missing session should violate the foreign key")
	}
}

func TestFeedbackRepository_ListBySession(t *testing.T) {
	s := newTestStore(t)
	seedSession(t, s, "sess-1")
	seedSession(t, s, "sess-2")

	repo := s.Feedback()
	for frame := 60; frame <= 240; frame += 60 {
		err := repo.Record(&FeedbackEvent{
			SessionID: "sess-1",
			Frame:     frame,
			Timestamp: float64(frame) / 30,
			ErrorCode: "right_knee_too_closed",
			Severity:  1.0,
		})
		if err != nil {
			t.Fatalf("failed to record feedback: %v", err)
		}
	}
	if err := repo.Record(&FeedbackEvent{SessionID: "sess-2", Frame: 10, ErrorCode: "spine_vertical"}); err != nil {
		t.Fatalf("failed to record feedback: %v", err)
	}

	events, err := repo.ListBySession("sess-1", 0)
	if err != nil {
		t.Fatalf("failed to list feedback: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}
	// Newest first.
	for i := 1; i < len(events); i++ {
		if events[i].Frame > events[i-1].Frame {
			t.Errorf("events out of order: frame %d after %d", events[i].Frame, events[i-1].Frame)
		}
	}

	limited, err := repo.ListBySession("sess-1", 2)
	if err != nil {
		t.Fatalf("failed to list feedback with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
	if limited[0].Frame != 240 {
		t.Errorf("limited[0].Frame = %d, want 240", limited[0].Frame)
	}
}

func TestFeedbackRepository_CountBySession(t *testing.T) {
	s := newTestStore(t)
	seedSession(t, s, "sess-1")

	repo := s.Feedback()
	for i := 0; i < 3; i++ {
		err := repo.Record(&FeedbackEvent{
			SessionID: "sess-1",
			Frame:     i * 60,
			ErrorCode: "hips_level",
		})
		if err != nil {
			t.Fatalf("failed to record feedback: %v", err)
		}
	}

	count, err := repo.CountBySession("sess-1")
	if err != nil {
		t.Fatalf("failed to count feedback: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

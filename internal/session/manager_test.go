package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/drishti/internal/asana"
	"github.com/ayusman/drishti/internal/coach"
	"github.com/ayusman/drishti/internal/pose"
	"github.com/ayusman/drishti/internal/store"
	"github.com/ayusman/drishti/testdata"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "drishti-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	st, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})

	return st
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(asana.NewCatalog(), nil, coach.DefaultConfig())
	defer m.Shutdown()

	s, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if s.ID == "" {
		t.Fatal("session ID is empty")
	}

	got, ok := m.Get(s.ID)
	if !ok {
		t.Fatal("Get did not find the created session")
	}
	if got != s {
		t.Error("Get returned a different session")
	}
}

func TestManager_GetUnknown(t *testing.T) {
	m := NewManager(asana.NewCatalog(), nil, coach.DefaultConfig())
	defer m.Shutdown()

	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) = ok")
	}
}

func TestManager_List(t *testing.T) {
	m := NewManager(asana.NewCatalog(), nil, coach.DefaultConfig())
	defer m.Shutdown()

	for i := 0; i < 3; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
	}

	if got := len(m.List()); got != 3 {
		t.Errorf("len(List()) = %d, want 3", got)
	}
}

func TestManager_Close(t *testing.T) {
	m := NewManager(asana.NewCatalog(), nil, coach.DefaultConfig())
	defer m.Shutdown()

	s, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if !m.Close(s.ID) {
		t.Fatal("Close returned false for a live session")
	}
	if _, ok := m.Get(s.ID); ok {
		t.Error("session still reachable after Close")
	}
	if m.Close(s.ID) {
		t.Error("Close returned true for an already closed session")
	}
}

func TestManager_PersistsSessionRow(t *testing.T) {
	st := newTestStore(t)
	m := NewManager(asana.NewCatalog(), st, coach.DefaultConfig())
	defer m.Shutdown()

	s, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	row, err := st.Sessions().GetByID(s.ID)
	if err != nil {
		t.Fatalf("session row not persisted: %v", err)
	}
	if row.ClosedAt != nil {
		t.Error("ClosedAt set on a live session")
	}

	m.Close(s.ID)

	row, err = st.Sessions().GetByID(s.ID)
	if err != nil {
		t.Fatalf("failed to reload session row: %v", err)
	}
	if row.ClosedAt == nil {
		t.Error("ClosedAt not set after Close")
	}
}

// Delivered decisions flow through the async queue into the feedback
// table; Shutdown drains whatever is still queued.
func TestManager_PersistsDeliveredFeedback(t *testing.T) {
	st := newTestStore(t)
	m := NewManager(asana.NewCatalog(), st, coach.DefaultConfig())

	s, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if !s.SetAsana("warrior_2") {
		t.Fatal("SetAsana(warrior_2) = false")
	}

	joints := testdata.WarriorIIJoints()
	joints[pose.RightKnee] = 50

	delivered := 0
	for _, f := range testdata.EnterHold(joints, 60) {
		if d := s.Update(f); d.ShouldCoach {
			delivered++
		}
	}
	if delivered == 0 {
		t.Fatal("no decision delivered during the scripted hold")
	}

	m.Shutdown()

	count, err := st.Feedback().CountBySession(s.ID)
	if err != nil {
		t.Fatalf("failed to count feedback: %v", err)
	}
	if count != delivered {
		t.Errorf("persisted %d feedback events, want %d", count, delivered)
	}

	row, err := st.Sessions().GetByID(s.ID)
	if err != nil {
		t.Fatalf("failed to reload session row: %v", err)
	}
	if row.Asana != "warrior_2" {
		t.Errorf("persisted asana = %q, want warrior_2", row.Asana)
	}
	if row.FeedbackCount != delivered {
		t.Errorf("persisted feedback count = %d, want %d", row.FeedbackCount, delivered)
	}
}

func TestSession_StatsAndReset(t *testing.T) {
	m := NewManager(asana.NewCatalog(), nil, coach.DefaultConfig())
	defer m.Shutdown()

	s, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	s.SetAsana("mountain")

	for _, f := range testdata.EnterHold(testdata.MountainJoints(), 30) {
		s.Update(f)
	}
	s.Observe(coach.FrameSummary{FrameNum: 1, BalanceScore: 80, EnergyScore: 40, ValidKeypoints: 14})

	stats := s.Stats()
	if stats.TotalFrames != 35 {
		t.Errorf("TotalFrames = %d, want 35", stats.TotalFrames)
	}
	if stats.Engine.Asana != "mountain" {
		t.Errorf("Asana = %q, want mountain", stats.Engine.Asana)
	}
	if stats.AvgBalance != 80 || stats.AvgEnergy != 40 {
		t.Errorf("averages = %v/%v, want 80/40", stats.AvgBalance, stats.AvgEnergy)
	}

	s.Reset()

	stats = s.Stats()
	if stats.TotalFrames != 0 {
		t.Errorf("TotalFrames = %d after Reset, want 0", stats.TotalFrames)
	}
	if stats.Engine.Asana != "mountain" {
		t.Errorf("Asana = %q after Reset, want mountain", stats.Engine.Asana)
	}
	if stats.AvgBalance != 0 {
		t.Errorf("AvgBalance = %v after Reset, want 0", stats.AvgBalance)
	}
}

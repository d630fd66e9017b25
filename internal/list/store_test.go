package list

import (
	"context"
	"errors"
	"testing"

	"github.com/Makepad-fr/impact/internal/model"
	"github.com/Makepad-fr/impact/internal/store/memory"
	"github.com/Makepad-fr/impact/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIDs hands out 1, 2, 3, ... and respects observed ids.
type seqIDs struct{ last int64 }

func (s *seqIDs) Next() int64 { s.last++; return s.last }
func (s *seqIDs) Observe(id int64) {
	if id > s.last {
		s.last = id
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *memory.Store) {
	t.Helper()
	kv := memory.New()
	opts = append([]Option{WithIDSource(&seqIDs{})}, opts...)
	return Open(context.Background(), NewKVBridge(kv), opts...), kv
}

func idOf(t *testing.T, actions []model.Action, text string) int64 {
	t.Helper()
	for _, a := range actions {
		if a.Text == text {
			return a.ID
		}
	}
	t.Fatalf("no action %q", text)
	return 0
}

func TestStore_AddAppendsValidActions(t *testing.T) {
	s, kv := newTestStore(t)

	s.Add("Write report", 5)
	got := s.Add("Clean desk", 2)

	require.Len(t, got, 2)
	assert.Equal(t, model.Action{ID: 1, Text: "Write report", Weight: 5}, got[0])
	assert.Equal(t, model.Action{ID: 2, Text: "Clean desk", Weight: 2}, got[1])
	assert.Equal(t, 2, kv.Writes)
}

func TestStore_AddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		weight int
	}{
		{"empty text", "", 3},
		{"blank text", "   \t", 3},
		{"no weight", "Task", 0},
		{"weight too high", "Task", 11},
		{"negative weight", "Task", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv := newTestStore(t)
			got := s.Add(tt.text, tt.weight)
			assert.Empty(t, got)
			assert.Zero(t, kv.Writes, "rejected add must not write")
		})
	}
}

func TestStore_AddTrimsText(t *testing.T) {
	s, _ := newTestStore(t)
	got := s.Add("  Ship it  ", 4)
	require.Len(t, got, 1)
	assert.Equal(t, "Ship it", got[0].Text)
}

func TestStore_AddKeepsEveryWeightInRange(t *testing.T) {
	s, _ := newTestStore(t)
	for _, w := range model.Weights() {
		s.Add("task", w)
	}
	got := s.Actions()
	require.Len(t, got, len(model.Weights()))
	for i, w := range model.Weights() {
		assert.Equal(t, w, got[i].Weight)
	}
}

func TestStore_IDsAreUnique(t *testing.T) {
	kv := memory.New()
	s := Open(context.Background(), NewKVBridge(kv))
	for i := 0; i < 50; i++ {
		s.Add("task", 1)
	}
	seen := map[int64]bool{}
	for _, a := range s.Actions() {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
}

func TestStore_ResetEmptiesAndZeroesTotals(t *testing.T) {
	s, kv := newTestStore(t)
	s.Add("A", 3)
	s.Add("B", 7)
	s.ToggleComplete(1)

	got := s.Reset()

	assert.Empty(t, got)
	assert.Zero(t, view.TotalImpact(got))
	assert.Zero(t, view.CompletedImpact(got))
	assert.Zero(t, view.ProgressPercent(got))

	raw, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestStore_ResetOnEmptyListStillWrites(t *testing.T) {
	s, kv := newTestStore(t)
	s.Reset()
	assert.Equal(t, 1, kv.Writes)
}

func TestStore_AddAfterResetGetsFreshID(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("A", 1)
	before := s.Actions()[0].ID
	s.Reset()
	got := s.Add("B", 2)

	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Text)
	assert.Equal(t, 2, got[0].Weight)
	assert.False(t, got[0].Completed)
	assert.NotEqual(t, before, got[0].ID)
}

func TestStore_ToggleCompleteIsItsOwnInverse(t *testing.T) {
	s, kv := newTestStore(t)
	s.Add("A", 1)
	s.Add("B", 2)
	s.Add("C", 3)
	before := s.Actions()

	once := s.ToggleComplete(2)
	assert.True(t, once[1].Completed)
	assert.Equal(t, before[0], once[0])
	assert.Equal(t, before[2], once[2])

	twice := s.ToggleComplete(2)
	assert.Equal(t, before, twice)
	assert.Equal(t, 5, kv.Writes)
}

func TestStore_UnknownIDIsNoop(t *testing.T) {
	s, kv := newTestStore(t)
	s.Add("A", 1)
	before := s.Actions()
	writes := kv.Writes

	assert.Equal(t, before, s.ToggleComplete(99))
	assert.Equal(t, before, s.ToggleEdit(99))
	assert.Equal(t, before, s.EditSave(99, "x", 9))
	assert.Equal(t, writes, kv.Writes)
}

func TestStore_EditSaveOnlyTouchesTarget(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("A", 1)
	s.Add("B", 2)
	s.Add("C", 3)
	s.ToggleComplete(3)
	s.ToggleEdit(2)
	before := s.Actions()

	got := s.EditSave(2, "B2", 9)

	assert.Equal(t, before[0], got[0])
	assert.Equal(t, before[2], got[2])
	assert.Equal(t, model.Action{ID: 2, Text: "B2", Weight: 9}, got[1])
}

func TestStore_EditSaveDoesNotValidate(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("A", 1)
	s.Add("B", 2)
	s.Add("C", 3)
	got := s.EditSave(1, "", 42)
	assert.Equal(t, "", got[0].Text)
	assert.Equal(t, 42, got[0].Weight)
}

func TestStore_InvalidEditKeepsLastGoodSave(t *testing.T) {
	s, kv := newTestStore(t)
	s.Add("A", 1)
	s.Add("B", 2)
	s.Add("C", 3)
	writes := kv.Writes

	s.EditSave(2, "", 3)
	assert.Equal(t, writes, kv.Writes, "list the codec would refuse is not written")

	reopened := Open(context.Background(), NewKVBridge(kv))
	got := reopened.Actions()
	require.Len(t, got, 3)
	assert.Equal(t, "B", got[1].Text)
	assert.Equal(t, 2, got[1].Weight)
}

func TestStore_ToggleEditExclusiveByDefault(t *testing.T) {
	s, kv := newTestStore(t)
	s.Add("A", 1)
	s.Add("B", 2)
	writes := kv.Writes

	s.ToggleEdit(1)
	got := s.ToggleEdit(2)

	assert.False(t, got[0].Editing)
	assert.True(t, got[1].Editing)
	assert.Equal(t, writes, kv.Writes, "editing is not persisted")

	got = s.ToggleEdit(2)
	assert.False(t, got[1].Editing)
}

func TestStore_ToggleEditConcurrentWhenAllowed(t *testing.T) {
	s, _ := newTestStore(t, WithExclusiveEdit(false))
	s.Add("A", 1)
	s.Add("B", 2)

	s.ToggleEdit(1)
	got := s.ToggleEdit(2)

	assert.True(t, got[0].Editing)
	assert.True(t, got[1].Editing)
}

func TestStore_EditingNeverPersisted(t *testing.T) {
	kv := memory.New()
	s := Open(context.Background(), NewKVBridge(kv), WithIDSource(&seqIDs{}))
	s.Add("A", 1)
	s.ToggleEdit(1)
	s.ToggleComplete(1) // forces a write while the editor is open

	raw, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "editing")

	reopened := Open(context.Background(), NewKVBridge(kv))
	got := reopened.Actions()
	require.Len(t, got, 1)
	assert.False(t, got[0].Editing)
	assert.True(t, got[0].Completed)
}

func TestStore_ReloadsCanonicalOrder(t *testing.T) {
	kv := memory.New()
	s := Open(context.Background(), NewKVBridge(kv), WithIDSource(&seqIDs{}))
	s.Add("A", 1)
	s.Add("B", 2)
	s.ToggleComplete(1)

	reopened := Open(context.Background(), NewKVBridge(kv), WithIDSource(&seqIDs{}))
	assert.Equal(t, s.Actions(), reopened.Actions())

	// the id source is seeded past stored ids
	got := reopened.Add("C", 3)
	assert.Equal(t, int64(3), got[2].ID)
}

func TestStore_CorruptDataStartsEmpty(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     `{{{`,
		"wrong shape":  `{"id":1}`,
		"bad weight":   `[{"id":1,"text":"A","weight":11,"completed":false}]`,
		"missing text": `[{"id":1,"weight":2,"completed":false}]`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := memory.New()
			require.NoError(t, kv.Put(context.Background(), StorageKey, []byte(raw)))
			s := Open(context.Background(), NewKVBridge(kv))
			assert.Empty(t, s.Actions())
		})
	}
}

type failingBridge struct{ saves int }

func (f *failingBridge) Load(context.Context) ([]model.Action, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (f *failingBridge) Save(context.Context, []model.Action) error {
	f.saves++
	return errors.New("disk on fire")
}

func TestStore_PersistenceFailuresAreSilent(t *testing.T) {
	b := &failingBridge{}
	s := Open(context.Background(), b, WithIDSource(&seqIDs{}))
	assert.Empty(t, s.Actions())

	got := s.Add("A", 4)
	require.Len(t, got, 1)
	got = s.ToggleComplete(1)
	assert.True(t, got[0].Completed)
	assert.Equal(t, 2, b.saves)
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	s, _ := newTestStore(t)
	got := s.Add("A", 1)
	got[0].Text = "mutated"
	assert.Equal(t, "A", s.Actions()[0].Text)
}

func TestStore_Get(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("A", 1)

	a, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "A", a.Text)

	_, ok = s.Get(2)
	assert.False(t, ok)
}

func TestScenario_WeightedProgress(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add("Write report", 5)
	actions := s.Add("Clean desk", 2)
	actions = s.ToggleComplete(idOf(t, actions, "Clean desk"))

	assert.Equal(t, 7, view.TotalImpact(actions))
	assert.Equal(t, 2, view.CompletedImpact(actions))
	assert.Equal(t, 28.6, view.ProgressPercent(actions))
}

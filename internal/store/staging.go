package store

import (
	"log/slog"
	"slices"

	"github.com/tgienger/kadai/internal/ids"
	"github.com/tgienger/kadai/internal/models"
)

// Reference and memo changes only ever touch the editing slot. They reach a
// subject when the slot is saved and are lost when it is cancelled.

// AddReference appends a placeholder reference to the staged task
func (s *Store) AddReference() {
	staged := s.snap.editing.task
	ref := models.Reference{
		ID: s.freshID(ids.ReferencePrefix, func(id string) bool {
			return slices.ContainsFunc(staged.References, func(r models.Reference) bool { return r.ID == id })
		}),
		Title: models.NewReferenceTitle,
	}
	s.apply("add reference", stage(func(t models.Task) models.Task {
		t.References = append(slices.Clip(t.References), ref)
		return t
	}), slog.String("reference_id", ref.ID))
}

// UpdateReference sets one field of the staged reference at index.
// References are addressed by position because they are never reordered.
func (s *Store) UpdateReference(index int, field models.ReferenceField, value string) {
	s.apply("update reference", func(snap Snapshot) (Snapshot, bool) {
		if !snap.editing.Open() || index < 0 || index >= len(snap.editing.task.References) {
			return snap, false
		}
		return stage(func(t models.Task) models.Task {
			refs := slices.Clone(t.References)
			refs[index] = refs[index].With(field, value)
			t.References = refs
			return t
		})(snap)
	}, slog.Int("index", index), slog.String("field", string(field)))
}

// RemoveReference drops the staged reference with the given ID
func (s *Store) RemoveReference(id string) {
	s.apply("remove reference", func(snap Snapshot) (Snapshot, bool) {
		refs := snap.editing.task.References
		if !snap.editing.Open() || !slices.ContainsFunc(refs, func(r models.Reference) bool { return r.ID == id }) {
			return snap, false
		}
		return stage(func(t models.Task) models.Task {
			t.References = slices.DeleteFunc(slices.Clone(t.References), func(r models.Reference) bool { return r.ID == id })
			return t
		})(snap)
	}, slog.String("reference_id", id))
}

// AddMemo appends an empty memo to the staged task
func (s *Store) AddMemo() {
	staged := s.snap.editing.task
	memo := models.Memo{
		ID: s.freshID(ids.MemoPrefix, func(id string) bool {
			return slices.ContainsFunc(staged.Memos, func(m models.Memo) bool { return m.ID == id })
		}),
	}
	s.apply("add memo", stage(func(t models.Task) models.Task {
		t.Memos = append(slices.Clip(t.Memos), memo)
		return t
	}), slog.String("memo_id", memo.ID))
}

// UpdateMemo replaces the content of the staged memo at index
func (s *Store) UpdateMemo(index int, content string) {
	s.apply("update memo", func(snap Snapshot) (Snapshot, bool) {
		if !snap.editing.Open() || index < 0 || index >= len(snap.editing.task.Memos) {
			return snap, false
		}
		return stage(func(t models.Task) models.Task {
			memos := slices.Clone(t.Memos)
			memos[index].Content = content
			t.Memos = memos
			return t
		})(snap)
	}, slog.Int("index", index))
}

// RemoveMemo drops the staged memo with the given ID
func (s *Store) RemoveMemo(id string) {
	s.apply("remove memo", func(snap Snapshot) (Snapshot, bool) {
		memos := snap.editing.task.Memos
		if !snap.editing.Open() || !slices.ContainsFunc(memos, func(m models.Memo) bool { return m.ID == id }) {
			return snap, false
		}
		return stage(func(t models.Task) models.Task {
			t.Memos = slices.DeleteFunc(slices.Clone(t.Memos), func(m models.Memo) bool { return m.ID == id })
			return t
		})(snap)
	}, slog.String("memo_id", id))
}

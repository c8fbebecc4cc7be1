package store

import (
	"log/slog"
	"slices"

	"github.com/tgienger/kadai/internal/ids"
	"github.com/tgienger/kadai/internal/models"
)

// AddSubject appends a placeholder subject and selects it
func (s *Store) AddSubject() models.Subject {
	subj := models.Subject{
		ID:            s.freshID(ids.SubjectPrefix, s.snap.hasSubject),
		Name:          models.NewSubjectName,
		ProfessorName: models.NewProfessorName,
	}
	s.apply("add subject", func(snap Snapshot) (Snapshot, bool) {
		return snap.addSubject(subj), true
	}, slog.String("subject_id", subj.ID))
	return subj
}

// SelectSubject makes id the selected subject. Unknown IDs are ignored.
func (s *Store) SelectSubject(id string) {
	s.apply("select subject", func(snap Snapshot) (Snapshot, bool) {
		return snap.selectSubject(id)
	}, slog.String("subject_id", id))
}

// UpdateSubject replaces a subject's name and professor.
// The caller is expected to have rejected an empty name already.
func (s *Store) UpdateSubject(id, name, professorName string) {
	s.apply("update subject", func(snap Snapshot) (Snapshot, bool) {
		return snap.updateSubject(id, name, professorName)
	}, slog.String("subject_id", id))
}

// DeleteSubject removes a subject with all of its tasks.
// Selection falls back to the first remaining subject, and an edit
// in progress for the subject is discarded.
func (s *Store) DeleteSubject(id string) {
	s.apply("delete subject", func(snap Snapshot) (Snapshot, bool) {
		return snap.deleteSubject(id)
	}, slog.String("subject_id", id))
}

func (snap Snapshot) addSubject(subj models.Subject) Snapshot {
	snap.subjects = append(slices.Clip(snap.subjects), subj)
	snap.selectedID = subj.ID
	return snap
}

func (snap Snapshot) selectSubject(id string) (Snapshot, bool) {
	if !snap.hasSubject(id) {
		return snap, false
	}
	snap.selectedID = id
	return snap, true
}

func (snap Snapshot) updateSubject(id, name, professorName string) (Snapshot, bool) {
	i := snap.subjectIndex(id)
	if i < 0 {
		return snap, false
	}
	subj := snap.subjects[i]
	subj.Name = name
	subj.ProfessorName = professorName
	return snap.withSubject(i, subj), true
}

func (snap Snapshot) deleteSubject(id string) (Snapshot, bool) {
	if !snap.hasSubject(id) {
		return snap, false
	}
	snap.subjects = slices.DeleteFunc(slices.Clone(snap.subjects), func(subj models.Subject) bool {
		return subj.ID == id
	})
	if snap.selectedID == id {
		snap.selectedID = ""
		if len(snap.subjects) > 0 {
			snap.selectedID = snap.subjects[0].ID
		}
	}
	if snap.editing.subjectID == id {
		snap.editing = EditSlot{}
	}
	return snap, true
}

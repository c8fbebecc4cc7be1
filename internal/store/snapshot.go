package store

import (
	"slices"

	"github.com/tgienger/kadai/internal/models"
)

// EditKind tags what the editing slot currently holds
type EditKind int

const (
	// EditEmpty means no task is open
	EditEmpty EditKind = iota
	// EditExisting holds a staged copy of a task already stored in a subject
	EditExisting
	// EditNew holds a task that has not been committed to any subject yet
	EditNew
)

func (k EditKind) String() string {
	switch k {
	case EditExisting:
		return "existing"
	case EditNew:
		return "new"
	}
	return "empty"
}

// EditSlot is the single staging area for a task being created or modified.
// It remembers the subject that was selected when the edit began.
type EditSlot struct {
	kind      EditKind
	subjectID string
	taskID    string
	task      models.Task
}

func editingExisting(subjectID string, task models.Task) EditSlot {
	return EditSlot{kind: EditExisting, subjectID: subjectID, taskID: task.ID, task: task}
}

func editingNew(subjectID string, task models.Task) EditSlot {
	return EditSlot{kind: EditNew, subjectID: subjectID, taskID: task.ID, task: task}
}

// Kind returns the variant held by the slot
func (e EditSlot) Kind() EditKind { return e.kind }

// Open reports whether a task is being edited
func (e EditSlot) Open() bool { return e.kind != EditEmpty }

// SubjectID returns the subject the staged task will be committed to
func (e EditSlot) SubjectID() string { return e.subjectID }

// Task returns a copy of the staged task
func (e EditSlot) Task() (models.Task, bool) {
	if !e.Open() {
		return models.Task{}, false
	}
	return e.task.Clone(), true
}

// Snapshot is the complete state of the store at one instant.
// A Snapshot is never modified after it has been produced; mutations derive a new one.
type Snapshot struct {
	subjects   []models.Subject
	selectedID string
	editing    EditSlot
}

// Subjects returns every subject in insertion order
func (s Snapshot) Subjects() []models.Subject {
	out := make([]models.Subject, len(s.subjects))
	for i, subj := range s.subjects {
		out[i] = subj.Clone()
	}
	return out
}

// Subject looks up a subject by ID
func (s Snapshot) Subject(id string) (models.Subject, bool) {
	i := s.subjectIndex(id)
	if i < 0 {
		return models.Subject{}, false
	}
	return s.subjects[i].Clone(), true
}

// SelectedSubjectID returns the selected subject's ID, or false when nothing is selected
func (s Snapshot) SelectedSubjectID() (string, bool) {
	return s.selectedID, s.selectedID != ""
}

// SelectedSubject returns the selected subject
func (s Snapshot) SelectedSubject() (models.Subject, bool) {
	if s.selectedID == "" {
		return models.Subject{}, false
	}
	return s.Subject(s.selectedID)
}

// ListTasks returns the selected subject's tasks ordered by deadline.
// Tasks sharing a deadline keep their stored order.
func (s Snapshot) ListTasks() []models.Task {
	subj, ok := s.SelectedSubject()
	if !ok {
		return nil
	}
	tasks := subj.Tasks
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		return a.Deadline.Compare(b.Deadline)
	})
	return tasks
}

// Editing returns the editing slot
func (s Snapshot) Editing() EditSlot {
	return s.editing
}

func (s Snapshot) subjectIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.subjects, func(subj models.Subject) bool { return subj.ID == id })
}

func (s Snapshot) hasSubject(id string) bool {
	return s.subjectIndex(id) >= 0
}

func taskIndex(tasks []models.Task, id string) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
}

// withSubject returns the snapshot with the subject at i replaced
func (s Snapshot) withSubject(i int, subj models.Subject) Snapshot {
	subjects := slices.Clone(s.subjects)
	subjects[i] = subj
	s.subjects = subjects
	return s
}

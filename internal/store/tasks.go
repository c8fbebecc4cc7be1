package store

import (
	"log/slog"
	"slices"
	"time"

	"github.com/tgienger/kadai/internal/ids"
	"github.com/tgienger/kadai/internal/models"
)

// BeginAddTask opens a fresh task for the selected subject in the editing slot.
// The task is not part of the subject until it is saved.
func (s *Store) BeginAddTask() {
	subj, ok := s.snap.SelectedSubject()
	if !ok {
		s.log.Debug("ignored begin add task")
		return
	}
	task := models.Task{
		ID:       s.freshID(ids.TaskPrefix, func(id string) bool { _, taken := subj.Task(id); return taken }),
		Title:    models.NewTaskTitle,
		Deadline: s.now(),
		Status:   models.StatusNotStarted,
	}
	s.apply("begin add task", func(snap Snapshot) (Snapshot, bool) {
		snap.editing = editingNew(subj.ID, task)
		return snap, true
	}, slog.String("subject_id", subj.ID), slog.String("task_id", task.ID))
}

// BeginEditTask opens a copy of a stored task of the selected subject in the editing slot
func (s *Store) BeginEditTask(taskID string) {
	s.apply("begin edit task", func(snap Snapshot) (Snapshot, bool) {
		subj, ok := snap.SelectedSubject()
		if !ok {
			return snap, false
		}
		task, ok := subj.Task(taskID)
		if !ok {
			return snap, false
		}
		snap.editing = editingExisting(subj.ID, task.Clone())
		return snap, true
	}, slog.String("task_id", taskID))
}

// SetEditingTitle stages a new title
func (s *Store) SetEditingTitle(title string) {
	s.apply("set editing title", stage(func(t models.Task) models.Task {
		t.Title = title
		return t
	}))
}

// SetEditingDeadline stages a new deadline
func (s *Store) SetEditingDeadline(deadline time.Time) {
	s.apply("set editing deadline", stage(func(t models.Task) models.Task {
		t.Deadline = deadline
		return t
	}), slog.Time("deadline", deadline))
}

// SetEditingStatus stages a status transition, completion flag included.
// Unknown statuses are ignored.
func (s *Store) SetEditingStatus(status models.Status) {
	staged := stage(func(t models.Task) models.Task {
		return t.WithStatus(status)
	})
	s.apply("set editing status", func(snap Snapshot) (Snapshot, bool) {
		if !status.Valid() {
			return snap, false
		}
		return staged(snap)
	}, slog.String("status", string(status)))
}

// SaveEditing commits the editing slot into its subject and closes it.
// An existing task is replaced where it stands, a new one is appended.
// The target is the subject that was selected when the edit began, even if
// the selection has moved since. Nothing happens when no subject is selected
// or the task's subject is gone.
func (s *Store) SaveEditing() {
	s.apply("save task", func(snap Snapshot) (Snapshot, bool) {
		return snap.commit()
	}, slog.String("task_id", s.snap.editing.taskID))
}

// SaveTask stages edited into the editing slot and commits it. The completion
// flag is derived from the task's status. Targets the same subject as SaveEditing.
func (s *Store) SaveTask(edited models.Task) {
	s.apply("save task", func(snap Snapshot) (Snapshot, bool) {
		staged, ok := snap.withStaged(edited)
		if !ok {
			return snap, false
		}
		return staged.commit()
	}, slog.String("task_id", edited.ID))
}

// CancelEdit discards the editing slot
func (s *Store) CancelEdit() {
	s.apply("cancel edit", func(snap Snapshot) (Snapshot, bool) {
		if !snap.editing.Open() {
			return snap, false
		}
		snap.editing = EditSlot{}
		return snap, true
	})
}

// DeleteTask removes a task from the selected subject. An open edit of it is discarded.
func (s *Store) DeleteTask(taskID string) {
	s.apply("delete task", func(snap Snapshot) (Snapshot, bool) {
		return snap.deleteTask(taskID)
	}, slog.String("task_id", taskID))
}

// SetTaskStatus moves a stored task of the selected subject to status.
// Unknown statuses are ignored.
func (s *Store) SetTaskStatus(taskID string, status models.Status) {
	s.apply("set task status", func(snap Snapshot) (Snapshot, bool) {
		if !status.Valid() {
			return snap, false
		}
		return snap.updateTask(taskID, func(t models.Task) models.Task {
			return t.WithStatus(status)
		})
	}, slog.String("task_id", taskID), slog.String("status", string(status)))
}

// stage builds a mutation that edits the staged task
func stage(edit func(models.Task) models.Task) mutation {
	return func(snap Snapshot) (Snapshot, bool) {
		if !snap.editing.Open() {
			return snap, false
		}
		snap.editing.task = edit(snap.editing.task)
		// the staged ID is the commit key
		snap.editing.task.ID = snap.editing.taskID
		return snap, true
	}
}

// withStaged places edited into the slot, keeping the slot's variant when it
// already holds the same task and otherwise deriving it from the selected subject
func (snap Snapshot) withStaged(edited models.Task) (Snapshot, bool) {
	edited = edited.Clone().WithStatus(edited.Status)
	if snap.editing.Open() && snap.editing.taskID == edited.ID {
		snap.editing.task = edited
		return snap, true
	}
	subj, ok := snap.SelectedSubject()
	if !ok {
		return snap, false
	}
	if _, exists := subj.Task(edited.ID); exists {
		snap.editing = editingExisting(subj.ID, edited)
	} else {
		snap.editing = editingNew(subj.ID, edited)
	}
	return snap, true
}

func (snap Snapshot) commit() (Snapshot, bool) {
	slot := snap.editing
	if !slot.Open() || snap.selectedID == "" {
		return snap, false
	}
	i := snap.subjectIndex(slot.subjectID)
	if i < 0 {
		return snap, false
	}
	subj := snap.subjects[i]
	switch slot.kind {
	case EditExisting:
		if j := taskIndex(subj.Tasks, slot.taskID); j >= 0 {
			tasks := slices.Clone(subj.Tasks)
			tasks[j] = slot.task
			subj.Tasks = tasks
		} else {
			subj.Tasks = append(slices.Clip(subj.Tasks), slot.task)
		}
	case EditNew:
		subj.Tasks = append(slices.Clip(subj.Tasks), slot.task)
	}
	snap = snap.withSubject(i, subj)
	snap.editing = EditSlot{}
	return snap, true
}

func (snap Snapshot) deleteTask(taskID string) (Snapshot, bool) {
	i := snap.subjectIndex(snap.selectedID)
	if i < 0 {
		return snap, false
	}
	subj := snap.subjects[i]
	if taskIndex(subj.Tasks, taskID) < 0 {
		return snap, false
	}
	subj.Tasks = slices.DeleteFunc(slices.Clone(subj.Tasks), func(t models.Task) bool {
		return t.ID == taskID
	})
	snap = snap.withSubject(i, subj)
	if snap.editing.kind == EditExisting && snap.editing.subjectID == subj.ID && snap.editing.taskID == taskID {
		snap.editing = EditSlot{}
	}
	return snap, true
}

func (snap Snapshot) updateTask(taskID string, edit func(models.Task) models.Task) (Snapshot, bool) {
	i := snap.subjectIndex(snap.selectedID)
	if i < 0 {
		return snap, false
	}
	subj := snap.subjects[i]
	j := taskIndex(subj.Tasks, taskID)
	if j < 0 {
		return snap, false
	}
	tasks := slices.Clone(subj.Tasks)
	tasks[j] = edit(tasks[j])
	subj.Tasks = tasks
	return snap.withSubject(i, subj), true
}

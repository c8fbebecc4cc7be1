package models

import "time"

// Status is the progress state of a task
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReviewing  Status = "REVIEWING"
	StatusCompleted  Status = "COMPLETED"
)

// Statuses lists every status in display order
var Statuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusReviewing,
	StatusCompleted,
}

var statusLabels = map[Status]string{
	StatusNotStarted: "未着手",
	StatusInProgress: "進行中",
	StatusReviewing:  "レビュー中",
	StatusCompleted:  "完了",
}

// Label returns the display label for the status
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Next returns the status that follows s, wrapping around after completed
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusNotStarted
}

// Prev returns the status that precedes s, wrapping around before not started
func (s Status) Prev() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+len(Statuses)-1)%len(Statuses)]
		}
	}
	return StatusNotStarted
}

// Placeholder text for freshly created entities
const (
	NewSubjectName    = "新しい科目"
	NewProfessorName  = "担当教員名"
	NewTaskTitle      = "新しいタスク"
	NewReferenceTitle = "新しい参考資料"
)

// ReferenceField names an editable field of a Reference
type ReferenceField string

const (
	ReferenceTitle ReferenceField = "title"
	ReferenceURL   ReferenceField = "url"
)

// Reference is a titled link attached to a task
type Reference struct {
	ID    string
	Title string
	URL   string
}

// With returns a copy of r with field set to value
func (r Reference) With(field ReferenceField, value string) Reference {
	switch field {
	case ReferenceTitle:
		r.Title = value
	case ReferenceURL:
		r.URL = value
	}
	return r
}

// Memo is a free-text note attached to a task
type Memo struct {
	ID      string
	Content string
}

// Task is a unit of work owned by a subject
type Task struct {
	ID          string
	Title       string
	Deadline    time.Time
	Status      Status
	IsCompleted bool
	References  []Reference
	Memos       []Memo
}

// WithStatus returns a copy of t moved to status. IsCompleted always follows status.
func (t Task) WithStatus(status Status) Task {
	t.Status = status
	t.IsCompleted = status == StatusCompleted
	return t
}

// IsOverdue reports whether an unfinished task has passed its deadline at now
func (t Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted && now.After(t.Deadline)
}

// Clone returns a deep copy of t
func (t Task) Clone() Task {
	t.References = append([]Reference(nil), t.References...)
	t.Memos = append([]Memo(nil), t.Memos...)
	return t
}

// Subject represents a course holding tasks
type Subject struct {
	ID            string
	Name          string
	ProfessorName string
	Tasks         []Task
}

// Clone returns a deep copy of s including its tasks
func (s Subject) Clone() Subject {
	if s.Tasks != nil {
		tasks := make([]Task, len(s.Tasks))
		for i, t := range s.Tasks {
			tasks[i] = t.Clone()
		}
		s.Tasks = tasks
	}
	return s
}

// Task looks up a task by ID
func (s Subject) Task(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// CompletedCount returns how many of the subject's tasks are completed
func (s Subject) CompletedCount() int {
	n := 0
	for _, t := range s.Tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

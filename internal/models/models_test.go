package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithStatusSetsCompletion(t *testing.T) {
	task := Task{ID: "t", Status: StatusCompleted, IsCompleted: true}

	for _, status := range Statuses {
		got := task.WithStatus(status)
		assert.Equal(t, status, got.Status)
		assert.Equal(t, status == StatusCompleted, got.IsCompleted, "status %s", status)
	}
	assert.True(t, task.IsCompleted, "receiver must not change")
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "未着手", StatusNotStarted.Label())
	assert.Equal(t, "進行中", StatusInProgress.Label())
	assert.Equal(t, "レビュー中", StatusReviewing.Label())
	assert.Equal(t, "完了", StatusCompleted.Label())
	assert.Equal(t, "UNKNOWN", Status("UNKNOWN").Label())
	assert.False(t, Status("UNKNOWN").Valid())
}

func TestStatusCycle(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusNotStarted.Next())
	assert.Equal(t, StatusNotStarted, StatusCompleted.Next())
	assert.Equal(t, StatusCompleted, StatusNotStarted.Prev())
	assert.Equal(t, StatusReviewing, StatusCompleted.Prev())
	assert.Equal(t, StatusNotStarted, Status("bogus").Next())
}

func TestIsOverdue(t *testing.T) {
	deadline := time.Date(2024, time.October, 1, 23, 59, 59, 0, time.UTC)
	before := deadline.Add(-time.Hour)
	after := deadline.Add(time.Hour)

	open := Task{Deadline: deadline, Status: StatusInProgress}
	done := open.WithStatus(StatusCompleted)

	assert.False(t, open.IsOverdue(before))
	assert.True(t, open.IsOverdue(after))
	assert.False(t, done.IsOverdue(after))
}

func TestCloneIsDeep(t *testing.T) {
	subj := Subject{
		ID: "s",
		Tasks: []Task{{
			ID:         "t",
			References: []Reference{{ID: "r", Title: "a"}},
			Memos:      []Memo{{ID: "m", Content: "a"}},
		}},
	}

	clone := subj.Clone()
	clone.Tasks[0].Title = "changed"
	clone.Tasks[0].References[0].Title = "changed"
	clone.Tasks[0].Memos[0].Content = "changed"

	assert.Empty(t, subj.Tasks[0].Title)
	assert.Equal(t, "a", subj.Tasks[0].References[0].Title)
	assert.Equal(t, "a", subj.Tasks[0].Memos[0].Content)
}

func TestReferenceWith(t *testing.T) {
	ref := Reference{ID: "r", Title: "old", URL: "https://old"}

	assert.Equal(t, Reference{ID: "r", Title: "new", URL: "https://old"}, ref.With(ReferenceTitle, "new"))
	assert.Equal(t, Reference{ID: "r", Title: "old", URL: ""}, ref.With(ReferenceURL, ""))
	assert.Equal(t, ref, ref.With(ReferenceField("other"), "x"))
}

func TestSubjectHelpers(t *testing.T) {
	subj := Subject{Tasks: []Task{
		{ID: "a", IsCompleted: true, Status: StatusCompleted},
		{ID: "b"},
		{ID: "c", IsCompleted: true, Status: StatusCompleted},
	}}

	assert.Equal(t, 2, subj.CompletedCount())
	task, ok := subj.Task("b")
	assert.True(t, ok)
	assert.Equal(t, "b", task.ID)
	_, ok = subj.Task("z")
	assert.False(t, ok)
}

package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/kadai/internal/ids"
	"github.com/tgienger/kadai/internal/models"
	"github.com/tgienger/kadai/internal/store"
)

var fixedNow = time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC)

func at(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 23, 59, 59, 0, time.UTC)
}

// testSubjects holds one subject whose stored task order differs from deadline order
func testSubjects() []models.Subject {
	return []models.Subject{
		{
			ID:            "subj-a",
			Name:          "Linear Algebra",
			ProfessorName: "Dr. Noether",
			Tasks: []models.Task{
				{ID: "t1", Title: "Problem set", Deadline: at(time.November, 10), Status: models.StatusNotStarted},
				{ID: "t2", Title: "Quiz prep", Deadline: at(time.November, 5), Status: models.StatusCompleted, IsCompleted: true},
				{ID: "t3", Title: "Essay", Deadline: at(time.November, 20), Status: models.StatusInProgress},
			},
		},
		{ID: "subj-b", Name: "Statistics", ProfessorName: "Dr. Fisher"},
	}
}

func newTestStore(subjects []models.Subject) *store.Store {
	return store.New(
		store.WithSubjects(subjects),
		store.WithIDGenerator(ids.NewSequence()),
		store.WithClock(func() time.Time { return fixedNow }),
	)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func press(m tea.Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func taskIDs(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func storedTask(t *testing.T, st *store.Store, subjectID, taskID string) models.Task {
	t.Helper()
	subj, ok := st.Subject(subjectID)
	require.True(t, ok, "subject %s", subjectID)
	task, ok := subj.Task(taskID)
	require.True(t, ok, "task %s", taskID)
	return task
}

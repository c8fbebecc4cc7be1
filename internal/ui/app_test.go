package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/kadai/internal/ids"
	"github.com/tgienger/kadai/internal/store"
	"github.com/tgienger/kadai/internal/ui/views"
)

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	st := store.Seeded(
		store.WithIDGenerator(ids.NewSequence()),
		store.WithClock(func() time.Time { return time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC) }),
	)
	a := NewApp(st, nil)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	run(a, a.Init())
	return a, st
}

// run executes cmd one level deep and feeds its messages back into a
func run(a *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				a.Update(c())
			}
		}
		return
	}
	a.Update(msg)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppStartsOnSubjects(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, ViewSubjects, a.CurrentView())
	view := a.View()
	assert.Contains(t, view, appTitle)
	assert.Contains(t, view, "高度なWeb開発")
}

func TestAppOpensAndLeavesTasks(t *testing.T) {
	a, st := newTestApp(t)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, views.SelectedSubject{ID: "subj-1"}, msg)

	_, cmd = a.Update(msg)
	run(a, cmd)
	assert.Equal(t, ViewTasks, a.CurrentView())
	assert.Contains(t, a.View(), "エブリン・リード博士 担当")

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, cmd = a.Update(cmd())
	run(a, cmd)
	assert.Equal(t, ViewSubjects, a.CurrentView())

	selected, ok := st.SelectedSubject()
	require.True(t, ok)
	assert.Equal(t, "subj-1", selected.ID)
}

func TestAppRoutesKeysToActiveView(t *testing.T) {
	a, st := newTestApp(t)

	a.Update(key("n"))
	assert.Len(t, st.Subjects(), 4, "subject list handles n")

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, cmd = a.Update(cmd())
	run(a, cmd)
	require.Equal(t, ViewTasks, a.CurrentView())

	a.Update(key("n"))
	assert.Len(t, st.Subjects(), 4)
	assert.Equal(t, store.EditNew, st.Editing().Kind(), "task list handles n")
}

func TestAppContentSizeExcludesHeader(t *testing.T) {
	a, _ := newTestApp(t)

	size := a.contentSize()
	assert.Equal(t, 100, size.Width)
	assert.Equal(t, 40-a.headerHeight(), size.Height)
}

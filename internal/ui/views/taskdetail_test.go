package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/kadai/internal/models"
	"github.com/tgienger/kadai/internal/store"
)

func newEditingDetail(t *testing.T, taskID string) (*TaskDetailView, *store.Store) {
	t.Helper()
	st := newTestStore(testSubjects())
	st.BeginEditTask(taskID)
	require.True(t, st.Editing().Open())

	d := NewTaskDetailView(st)
	d.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return d, st
}

func staged(t *testing.T, st *store.Store) models.Task {
	t.Helper()
	task, ok := st.Editing().Task()
	require.True(t, ok, "editing slot is empty")
	return task
}

// focusOn tabs from the title field to f
func focusOn(d *TaskDetailView, f detailField) {
	for d.focus != f {
		press(d, keyMsg(tea.KeyTab))
	}
}

func TestParseDeadline(t *testing.T) {
	current := time.Date(2024, time.November, 10, 23, 59, 59, 0, time.UTC)

	got, ok := parseDeadline(" 2024-12-01 ", current)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.December, 1, 23, 59, 59, 0, time.UTC), got)

	for _, bad := range []string{"", "2024-13-01", "2024-12-1", "12/01/2024"} {
		_, ok := parseDeadline(bad, current)
		assert.False(t, ok, "%q", bad)
	}
}

func TestDetailPrefillsFields(t *testing.T) {
	d, _ := newEditingDetail(t, "t1")

	assert.Equal(t, "Problem set", d.title.Value())
	assert.Equal(t, "2024-11-10", d.deadline.Value())
	assert.Equal(t, fieldTitle, d.focus)
	assert.False(t, d.Closed())
}

func TestDetailEditsTitle(t *testing.T) {
	d, st := newEditingDetail(t, "t1")

	press(d, runes(" 3"))
	assert.Equal(t, "Problem set 3", staged(t, st).Title)
	assert.Equal(t, "Problem set", storedTask(t, st, "subj-a", "t1").Title, "edits are staged until saved")

	press(d, keyMsg(tea.KeyCtrlS))
	assert.True(t, d.Closed())
	assert.Equal(t, "Problem set 3", storedTask(t, st, "subj-a", "t1").Title)
}

func TestDetailEditsDeadline(t *testing.T) {
	d, st := newEditingDetail(t, "t1")
	focusOn(d, fieldDeadline)

	press(d, keyMsg(tea.KeyCtrlU), runes("2024-12-2"))
	assert.False(t, d.deadlineValid)
	assert.Equal(t, at(time.November, 10), staged(t, st).Deadline, "partial dates are not applied")

	press(d, runes("4"))
	assert.True(t, d.deadlineValid)
	assert.Equal(t, at(time.December, 24), staged(t, st).Deadline)
}

func TestDetailStatusSelector(t *testing.T) {
	d, st := newEditingDetail(t, "t1")
	focusOn(d, fieldStatus)

	press(d, keyMsg(tea.KeyRight))
	assert.Equal(t, models.StatusInProgress, staged(t, st).Status)

	press(d, keyMsg(tea.KeyLeft), keyMsg(tea.KeyLeft))
	task := staged(t, st)
	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.True(t, task.IsCompleted)
}

func TestDetailReferences(t *testing.T) {
	d, st := newEditingDetail(t, "t1")
	focusOn(d, fieldReferences)

	press(d, runes("a"))
	refs := staged(t, st).References
	require.Len(t, refs, 1)
	assert.Equal(t, models.NewReferenceTitle, refs[0].Title)
	assert.Empty(t, refs[0].URL)

	press(d, keyMsg(tea.KeyEnter))
	require.True(t, d.refEditing)
	press(d, keyMsg(tea.KeyCtrlU), runes("Textbook"), keyMsg(tea.KeyTab), runes("https://example.com"), keyMsg(tea.KeyEnter))
	assert.False(t, d.refEditing)

	refs = staged(t, st).References
	require.Len(t, refs, 1)
	assert.Equal(t, "Textbook", refs[0].Title)
	assert.Equal(t, "https://example.com", refs[0].URL)

	press(d, runes("x"))
	assert.Empty(t, staged(t, st).References)
}

func TestDetailMemos(t *testing.T) {
	d, st := newEditingDetail(t, "t1")
	focusOn(d, fieldMemos)

	press(d, runes("a"), runes("a"))
	require.Len(t, staged(t, st).Memos, 2)
	assert.Equal(t, 1, d.memoCursor)

	press(d, keyMsg(tea.KeyEnter))
	require.True(t, d.memoEditing)
	press(d, runes("Chapter 3"), keyMsg(tea.KeyEsc))
	assert.False(t, d.memoEditing)
	assert.False(t, d.Closed(), "esc leaves the memo editor only")

	memos := staged(t, st).Memos
	assert.Empty(t, memos[0].Content)
	assert.Equal(t, "Chapter 3", memos[1].Content)

	press(d, runes("k"), runes("x"))
	memos = staged(t, st).Memos
	require.Len(t, memos, 1)
	assert.Equal(t, "Chapter 3", memos[0].Content)

	press(d, keyMsg(tea.KeyCtrlS))
	assert.True(t, d.Closed())
	stored := storedTask(t, st, "subj-a", "t1")
	require.Len(t, stored.Memos, 1)
	assert.Equal(t, "Chapter 3", stored.Memos[0].Content)
}

func TestDetailCancelDiscards(t *testing.T) {
	d, st := newEditingDetail(t, "t1")

	press(d, runes(" draft"), keyMsg(tea.KeyEsc))

	assert.True(t, d.Closed())
	assert.False(t, st.Editing().Open())
	assert.Equal(t, "Problem set", storedTask(t, st, "subj-a", "t1").Title)
}

func TestDetailSaveButton(t *testing.T) {
	d, st := newEditingDetail(t, "t1")

	press(d, runes("!"), keyMsg(tea.KeyShiftTab))
	require.Equal(t, fieldSave, d.focus)
	press(d, keyMsg(tea.KeyEnter))

	assert.True(t, d.Closed())
	assert.Equal(t, "Problem set!", storedTask(t, st, "subj-a", "t1").Title)
}

func TestDetailSaveRefusedAfterSubjectDeleted(t *testing.T) {
	d, st := newEditingDetail(t, "t1")
	st.DeleteSubject("subj-a")

	press(d, keyMsg(tea.KeyCtrlS))
	assert.True(t, d.Closed())
	assert.False(t, st.Editing().Open())
}

func TestDetailViewRenders(t *testing.T) {
	d, _ := newEditingDetail(t, "t2")

	view := d.View()
	assert.Contains(t, view, "タスク詳細")
	assert.Contains(t, view, models.StatusCompleted.Label())
	assert.Contains(t, view, "参考資料はありません")
}

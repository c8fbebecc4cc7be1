package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kadai/internal/models"
	"github.com/tgienger/kadai/internal/store"
	"github.com/tgienger/kadai/internal/ui/keys"
	"github.com/tgienger/kadai/internal/ui/styles"
)

const deadlineInputLayout = "2006-01-02"

// parseDeadline reads a YYYY-MM-DD date and keeps the time of day of current
func parseDeadline(value string, current time.Time) (time.Time, bool) {
	d, err := time.ParseInLocation(deadlineInputLayout, strings.TrimSpace(value), current.Location())
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		current.Hour(), current.Minute(), current.Second(), current.Nanosecond(),
		current.Location()), true
}

type detailField int

const (
	fieldTitle detailField = iota
	fieldDeadline
	fieldStatus
	fieldReferences
	fieldMemos
	fieldSave
	fieldCount
)

// TaskDetailView edits the task held in the store's editing slot.
// Every change is staged in the slot; nothing reaches the subject before save.
type TaskDetailView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	kind   store.EditKind
	task   models.Task
	closed bool

	focus         detailField
	title         textinput.Model
	deadline      textinput.Model
	deadlineValid bool

	refCursor  int
	refEditing bool
	refField   models.ReferenceField
	refTitle   textinput.Model
	refURL     textinput.Model

	memoCursor  int
	memoEditing bool
	memoInput   textarea.Model
}

// NewTaskDetailView opens an editor on the store's editing slot
func NewTaskDetailView(st *store.Store) *TaskDetailView {
	title := textinput.New()
	title.Placeholder = "タイトル"
	title.CharLimit = 200

	deadline := textinput.New()
	deadline.Placeholder = "YYYY-MM-DD"
	deadline.CharLimit = 10

	refTitle := textinput.New()
	refTitle.Placeholder = "タイトル"
	refTitle.CharLimit = 200

	refURL := textinput.New()
	refURL.Placeholder = "URL"
	refURL.CharLimit = 2000

	memoInput := textarea.New()
	memoInput.Placeholder = "メモの内容..."
	memoInput.CharLimit = 5000
	memoInput.SetWidth(50)
	memoInput.SetHeight(3)
	memoInput.ShowLineNumbers = false

	v := &TaskDetailView{
		store:     st,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
		title:     title,
		deadline:  deadline,
		refTitle:  refTitle,
		refURL:    refURL,
		memoInput: memoInput,
	}
	v.sync()
	v.title.SetValue(v.task.Title)
	v.deadline.SetValue(v.task.Deadline.Format(deadlineInputLayout))
	v.deadlineValid = true
	v.updateFocus()
	return v
}

// Closed reports whether the editor has been saved or cancelled
func (v *TaskDetailView) Closed() bool {
	return v.closed
}

func (v *TaskDetailView) Init() tea.Cmd {
	return textinput.Blink
}

// sync reloads the staged task from the store
func (v *TaskDetailView) sync() {
	slot := v.store.Editing()
	task, ok := slot.Task()
	if !ok {
		v.closed = true
		return
	}
	v.task = task
	v.kind = slot.Kind()
	v.refCursor = clamp(v.refCursor, 0, max(len(task.References)-1, 0))
	v.memoCursor = clamp(v.memoCursor, 0, max(len(task.Memos)-1, 0))
}

func (v *TaskDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := clamp(styles.ContentWidth(v.width)-10, 20, 50)
		v.memoInput.SetWidth(inputWidth)
		return v, nil

	case tea.KeyMsg:
		if v.closed {
			return v, nil
		}
		if v.refEditing {
			return v.updateRefEditor(msg)
		}
		if v.memoEditing {
			return v.updateMemoEditor(msg)
		}
		return v.updateForm(msg)
	}
	return v, nil
}

func (v *TaskDetailView) save() {
	v.store.SaveEditing()
	if !v.store.Editing().Open() {
		v.closed = true
	}
}

func (v *TaskDetailView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.store.CancelEdit()
		v.closed = true
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.save()
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.focus = (v.focus + fieldCount - 1) % fieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focus = (v.focus + 1) % fieldCount
		v.updateFocus()
		return v, nil
	}

	switch v.focus {
	case fieldTitle, fieldDeadline:
		if key.Matches(msg, v.keys.Enter) {
			v.focus++
			v.updateFocus()
			return v, nil
		}
		return v, v.updateTextField(msg)

	case fieldStatus:
		switch {
		case key.Matches(msg, v.keys.Left):
			v.store.SetEditingStatus(v.task.Status.Prev())
		case key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Enter), msg.String() == " ":
			v.store.SetEditingStatus(v.task.Status.Next())
		}
		v.sync()

	case fieldReferences:
		return v, v.updateReferences(msg)

	case fieldMemos:
		return v, v.updateMemos(msg)

	case fieldSave:
		if key.Matches(msg, v.keys.Enter) {
			v.save()
		}
	}
	return v, nil
}

func (v *TaskDetailView) updateTextField(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus {
	case fieldTitle:
		v.title, cmd = v.title.Update(msg)
		if v.title.Value() != v.task.Title {
			v.store.SetEditingTitle(v.title.Value())
			v.sync()
		}
	case fieldDeadline:
		v.deadline, cmd = v.deadline.Update(msg)
		d, ok := parseDeadline(v.deadline.Value(), v.task.Deadline)
		v.deadlineValid = ok
		if ok && !d.Equal(v.task.Deadline) {
			v.store.SetEditingDeadline(d)
			v.sync()
		}
	}
	return cmd
}

func (v *TaskDetailView) updateReferences(msg tea.KeyMsg) tea.Cmd {
	refs := v.task.References
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.refCursor > 0 {
			v.refCursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.refCursor < len(refs)-1 {
			v.refCursor++
		}
	case key.Matches(msg, v.keys.Add):
		v.store.AddReference()
		v.sync()
		v.refCursor = max(len(v.task.References)-1, 0)
	case key.Matches(msg, v.keys.Remove):
		if len(refs) > 0 {
			v.store.RemoveReference(refs[v.refCursor].ID)
			v.sync()
		}
	case key.Matches(msg, v.keys.Enter):
		if len(refs) > 0 {
			ref := refs[v.refCursor]
			v.refEditing = true
			v.refField = models.ReferenceTitle
			v.refTitle.SetValue(ref.Title)
			v.refURL.SetValue(ref.URL)
			v.updateRefFocus()
			return textinput.Blink
		}
	}
	return nil
}

func (v *TaskDetailView) updateRefFocus() {
	v.refTitle.Blur()
	v.refURL.Blur()
	if v.refField == models.ReferenceTitle {
		v.refTitle.Focus()
	} else {
		v.refURL.Focus()
	}
}

func (v *TaskDetailView) closeRefEditor() {
	v.refEditing = false
	v.refTitle.Blur()
	v.refURL.Blur()
}

func (v *TaskDetailView) toggleRefField() {
	if v.refField == models.ReferenceTitle {
		v.refField = models.ReferenceURL
	} else {
		v.refField = models.ReferenceTitle
	}
	v.updateRefFocus()
}

func (v *TaskDetailView) updateRefEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.closeRefEditor()
		return v, nil
	case key.Matches(msg, v.keys.Save):
		v.closeRefEditor()
		v.save()
		return v, nil
	case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.ShiftTab):
		v.toggleRefField()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		if v.refField == models.ReferenceTitle {
			v.toggleRefField()
		} else {
			v.closeRefEditor()
		}
		return v, nil
	}

	var cmd tea.Cmd
	var value string
	if v.refField == models.ReferenceTitle {
		v.refTitle, cmd = v.refTitle.Update(msg)
		value = v.refTitle.Value()
	} else {
		v.refURL, cmd = v.refURL.Update(msg)
		value = v.refURL.Value()
	}
	v.store.UpdateReference(v.refCursor, v.refField, value)
	v.sync()
	return v, cmd
}

func (v *TaskDetailView) updateMemos(msg tea.KeyMsg) tea.Cmd {
	memos := v.task.Memos
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.memoCursor > 0 {
			v.memoCursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.memoCursor < len(memos)-1 {
			v.memoCursor++
		}
	case key.Matches(msg, v.keys.Add):
		v.store.AddMemo()
		v.sync()
		v.memoCursor = max(len(v.task.Memos)-1, 0)
	case key.Matches(msg, v.keys.Remove):
		if len(memos) > 0 {
			v.store.RemoveMemo(memos[v.memoCursor].ID)
			v.sync()
		}
	case key.Matches(msg, v.keys.Enter):
		if len(memos) > 0 {
			v.memoEditing = true
			v.memoInput.SetValue(memos[v.memoCursor].Content)
			v.memoInput.Focus()
			return textarea.Blink
		}
	}
	return nil
}

func (v *TaskDetailView) updateMemoEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.memoEditing = false
		v.memoInput.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Save):
		v.memoEditing = false
		v.memoInput.Blur()
		v.save()
		return v, nil
	}

	var cmd tea.Cmd
	v.memoInput, cmd = v.memoInput.Update(msg)
	v.store.UpdateMemo(v.memoCursor, v.memoInput.Value())
	v.sync()
	return v, cmd
}

func (v *TaskDetailView) updateFocus() {
	v.title.Blur()
	v.deadline.Blur()

	switch v.focus {
	case fieldTitle:
		v.title.Focus()
	case fieldDeadline:
		v.deadline.Focus()
	}
}

// View renders the editor
func (v *TaskDetailView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	fieldStyle := func(f detailField) lipgloss.Style {
		if v.focus == f && !v.refEditing && !v.memoEditing {
			return s.InputFocused
		}
		return s.Input
	}

	heading := "タスク詳細"
	if v.kind == store.EditNew {
		heading = "新しいタスク"
	}

	deadlineHint := ""
	if !v.deadlineValid {
		deadlineHint = s.TaskOverdue.Render(" 日付の形式が正しくありません")
	}

	saveStyle := s.Button
	if v.focus == fieldSave {
		saveStyle = s.ButtonFocused
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(heading),
		"",
		"タイトル:",
		fieldStyle(fieldTitle).Width(inputWidth).Render(v.title.View()),
		"",
		"締め切り:"+deadlineHint,
		fieldStyle(fieldDeadline).Width(inputWidth).Render(v.deadline.View()),
		"",
		"ステータス:",
		fieldStyle(fieldStatus).Width(inputWidth).Render(v.renderStatusSelector()),
		"",
		"参考資料:",
		fieldStyle(fieldReferences).Width(inputWidth).Render(v.renderReferences(inputWidth-4)),
		"",
		"メモ:",
		fieldStyle(fieldMemos).Width(inputWidth).Render(v.renderMemos(inputWidth-4)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.Button.Render(" キャンセル "),
			"  ",
			saveStyle.Render(" 変更を保存 "),
		),
		"",
		v.renderHelp(),
	)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(form)
	return styles.CenterView(padded, v.width, v.height)
}

func (v *TaskDetailView) renderStatusSelector() string {
	s := v.styles
	var parts []string
	for _, status := range models.Statuses {
		if status == v.task.Status {
			parts = append(parts, s.StatusBadge(status))
		} else {
			parts = append(parts, s.TitleMuted.Render(status.Label()))
		}
	}
	return strings.Join(parts, " ")
}

func (v *TaskDetailView) renderReferences(width int) string {
	s := v.styles
	if len(v.task.References) == 0 {
		return s.TitleMuted.Render("参考資料はありません")
	}

	var items []string
	for i, ref := range v.task.References {
		if v.refEditing && i == v.refCursor {
			titleStyle, urlStyle := s.Input, s.Input
			if v.refField == models.ReferenceTitle {
				titleStyle = s.InputFocused
			} else {
				urlStyle = s.InputFocused
			}
			items = append(items,
				titleStyle.Width(width).Render(v.refTitle.View()),
				urlStyle.Width(width).Render(v.refURL.View()),
			)
			continue
		}

		url := ref.URL
		if url == "" {
			url = s.TitleMuted.Render("URL 未設定")
		}
		line := "🔗 " + ref.Title + "  " + url
		if v.focus == fieldReferences && i == v.refCursor {
			items = append(items, s.ListSelected.Render(line))
		} else {
			items = append(items, s.ListItem.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskDetailView) renderMemos(width int) string {
	s := v.styles
	if len(v.task.Memos) == 0 {
		return s.TitleMuted.Render("メモはありません")
	}

	var items []string
	for i, memo := range v.task.Memos {
		if v.memoEditing && i == v.memoCursor {
			items = append(items, s.InputFocused.Render(v.memoInput.View()))
			continue
		}

		content := memo.Content
		if content == "" {
			content = s.TitleMuted.Render("メモの内容...")
		}
		line := lipgloss.NewStyle().Width(width).Render(content)
		if v.focus == fieldMemos && i == v.memoCursor {
			items = append(items, s.ListSelected.Render(line))
		} else {
			items = append(items, s.ListItem.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskDetailView) renderHelp() string {
	s := v.styles
	switch {
	case v.refEditing:
		return s.TitleMuted.Render("Tab: タイトル/URL • ↵: 次へ • Esc: 完了")
	case v.memoEditing:
		return s.TitleMuted.Render("Esc: 完了 • Ctrl+S: 保存")
	case v.focus == fieldStatus:
		return s.TitleMuted.Render("←/→: ステータス変更 • Tab: 次へ • Ctrl+S: 保存 • Esc: キャンセル")
	case v.focus == fieldReferences, v.focus == fieldMemos:
		return s.TitleMuted.Render("a: 追加 • x: 削除 • ↵: 編集 • ↑↓: 選択 • Tab: 次へ • Ctrl+S: 保存 • Esc: キャンセル")
	}
	return s.TitleMuted.Render("Tab: 次へ • Ctrl+S: 保存 • Esc: キャンセル")
}

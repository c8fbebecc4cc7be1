package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kadai/internal/models"
	"github.com/tgienger/kadai/internal/store"
	"github.com/tgienger/kadai/internal/ui/keys"
	"github.com/tgienger/kadai/internal/ui/styles"
)

type subjectItem struct {
	subject models.Subject
}

func (i subjectItem) Title() string       { return i.subject.Name }
func (i subjectItem) Description() string { return i.subject.ProfessorName }
func (i subjectItem) FilterValue() string { return i.subject.Name }

type subjectDelegate struct {
	styles     *styles.Styles
	width      int
	selectedID string
}

func (d subjectDelegate) Height() int                               { return 2 }
func (d subjectDelegate) Spacing() int                              { return 1 }
func (d subjectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d subjectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(subjectItem)
	if !ok {
		return
	}

	cursor := index == m.Index()
	current := it.subject.ID == d.selectedID
	width := max(d.width-4, 20)

	counterStyle := d.styles.Counter
	if current {
		counterStyle = d.styles.CounterSelected
	}
	counter := counterStyle.Render(fmt.Sprintf("%d/%d", it.subject.CompletedCount(), len(it.subject.Tasks)))

	marker := "  "
	if current {
		marker = "▸ "
	}
	name := marker + it.Title()
	gap := max(width-lipgloss.Width(name)-lipgloss.Width(counter)-4, 1)

	var titleStyle, descStyle lipgloss.Style
	if cursor {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	title := titleStyle.Render(name + strings.Repeat(" ", gap) + counter)
	desc := descStyle.Render("  " + it.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// SelectedSubject is emitted when the user opens a subject's tasks
type SelectedSubject struct {
	ID string
}

type subjectsLoadedMsg struct {
	snap store.Snapshot
}

// SubjectListView lists subjects and edits their names
type SubjectListView struct {
	store    *store.Store
	list     list.Model
	delegate *subjectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	editing   bool
	editingID string
	editName  textinput.Model
	editProf  textinput.Model
	focusIdx  int // 0=name, 1=professor, 2=save

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	showHelpPopup bool
}

// NewSubjectListView creates the subject list
func NewSubjectListView(st *store.Store) *SubjectListView {
	s := styles.NewStyles()

	editName := textinput.New()
	editName.Placeholder = "科目名"
	editName.CharLimit = 100

	editProf := textinput.New()
	editProf.Placeholder = "担当教員名"
	editProf.CharLimit = 100

	delegate := &subjectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "科目一覧"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &SubjectListView{
		store:    st,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		editName: editName,
		editProf: editProf,
	}
}

func (v *SubjectListView) Init() tea.Cmd {
	snap := v.store.Snapshot()
	return func() tea.Msg {
		return subjectsLoadedMsg{snap: snap}
	}
}

// refresh rebuilds the list from snap, keeping the cursor on the same subject when it still exists
func (v *SubjectListView) refresh(snap store.Snapshot) {
	var cursorID string
	if item, ok := v.list.SelectedItem().(subjectItem); ok {
		cursorID = item.subject.ID
	}

	subjects := snap.Subjects()
	items := make([]list.Item, len(subjects))
	cursor := -1
	for i, subj := range subjects {
		items[i] = subjectItem{subject: subj}
		if subj.ID == cursorID {
			cursor = i
		}
	}
	v.list.SetItems(items)
	if cursor >= 0 {
		v.list.Select(cursor)
	} else if v.list.Index() >= len(items) {
		v.list.Select(max(len(items)-1, 0))
	}

	v.delegate.selectedID, _ = snap.SelectedSubjectID()
	v.loaded = true
}

func (v *SubjectListView) selectByID(id string) {
	for i, item := range v.list.Items() {
		if it, ok := item.(subjectItem); ok && it.subject.ID == id {
			v.list.Select(i)
			return
		}
	}
}

func (v *SubjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-4)
		return v, nil

	case subjectsLoadedMsg:
		v.refresh(msg.snap)
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		// typing into the list filter must not trigger hotkeys
		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, nil
		case key.Matches(msg, v.keys.New):
			subj := v.store.AddSubject()
			v.refresh(v.store.Snapshot())
			v.selectByID(subj.ID)
			v.startEdit(subj)
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(subjectItem); ok {
				v.startEdit(item.subject)
				return v, textinput.Blink
			}
			return v, nil
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(subjectItem); ok {
				id := item.subject.ID
				v.store.SelectSubject(id)
				v.refresh(v.store.Snapshot())
				return v, func() tea.Msg {
					return SelectedSubject{ID: id}
				}
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(subjectItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.subject.ID
				v.deleteTargetName = item.subject.Name
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *SubjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.DeleteSubject(v.deleteTargetID)
		v.confirmingDelete = false
		v.refresh(v.store.Snapshot())
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *SubjectListView) startEdit(subj models.Subject) {
	v.editing = true
	v.editingID = subj.ID
	v.focusIdx = 0
	v.editName.SetValue(subj.Name)
	v.editProf.SetValue(subj.ProfessorName)
	v.updateFocus()
}

// saveEdit writes the form back. An empty name keeps the form open.
func (v *SubjectListView) saveEdit() {
	name := strings.TrimSpace(v.editName.Value())
	if name == "" {
		return
	}
	v.store.UpdateSubject(v.editingID, name, strings.TrimSpace(v.editProf.Value()))
	v.editing = false
	v.refresh(v.store.Snapshot())
}

func (v *SubjectListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.saveEdit()
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.focusIdx = (v.focusIdx + 2) % 3
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 3
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 2 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		v.saveEdit()
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.editName, cmd = v.editName.Update(msg)
	case 1:
		v.editProf, cmd = v.editProf.Update(msg)
	}
	return v, cmd
}

func (v *SubjectListView) updateFocus() {
	v.editName.Blur()
	v.editProf.Blur()
	switch v.focusIdx {
	case 0:
		v.editName.Focus()
	case 1:
		v.editProf.Focus()
	}
}

// View renders the view
func (v *SubjectListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderEditForm()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("読み込み中...")
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *SubjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("科目がありません"),
		"",
		s.TitleMuted.Render("'n' を押して新しい科目を追加しましょう"),
		"",
		s.ButtonPrimary.Render(" 科目追加 "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *SubjectListView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	nameStyle := s.Input
	profStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		profStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("科目を編集"),
		"",
		"科目名:",
		nameStyle.Width(inputWidth).Render(v.editName.View()),
		"",
		"担当教員名:",
		profStyle.Width(inputWidth).Render(v.editProf.View()),
		"",
		btnStyle.Render(" 保存 "),
		"",
		s.TitleMuted.Render("Tab: 次へ • Ctrl+S: 保存 • Esc: キャンセル"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *SubjectListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " ヘルプ")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s 開く • %s 追加 • %s 編集 • %s 削除 • %s 絞り込み • %s 終了",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *SubjectListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵") + "      科目を開く",
		s.HelpKey.Render("n") + "      科目追加",
		s.HelpKey.Render("e") + "      科目を編集",
		s.HelpKey.Render("d") + "      科目を削除",
		s.HelpKey.Render("/") + "      絞り込み",
		s.HelpKey.Render("q") + "      終了",
		"",
		s.TitleMuted.Render("何かキーを押すと閉じます"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("キーボードショートカット"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *SubjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("科目を削除しますか？"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("「%s」と関連するすべてのタスクが削除されます。", v.deleteTargetName)),
		s.TitleMuted.Render("この操作は元に戻せません。"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - はい "),
			"  ",
			s.Button.Render(" N - いいえ "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

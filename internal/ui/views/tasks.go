package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kadai/internal/models"
	"github.com/tgienger/kadai/internal/store"
	"github.com/tgienger/kadai/internal/ui/keys"
	"github.com/tgienger/kadai/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

const deadlineLayout = "2006/01/02"

// TaskListView shows the selected subject's tasks ordered by deadline
type TaskListView struct {
	store   *store.Store
	subject models.Subject
	tasks   []models.Task
	styles  *styles.Styles
	keys    keys.KeyMap
	now     func() time.Time

	width  int
	height int

	cursor  int
	scrollY int
	loaded  bool

	// hides completed tasks from the list when set
	hideCompleted bool

	// Task creation/editing
	detail *TaskDetailView

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskListView creates a task list for the store's selected subject
func NewTaskListView(st *store.Store) *TaskListView {
	return &TaskListView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		now:    time.Now,
	}
}

// BackToSubjects signals to go back to the subject list
type BackToSubjects struct{}

type tasksLoadedMsg struct {
	snap store.Snapshot
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	snap := v.store.Snapshot()
	return func() tea.Msg {
		return tasksLoadedMsg{snap: snap}
	}
}

func (v *TaskListView) refresh(snap store.Snapshot) {
	v.subject, _ = snap.SelectedSubject()
	v.tasks = v.tasks[:0]
	for _, t := range snap.ListTasks() {
		if v.hideCompleted && t.IsCompleted {
			continue
		}
		v.tasks = append(v.tasks, t)
	}
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
	v.ensureVisible()
	v.loaded = true
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		if v.detail != nil {
			v.detail.Update(msg)
		}
		return v, nil

	case tasksLoadedMsg:
		v.refresh(msg.snap)
		return v, nil

	case tea.KeyMsg:
		if v.detail != nil {
			return v.updateDetail(msg)
		}

		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		return v.updateNormal(msg)
	}

	if v.detail != nil {
		_, cmd := v.detail.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *TaskListView) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, cmd := v.detail.Update(msg)
	if v.detail.Closed() {
		v.detail = nil
		v.refresh(v.store.Snapshot())
	}
	return v, cmd
}

func (v *TaskListView) openDetail() tea.Cmd {
	if !v.store.Editing().Open() {
		return nil
	}
	v.detail = NewTaskDetailView(v.store)
	v.detail.Update(tea.WindowSizeMsg{Width: v.width, Height: v.height})
	return v.detail.Init()
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToSubjects{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
		if len(v.tasks) > 0 {
			v.store.BeginEditTask(v.tasks[v.cursor].ID)
			return v, v.openDetail()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.store.BeginAddTask()
		return v, v.openDetail()

	case key.Matches(msg, v.keys.Delete):
		if len(v.tasks) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = v.tasks[v.cursor].ID
			v.deleteTargetName = v.tasks[v.cursor].Title
		}
		return v, nil

	case key.Matches(msg, v.keys.Advance):
		if len(v.tasks) > 0 {
			task := v.tasks[v.cursor]
			v.store.SetTaskStatus(task.ID, task.Status.Next())
			v.refresh(v.store.Snapshot())
		}
		return v, nil

	case key.Matches(msg, v.keys.ShowCompleted):
		v.hideCompleted = !v.hideCompleted
		v.cursor = 0
		v.scrollY = 0
		v.refresh(v.store.Snapshot())
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.DeleteTask(v.deleteTargetID)
		v.confirmingDelete = false
		v.refresh(v.store.Snapshot())
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) visibleItems() int {
	// Each task item is 2 lines + 1 margin = 3 lines
	availableHeight := max(v.height-8, 3)
	return max(availableHeight/3, 1)
}

func (v *TaskListView) ensureVisible() {
	visible := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
}

// View renders the view
func (v *TaskListView) View() string {
	if v.detail != nil {
		return v.detail.View()
	}

	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("読み込み中...")
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles

	title := v.subject.Name
	if v.hideCompleted {
		title += " (完了を非表示)"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(title),
		s.TitleMuted.Render(v.subject.ProfessorName+" 担当"),
	)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.TitleMuted.Render("この科目にはまだタスクがありません。"),
			s.TitleMuted.Render("'n' で「タスクを追加」して始めましょう！"),
		)
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.tasks))
	now := v.now()
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.tasks[i], i == v.cursor, now))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool, now time.Time) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)

	deadlineStyle := s.TaskDeadline
	if task.IsOverdue(now) {
		deadlineStyle = s.TaskOverdue
	}
	infoLine := lipgloss.JoinHorizontal(lipgloss.Center,
		s.StatusBadge(task.Status),
		"  ",
		deadlineStyle.Render("締め切り: "+task.Deadline.Format(deadlineLayout)),
	)

	lineStyle := s.ListItem.Width(width)
	if selected {
		lineStyle = s.ListSelected.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lineStyle.Render(task.Title),
		lineStyle.Render(infoLine),
	) + "\n"
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " ヘルプ")
	}

	completedLabel := "完了を隠す"
	if v.hideCompleted {
		completedLabel = "完了を表示"
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s 編集 • %s 追加 • %s 削除 • %s 進める • %s %s • %s 戻る • %s 終了",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("c"),
			completedLabel,
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	completedLabel := "完了したタスクを隠す"
	if v.hideCompleted {
		completedLabel = "完了したタスクを表示"
	}

	helpItems := []string{
		s.HelpKey.Render("↵/e") + "    タスクを編集",
		s.HelpKey.Render("n") + "      タスクを追加",
		s.HelpKey.Render("d") + "      タスクを削除",
		s.HelpKey.Render("s") + "      ステータスを進める",
		s.HelpKey.Render("c") + "      " + completedLabel,
		s.HelpKey.Render("esc") + "    科目一覧へ戻る",
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

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("タスクを削除しますか？"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("「%s」を本当に削除しますか？", v.deleteTargetName)),
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

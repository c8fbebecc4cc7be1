package ui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kadai/internal/store"
	"github.com/tgienger/kadai/internal/ui/styles"
	"github.com/tgienger/kadai/internal/ui/views"
)

// View identifies the active screen
type View int

const (
	ViewSubjects View = iota
	ViewTasks
)

const appTitle = "課題管理アプリ"

// App is the root model. It owns the store and switches between views.
type App struct {
	store       *store.Store
	log         *slog.Logger
	styles      *styles.Styles
	currentView View
	subjectList *views.SubjectListView
	taskList    *views.TaskListView
	width       int
	height      int
}

// NewApp creates the application around st
func NewApp(st *store.Store, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		store:       st,
		log:         log,
		styles:      styles.NewStyles(),
		currentView: ViewSubjects,
		subjectList: views.NewSubjectListView(st),
	}
}

// CurrentView reports the active screen
func (a *App) CurrentView() View {
	return a.currentView
}

func (a *App) Init() tea.Cmd {
	return a.subjectList.Init()
}

func (a *App) headerHeight() int {
	return lipgloss.Height(a.renderHeader())
}

// contentSize is the window size left to the active view below the header
func (a *App) contentSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-a.headerHeight(), 0)}
}

func (a *App) openTasks(subjectID string) tea.Cmd {
	a.log.Debug("open subject", "subject", subjectID)
	a.currentView = ViewTasks
	a.taskList = views.NewTaskListView(a.store)

	size := a.contentSize()
	return tea.Batch(
		a.taskList.Init(),
		func() tea.Msg { return size },
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		size := a.contentSize()
		// the subject list persists across view switches
		a.subjectList.Update(size)
		if a.currentView == ViewTasks && a.taskList != nil {
			a.taskList.Update(size)
		}
		return a, nil

	case views.SelectedSubject:
		return a, a.openTasks(msg.ID)

	case views.BackToSubjects:
		a.currentView = ViewSubjects
		a.taskList = nil
		size := a.contentSize()
		return a, tea.Batch(
			a.subjectList.Init(),
			func() tea.Msg { return size },
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewSubjects:
		_, cmd = a.subjectList.Update(msg)
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	}

	return a, cmd
}

func (a *App) renderHeader() string {
	return a.styles.Header.Render(appTitle)
}

func (a *App) View() string {
	body := a.subjectList.View()
	if a.currentView == ViewTasks && a.taskList != nil {
		body = a.taskList.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), body)
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/archguide/internal/guide"
)

// Fetcher performs one building lookup. *guide.Handler implements it.
type Fetcher interface {
	FetchBuildingInfo(ctx context.Context, city, buildingName string) (string, error)
}

// usageSource is implemented by fetchers that track token usage.
type usageSource interface {
	Usage() *guide.Usage
}

// LookupResultMsg carries the outcome of a lookup back to the form.
type LookupResultMsg struct {
	City     string
	Building string
	Text     string
	Err      error
}

// HandlerReloadedMsg replaces the form's fetcher, e.g. after a config change.
type HandlerReloadedMsg struct {
	Fetcher Fetcher
	// Err is set when the reload failed; the old fetcher is kept.
	Err error
}

type noticeLevel int

const (
	noticeNone noticeLevel = iota
	noticeInfo
	noticeWarn
	noticeError
)

const (
	fieldCity = iota
	fieldBuilding
	fieldCount
)

// formChromeHeight is the number of lines used by everything but the answer.
const formChromeHeight = 14

// FormApp is the bubbletea model for the building lookup form.
type FormApp struct {
	fetcher Fetcher

	inputs  []textinput.Model
	focused int

	spinner spinner.Model
	answer  viewport.Model
	busy    bool

	answerTitle string
	answerText  string

	notice      string
	noticeLevel noticeLevel

	width    int
	height   int
	quitting bool
}

// NewFormApp creates a form that sends lookups to fetcher.
func NewFormApp(fetcher Fetcher) *FormApp {
	city := textinput.New()
	city.Placeholder = "e.g. Seoul, Paris"
	city.Prompt = ""
	city.CharLimit = 100
	city.Width = 30
	city.Focus()

	building := textinput.New()
	building.Placeholder = "e.g. 63 Building, Eiffel Tower"
	building.Prompt = ""
	building.CharLimit = 100
	building.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = busyStyle

	return &FormApp{
		fetcher: fetcher,
		inputs:  []textinput.Model{city, building},
		focused: fieldCity,
		spinner: sp,
		answer:  viewport.New(80, 10),
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (a *FormApp) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *FormApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case LookupResultMsg:
		a.busy = false
		a.setResult(msg)
		return a, nil

	case HandlerReloadedMsg:
		if msg.Err != nil {
			a.setNotice(noticeError, fmt.Sprintf("Config reload failed: %v", msg.Err))
			return a, nil
		}
		if msg.Fetcher != nil {
			a.fetcher = msg.Fetcher
			a.setNotice(noticeInfo, "Configuration reloaded.")
		}
		return a, nil
	}

	return a, nil
}

func (a *FormApp) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit

	case "tab":
		return a, a.focus((a.focused + 1) % fieldCount)

	case "shift+tab":
		return a, a.focus((a.focused + fieldCount - 1) % fieldCount)

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		a.answer, cmd = a.answer.Update(msg)
		return a, cmd

	case "enter":
		return a, a.submit()

	case "esc":
		if a.busy {
			return a, nil
		}
		for i := range a.inputs {
			a.inputs[i].Reset()
		}
		a.setNotice(noticeNone, "")
		return a, a.focus(fieldCity)
	}

	if a.busy {
		return a, nil
	}

	var cmd tea.Cmd
	a.inputs[a.focused], cmd = a.inputs[a.focused].Update(msg)
	return a, cmd
}

// submit validates the form and starts a lookup.
// A second submit while one is in flight is ignored.
func (a *FormApp) submit() tea.Cmd {
	if a.busy {
		return nil
	}

	city := strings.TrimSpace(a.inputs[fieldCity].Value())
	building := strings.TrimSpace(a.inputs[fieldBuilding].Value())

	if err := guide.ValidateInput(city, building); err != nil {
		a.showError(err)
		return nil
	}

	a.busy = true
	a.setNotice(noticeNone, "")

	return tea.Batch(a.spinner.Tick, a.lookup(city, building))
}

func (a *FormApp) lookup(city, building string) tea.Cmd {
	fetcher := a.fetcher
	return func() tea.Msg {
		if fetcher == nil {
			return LookupResultMsg{City: city, Building: building, Err: errors.New("no lookup handler configured")}
		}
		text, err := fetcher.FetchBuildingInfo(context.Background(), city, building)
		return LookupResultMsg{City: city, Building: building, Text: text, Err: err}
	}
}

func (a *FormApp) setResult(msg LookupResultMsg) {
	if msg.Err != nil {
		a.answerTitle = ""
		a.answerText = ""
		a.answer.SetContent("")
		a.showError(msg.Err)
		return
	}

	a.setNotice(noticeNone, "")
	a.answerTitle = guide.Title(msg.City, msg.Building)
	a.answerText = msg.Text
	a.refreshAnswer()
	a.answer.GotoTop()
}

func (a *FormApp) showError(err error) {
	var gErr *guide.Error
	if errors.As(err, &gErr) {
		level := noticeError
		if gErr.IsWarning() {
			level = noticeWarn
		}
		a.setNotice(level, gErr.UserMessage())
		return
	}
	a.setNotice(noticeError, "An error occurred: "+err.Error())
}

func (a *FormApp) setNotice(level noticeLevel, text string) {
	a.noticeLevel = level
	a.notice = text
}

func (a *FormApp) focus(field int) tea.Cmd {
	a.focused = field
	var cmd tea.Cmd
	for i := range a.inputs {
		if i == field {
			cmd = a.inputs[i].Focus()
		} else {
			a.inputs[i].Blur()
		}
	}
	return cmd
}

// updateSizes updates the sizes of child components based on terminal size.
func (a *FormApp) updateSizes() {
	// Two boxes side by side, each with border and padding
	inputWidth := (a.width-4)/2 - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range a.inputs {
		a.inputs[i].Width = inputWidth
	}

	answerHeight := a.height - formChromeHeight
	if answerHeight < 3 {
		answerHeight = 3
	}
	a.answer.Width = a.width
	a.answer.Height = answerHeight
	a.refreshAnswer()
}

func (a *FormApp) refreshAnswer() {
	if a.answerText == "" {
		return
	}
	wrapped := lipgloss.NewStyle().Width(a.width).Render(a.answerText)
	a.answer.SetContent(wrapped)
}

// View implements tea.Model.
func (a *FormApp) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🏢 Building Guide"),
		subtitleStyle.Render("Look up any building instantly."),
	)

	fields := lipgloss.JoinHorizontal(lipgloss.Top,
		a.fieldView("City", fieldCity),
		" ",
		a.fieldView("Building name", fieldBuilding),
	)

	button := buttonStyle.Render("Enter  Get information")

	sections := []string{header, "", fields, button, a.statusView()}

	if a.answerTitle != "" {
		rule := ruleStyle.Render(strings.Repeat("─", max(a.width, 10)))
		sections = append(sections, rule, answerTitleStyle.Render(a.answerTitle), a.answer.View())
	}

	sections = append(sections, a.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *FormApp) fieldView(label string, field int) string {
	style := boxStyle
	if field == a.focused {
		style = focusedBoxStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		style.Render(a.inputs[field].View()),
	)
}

func (a *FormApp) statusView() string {
	if a.busy {
		return a.spinner.View() + busyStyle.Render(" Analyzing building information...")
	}

	switch a.noticeLevel {
	case noticeInfo:
		return infoStyle.Render(a.notice)
	case noticeWarn:
		return warnStyle.Render("⚠ " + a.notice)
	case noticeError:
		return errorStyle.Render("✗ " + a.notice)
	default:
		return ""
	}
}

func (a *FormApp) footerView() string {
	help := "tab: switch field • enter: submit • ↑/↓: scroll • esc: clear • ctrl+c: quit"

	if src, ok := a.fetcher.(usageSource); ok && src.Usage() != nil {
		u := src.Usage()
		in, out := u.Total()
		help += fmt.Sprintf("  │  lookups: %d  tokens: %d in / %d out", u.Calls(), in, out)
	}

	return footerStyle.Render(help)
}

// Busy reports whether a lookup is in flight.
func (a *FormApp) Busy() bool {
	return a.busy
}

// NewFormProgram creates a new Bubbletea program for the lookup form.
func NewFormProgram(fetcher Fetcher) (*tea.Program, *FormApp) {
	app := NewFormApp(fetcher)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}

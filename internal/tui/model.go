package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gujnews/internal/service"
)

// SearchPort is the TUI-facing subset of the search service.
type SearchPort interface {
	Search(p service.Params) (*service.Result, error)
	Modes() []string
	DefaultMode() string
	DefaultThreshold() float64
}

// Model is the Bubble Tea model for the terminal front end.
type Model struct {
	service   SearchPort
	input     textinput.Model
	viewport  viewport.Model
	result    *service.Result
	summary   string
	status    string
	mode      string
	threshold float64
	translate bool
	ready     bool
}

// New creates a new TUI model instance.
func New(svc SearchPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:   svc,
		input:     ti,
		viewport:  vp,
		summary:   summary,
		status:    "Loaded. Type to search. Tab: mode, +/-: threshold, Ctrl+T: translate.",
		mode:      svc.DefaultMode(),
		threshold: svc.DefaultThreshold(),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				m = m.runSearch(q)
				return m, nil
			}
		case "tab":
			modes := m.service.Modes()
			for i, name := range modes {
				if name == m.mode {
					m.mode = modes[(i+1)%len(modes)]
					break
				}
			}
			m.status = fmt.Sprintf("Mode: %s", m.mode)
			return m, nil
		case "+":
			m.threshold = min(m.threshold+0.05, 1.0)
			m.status = fmt.Sprintf("Threshold: %.2f", m.threshold)
			return m, nil
		case "-":
			m.threshold = max(m.threshold-0.05, 0.0)
			m.status = fmt.Sprintf("Threshold: %.2f", m.threshold)
			return m, nil
		case "ctrl+t":
			m.translate = !m.translate
			if m.translate {
				m.status = "Translation English → Gujarati enabled"
			} else {
				m.status = "Translation disabled"
			}
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runSearch(query string) Model {
	threshold := m.threshold
	res, err := m.service.Search(service.Params{
		Query:     query,
		Mode:      m.mode,
		Threshold: &threshold,
		Translate: m.translate,
	})
	if err != nil {
		m.status = "Error: " + err.Error()
		m.result = nil
	} else {
		m.result = res
		if res.TranslatedQuery != "" {
			m.status = fmt.Sprintf("%d results for %q (translated: %s)", res.Total, query, res.TranslatedQuery)
		} else {
			m.status = fmt.Sprintf("%d results for %q", res.Total, query)
		}
	}
	m.viewport.SetContent(m.renderResults())
	m.viewport.GotoTop()
	return m
}

// View renders the TUI layout and current results.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(fmt.Sprintf("Gujarati News Search  [%s  t=%.2f]", m.mode, m.threshold))
	summary := summaryStyle.Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if m.result == nil || len(m.result.Groups) == 0 {
		return "No results yet."
	}
	var b strings.Builder
	if m.result.Summary != "" {
		b.WriteString(summaryStyle.Render(m.result.Summary))
		b.WriteString("\n\n")
	}
	for gi, group := range m.result.Groups {
		b.WriteString(fileStyle.Render(fmt.Sprintf("%s (%d articles)", group.SourceFile, len(group.Results))))
		b.WriteString("\n")
		for _, r := range group.Results {
			b.WriteString(scoreStyle.Render(fmt.Sprintf("relevance %.1f%%", r.Score*100)))
			b.WriteString("\n")
			if r.Article.Title != "" {
				b.WriteString(titleStyle.Render(r.Article.Title))
				b.WriteString("\n")
			}
			b.WriteString(r.Article.Content)
			b.WriteString("\n\n")
		}
		if gi < len(m.result.Groups)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	scoreStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

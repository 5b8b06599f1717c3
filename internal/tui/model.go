// Package tui is the interactive search UI: a query box, a result
// viewport with best-sentence highlighting and a status line.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chunkrank/internal/domain"
	"chunkrank/internal/textutil"
)

// SearchPort is the TUI-facing subset of the service.
type SearchPort interface {
	Query(query string, topK int) ([]domain.SearchResult, error)
}

// Model is the Bubble Tea model for the search UI.
type Model struct {
	service   SearchPort
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	summary   string
	status    string
	topK      int
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a TUI model over the given search port. topK bounds how many
// results a single query requests.
func New(service SearchPort, summary string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		summary:  summary,
		topK:     topK,
		status:   "Indexed. Type to search.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				res, err := m.service.Query(q, m.topK)
				switch {
				case err != nil:
					m.status = "Error: " + err.Error()
					m.results = nil
				case len(res) == 0:
					m.status = fmt.Sprintf("No results above threshold for %q", q)
					m.results = nil
				default:
					m.status = fmt.Sprintf("Results for %q", q)
					m.results = res
					m.cursor = 0
					m.lastQuery = q
				}
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("chunkrank")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  %s (%d/%d)  score=%.3f",
		m.cursor+1, len(m.results), r.Chunk.Source, r.Chunk.Index+1, r.Chunk.TotalChunks, r.Score)
	body := highlightBestSentence(r.Chunk.Content, m.lastQuery)
	return title + "\n\n" + body
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// highlightBestSentence emphasizes the sentence sharing the most tokens
// with the query.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := textutil.Sentences(text)
	qTokens := textutil.TokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlap(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sentences[i])
		}
	}
	return strings.Join(sentences, " ")
}

func tokenOverlap(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	for t := range textutil.TokenSet(sentence) {
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}

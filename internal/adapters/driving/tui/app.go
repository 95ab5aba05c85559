// Package tui implements the interactive search browser. Typing
// triggers a debounced query: each keystroke advances a generation
// counter that acts as a cancellation token, so only the newest
// pending query fires and a completed-but-superseded result is
// discarded on arrival. The last query issued always wins.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
)

// DefaultDebounce is the delay between the last keystroke and the
// query it issues.
const DefaultDebounce = 300 * time.Millisecond

// maxVisibleResults bounds the result list height.
const maxVisibleResults = 15

// debounceFired signals that the debounce timer for a generation
// elapsed.
type debounceFired struct {
	gen int
}

// searchCompleted carries the results of a finished query.
type searchCompleted struct {
	gen     int
	results []domain.SearchResult
	err     error
}

// ManifestChanged asks the model to rebuild its index. Sent from the
// manifest watcher goroutine via Program.Send.
type ManifestChanged struct{}

// reindexDone reports a finished rebuild.
type reindexDone struct {
	err error
}

// Model is the bubbletea model for the search view.
type Model struct {
	styles *Styles
	input  textinput.Model

	search    driving.SearchService
	analytics driving.AnalyticsService
	rebuild   func() error
	debounce  time.Duration

	// gen is the cancellation token: bumped on every input change,
	// compared on every timer and result message.
	gen      int
	results  []domain.SearchResult
	selected int
	status   string
	err      error
	width    int
	height   int
}

// Option configures the model.
type Option func(*Model)

// WithDebounce overrides the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithRebuild installs the index rebuild hook used when the manifest
// changes on disk.
func WithRebuild(rebuild func() error) Option {
	return func(m *Model) {
		m.rebuild = rebuild
	}
}

// New creates the search view model.
func New(search driving.SearchService, analytics driving.AnalyticsService, opts ...Option) *Model {
	input := textinput.New()
	input.Placeholder = "Search documentation..."
	input.Focus()

	m := &Model{
		styles:   DefaultStyles(),
		input:    input,
		search:   search,
		analytics: analytics,
		debounce: DefaultDebounce,
		status:   "Type to search",
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceFired:
		if msg.gen != m.gen {
			// Superseded by a newer keystroke; cancelled.
			return m, nil
		}
		return m, m.queryCmd(msg.gen, m.input.Value())

	case searchCompleted:
		if msg.gen != m.gen {
			// Stale result, a newer query is in flight. Discard.
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.results = msg.results
		m.selected = 0
		m.status = fmt.Sprintf("%d result(s)", len(m.results))
		return m, nil

	case ManifestChanged:
		m.status = "Manifest changed, reindexing..."
		return m, m.reindexCmd()

	case reindexDone:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Index rebuilt"
		// Re-run the current query against the fresh index.
		m.gen++
		return m, m.queryCmd(m.gen, m.input.Value())
	}

	return m, m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case tea.KeyDown:
		if m.selected < len(m.results)-1 {
			m.selected++
		}
		return m, nil

	case tea.KeyEnter:
		return m, m.openSelected()
	}

	return m, m.updateInput(msg)
}

// updateInput forwards a message to the text input and schedules a
// debounced query when the value changed.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() == before {
		return cmd
	}

	// New keystroke: mint a new token, invalidating any pending timer.
	m.gen++
	gen := m.gen
	timer := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceFired{gen: gen}
	})
	return tea.Batch(cmd, timer)
}

// queryCmd runs the search off the update loop.
func (m *Model) queryCmd(gen int, query string) tea.Cmd {
	search := m.search
	analytics := m.analytics
	return func() tea.Msg {
		results, err := search.Search(context.Background(), query, domain.SearchOptions{})
		if err == nil && analytics != nil && strings.TrimSpace(query) != "" {
			// History records the query as typed, trimmed by the store.
			_ = analytics.AddSearch(query)
		}
		return searchCompleted{gen: gen, results: results, err: err}
	}
}

func (m *Model) reindexCmd() tea.Cmd {
	rebuild := m.rebuild
	if rebuild == nil {
		return nil
	}
	return func() tea.Msg {
		return reindexDone{err: rebuild()}
	}
}

// openSelected records a view of the selected result's document.
func (m *Model) openSelected() tea.Cmd {
	if m.selected >= len(m.results) || m.analytics == nil {
		return nil
	}
	docID := m.results[m.selected].DocumentID
	analytics := m.analytics
	return func() tea.Msg {
		if err := analytics.TrackView(docID); err != nil {
			return searchCompleted{gen: -1, err: err}
		}
		return nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("docdeck"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	visible := m.results
	if len(visible) > maxVisibleResults {
		visible = visible[:maxVisibleResults]
	}
	for i, r := range visible {
		line := fmt.Sprintf("%s  %s", r.DocumentTitle, m.renderSnippet(r))
		score := m.styles.Score.Render(fmt.Sprintf(" (%.2f)", r.Score))
		if i == m.selected {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Result.Render("  " + line))
		}
		b.WriteString(score)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(m.status + "  (enter: mark viewed, esc: quit)"))
	return b.String()
}

// renderSnippet returns a short excerpt with the first match range
// highlighted.
func (m *Model) renderSnippet(r domain.SearchResult) string {
	width := m.width / 2
	if width < 20 {
		width = 20
	}

	content := strings.ReplaceAll(r.Content, "\n", " ")
	if len(r.Matches) == 0 {
		if len(content) > width {
			return content[:width] + "..."
		}
		return content
	}

	match := r.Matches[0]
	start := match.Start - width/4
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(content) {
		end = len(content)
	}
	if match.End > end {
		return content[start:end]
	}

	return content[start:match.Start] +
		m.styles.Highlight.Render(content[match.Start:match.End]) +
		content[match.End:end]
}

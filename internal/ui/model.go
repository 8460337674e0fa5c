package ui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"filmseek/internal/config"
	"filmseek/internal/domain"
	"filmseek/internal/eventbus"
	"filmseek/internal/ui/coordinator"
	"filmseek/internal/ui/viewmodels"
	"filmseek/internal/ui/views"
)

// Searcher is the slice of the search client the UI needs
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Movie, error)
}

// Model represents the UI state
type Model struct {
	config *config.Config
	bus    eventbus.EventBus
	client Searcher

	coordinator *coordinator.Coordinator
	textInput   textinput.Model
	spinner     spinner.Model
	renderer    *views.Renderer

	width  int
	height int

	// Pipeline state. dispatchSeq tags every dispatch; only the response
	// carrying the latest tag may mutate the view, so a slow stale
	// response can never overwrite newer results.
	dispatchSeq int
	viewState   domain.ViewState
	results     []domain.Movie
	lastQuery   string
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, client Searcher, bus eventbus.EventBus) *Model {
	ti := textinput.New()
	ti.Placeholder = "movie title or keywords"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	quiesce := time.Duration(cfg.UISettings.DebounceMS) * time.Millisecond

	return &Model{
		config:      cfg,
		bus:         bus,
		client:      client,
		coordinator: coordinator.New(cfg.Triggers, quiesce),
		textInput:   ti,
		spinner:     sp,
		renderer:    views.NewRenderer(),
		viewState:   domain.ViewEmpty,
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case debounceFiredMsg:
		if !m.coordinator.TimerFired(msg.token) {
			return m, nil // superseded by later input or an explicit trigger
		}
		return m, m.dispatch(m.textInput.Value(), coordinator.TriggerDebounce)

	case searchResultsMsg:
		if msg.seq != m.dispatchSeq {
			log.Printf("Discarding stale response for %q (seq %d, latest %d)", msg.query, msg.seq, m.dispatchSeq)
			m.publish(eventbus.SearchCompletedEvent{Query: msg.query, Seq: msg.seq, ResultCount: len(msg.results), Stale: true})
			return m, nil
		}
		m.viewState = domain.ViewPopulated
		m.results = msg.results
		m.publish(eventbus.SearchCompletedEvent{Query: msg.query, Seq: msg.seq, ResultCount: len(msg.results)})
		return m, nil

	case searchFailedMsg:
		if msg.seq != m.dispatchSeq {
			return m, nil
		}
		log.Printf("Search for %q failed: %v", msg.query, msg.err)
		m.viewState = domain.ViewFailed
		m.results = nil
		m.publish(eventbus.SearchFailedEvent{Query: msg.query, Seq: msg.seq, Err: msg.err})
		return m, nil

	case spinner.TickMsg:
		if m.viewState != domain.ViewLoading || !m.config.UISettings.ShowLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if m.coordinator.Submit(coordinator.TriggerEnter) {
			return m, m.dispatch(m.textInput.Value(), coordinator.TriggerEnter)
		}
		return m, nil
	}

	before := m.textInput.Value()
	var inputCmd tea.Cmd
	m.textInput, inputCmd = m.textInput.Update(msg)

	if m.textInput.Value() == before {
		return m, inputCmd
	}

	token, delay, ok := m.coordinator.Keystroke()
	if !ok {
		return m, inputCmd
	}
	timer := tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceFiredMsg{token: token}
	})
	return m, tea.Batch(inputCmd, timer)
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.renderer.ButtonHit(msg.X, msg.Y) {
		return m, nil
	}
	if m.coordinator.Submit(coordinator.TriggerButton) {
		return m, m.dispatch(m.textInput.Value(), coordinator.TriggerButton)
	}
	return m, nil
}

// dispatch clears the current results, enters Loading and issues the
// request. The query goes out verbatim; an empty query is a valid search.
// In-flight requests are never cancelled, their responses just lose the
// sequence check when something newer is dispatched.
func (m *Model) dispatch(query string, trigger coordinator.Trigger) tea.Cmd {
	m.dispatchSeq++
	seq := m.dispatchSeq

	m.results = nil
	m.viewState = domain.ViewLoading
	m.lastQuery = query

	m.publish(eventbus.SearchRequestedEvent{Query: query, Seq: seq, Trigger: string(trigger)})
	m.publish(eventbus.SearchStartedEvent{Query: query, Seq: seq})

	search := func() tea.Msg {
		results, err := m.client.Search(context.Background(), query)
		if err != nil {
			return searchFailedMsg{seq: seq, query: query, err: err}
		}
		return searchResultsMsg{seq: seq, query: query, results: results}
	}

	if m.config.UISettings.ShowLoading {
		return tea.Batch(search, m.spinner.Tick)
	}
	return search
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	data := viewmodels.ViewData{
		State:       m.viewState,
		Query:       m.lastQuery,
		Nodes:       viewmodels.BuildResultNodes(m.results),
		ShowLoading: m.config.UISettings.ShowLoading,
		Spinner:     m.spinner.View(),
	}

	return m.renderer.Render(m.textInput.View(), m.config.Triggers.Button, data)
}

// ViewState exposes the current view state for tests and diagnostics
func (m *Model) ViewState() domain.ViewState {
	return m.viewState
}

// Results exposes the current result set for tests and diagnostics
func (m *Model) Results() []domain.Movie {
	return m.results
}

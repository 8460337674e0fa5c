package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"filmseek/internal/domain"
	"filmseek/internal/ui/viewmodels"
)

// GenericErrorText is the only failure message users ever see. The real
// cause goes to the log.
const GenericErrorText = "Something went wrong. Please try again."

const (
	promptText = "Search: "
	buttonText = "Search"

	// Row of the input line in the frame, counted from the top. The
	// frame has no outer padding so mouse rows map straight onto it.
	InputRow = 1
)

// Renderer draws the whole widget frame. Each call replaces the previous
// frame wholesale, the terminal equivalent of swapping the results
// container's content.
type Renderer struct {
	styles *Styles
	width  int

	buttonStart int // column span of the button on InputRow
	buttonEnd   int
}

// NewRenderer creates a renderer with default styles
func NewRenderer() *Renderer {
	return &Renderer{
		styles: NewStyles(),
		width:  80,
	}
}

// SetWidth updates the render width
func (r *Renderer) SetWidth(w int) {
	if w > 0 {
		r.width = w
	}
}

// ButtonHit reports whether the given cell lies on the search button in
// the most recently rendered frame.
func (r *Renderer) ButtonHit(x, y int) bool {
	return y == InputRow && x >= r.buttonStart && x < r.buttonEnd
}

// Render composes the full frame from the live text input view and the
// current view data.
func (r *Renderer) Render(inputView string, showButton bool, data viewmodels.ViewData) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("filmseek"))
	b.WriteString("\n")

	inputLine := r.styles.Prompt.Render(promptText) + inputView
	if showButton {
		r.buttonStart = lipgloss.Width(inputLine) + 2
		button := r.styles.Button.Render(buttonText)
		r.buttonEnd = r.buttonStart + lipgloss.Width(button)
		inputLine += "  " + button
	} else {
		r.buttonStart, r.buttonEnd = 0, 0
	}
	b.WriteString(inputLine)
	b.WriteString("\n")

	b.WriteString(r.renderStatus(data))
	b.WriteString("\n\n")

	b.WriteString(r.renderResults(data))

	return b.String()
}

func (r *Renderer) renderStatus(data viewmodels.ViewData) string {
	switch data.State {
	case domain.ViewLoading:
		if !data.ShowLoading {
			return ""
		}
		return r.styles.Status.Render(data.Spinner + " searching...")
	case domain.ViewFailed:
		return r.styles.Error.Render(GenericErrorText)
	case domain.ViewPopulated:
		if len(data.Nodes) == 0 {
			return r.styles.Status.Render(fmt.Sprintf("no results for %q", data.Query))
		}
		return r.styles.Status.Render(fmt.Sprintf("%d results", len(data.Nodes)))
	default:
		return r.styles.Help.Render("type to search, enter to submit, esc to quit")
	}
}

func (r *Renderer) renderResults(data viewmodels.ViewData) string {
	if data.State != domain.ViewPopulated {
		return ""
	}

	overview := r.styles.Overview.Width(r.width - 2)

	var b strings.Builder
	for i, node := range data.Nodes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(r.styles.ResultTitle.Render(node.Title))
		b.WriteString("\n")
		b.WriteString(r.styles.Poster.Render(node.PosterURL))
		b.WriteString("\n")
		b.WriteString(overview.Render(node.Overview))
		b.WriteString("\n")
		b.WriteString(r.styles.Date.Render(node.DateText))
	}
	return b.String()
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/votersearch/pkg/suggest"
	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the card styles. The zero Theme renders plain text.
type Theme struct {
	Title   lipgloss.Style
	ID      lipgloss.Style
	Label   lipgloss.Style
	Card    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Word    lipgloss.Style
}

// NewTheme creates the styles for w. With color off only layout is applied.
func NewTheme(w io.Writer, color bool) Theme {
	r := lipgloss.NewRenderer(w)
	t := Theme{
		Title:   r.NewStyle().Bold(true),
		ID:      r.NewStyle(),
		Label:   r.NewStyle(),
		Card:    r.NewStyle().PaddingLeft(2),
		Success: r.NewStyle(),
		Error:   r.NewStyle(),
		Word:    r.NewStyle(),
	}
	if !color {
		return t
	}
	t.Title = t.Title.Foreground(lipgloss.Color("#F5C2E7"))
	t.ID = t.ID.Foreground(lipgloss.Color("#89B4FA"))
	t.Label = t.Label.Foreground(lipgloss.Color("#6C7086"))
	t.Card = t.Card.Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("#45475A"))
	t.Success = t.Success.Foreground(lipgloss.Color("#A6E3A1"))
	t.Error = t.Error.Foreground(lipgloss.Color("#F38BA8"))
	t.Word = t.Word.Foreground(lipgloss.Color("75"))
	return t
}

type detail struct {
	label, value string
}

// details lists the rows shown under a card title.
// Booth and card ids always show, the rest only when present.
func details(r *voter.Record) []detail {
	rows := []detail{
		{"Booth ID", orNA(r.BoothID)},
		{"Booth No", orNA(r.BoothNo)},
	}
	rows = appendPresent(rows, "Booth Address", r.BoothAddress)
	rows = appendPresent(rows, "Address", r.Address)
	rows = append(rows, detail{"Voter Card ID", r.DisplayCardID()})
	rows = appendPresent(rows, "Mobile 1", r.Mobile1)
	rows = appendPresent(rows, "Mobile 2", r.Mobile2)
	rows = appendPresent(rows, "Email", r.Email)
	return rows
}

func appendPresent(rows []detail, label string, v voter.Text) []detail {
	if v == "" {
		return rows
	}
	return append(rows, detail{label, string(v)})
}

func orNA(v voter.Text) string {
	if v == "" {
		return "N/A"
	}
	return string(v)
}

// RenderCard renders the n-th result.
func (t Theme) RenderCard(n int, r *voter.Record) string {
	var b strings.Builder
	b.WriteString(t.Title.Render(fmt.Sprintf("#%d. %s", n, r.FullName())))
	b.WriteByte('\n')
	b.WriteString(t.ID.Render("ID: " + r.DisplayID()))
	for _, d := range details(r) {
		b.WriteByte('\n')
		b.WriteString(t.Label.Render(d.label+":") + " " + d.value)
	}
	return t.Card.Render(b.String())
}

// RenderResults renders the summary line followed by one card per record.
func (t Theme) RenderResults(summary string, records []voter.Record) string {
	if len(records) == 0 {
		return t.Error.Render(summary)
	}
	parts := make([]string, 0, len(records)+1)
	parts = append(parts, t.Success.Render(summary))
	for i := range records {
		parts = append(parts, t.RenderCard(i+1, &records[i]))
	}
	return strings.Join(parts, "\n\n")
}

// RenderSuggestions renders completions one per line.
func (t Theme) RenderSuggestions(suggestions []suggest.Suggestion) string {
	lines := make([]string, len(suggestions))
	for i, s := range suggestions {
		lines[i] = fmt.Sprintf("%2d. %s (%d)", i+1, t.Word.Render(s.Word), s.Count)
	}
	return strings.Join(lines, "\n")
}

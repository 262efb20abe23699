package view

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderText writes a terminal rendering of the placeholder to w.
//
// Styles are resolved against w, so a terminal gets a bold heading while
// pipes and buffers get plain text with the same layout.
func RenderText(w io.Writer) error {
	r := lipgloss.NewRenderer(w)

	heading := r.NewStyle().Bold(true)
	container := r.NewStyle().Padding(1, 2)

	body := lipgloss.JoinVertical(lipgloss.Left,
		heading.Render(Title),
		"",
		Intro,
		"",
		"Backend should be running at "+BackendURL+".",
		"",
		NextStep,
	)

	out := container.Render(body)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

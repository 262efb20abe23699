package view

import (
	"bytes"
	"io"
	"sync"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const (
	// Title is the heading shown at the top of the placeholder.
	Title = "CRM App"

	// BackendURL is where the CRM backend is expected to listen.
	// It is only displayed, never requested.
	BackendURL = "http://localhost:8000"

	// Intro confirms that the front end is up.
	Intro = "Frontend is running! 🎉"

	// NextStep lists the pages planned for the front end.
	NextStep = "Next step: we can build out pages for Accounts, Contacts, Activities, and Follow-ups."

	containerStyle = "padding: 20px; font-family: sans-serif"
)

// Placeholder returns the placeholder tree: a padded container holding
// the heading and three paragraphs.
func Placeholder() g.Node {
	return h.Div(
		h.Style(containerStyle),
		h.H1(g.Text(Title)),
		h.P(g.Text(Intro)),
		h.P(
			g.Text("Backend should be running at "),
			h.Code(g.Text(BackendURL)),
			g.Text("."),
		),
		h.P(g.Text(NextStep)),
	)
}

// Page wraps the placeholder in an HTML5 document.
func Page() g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    Title,
		Language: "en",
		Body:     []g.Node{Placeholder()},
	})
}

// Render writes the full HTML document to w.
func Render(w io.Writer) error {
	return Page().Render(w)
}

// RenderFragment writes only the placeholder tree to w, without the
// surrounding document.
func RenderFragment(w io.Writer) error {
	return Placeholder().Render(w)
}

var (
	pageOnce sync.Once
	pageHTML []byte
)

// HTML returns the rendered document. The page is rendered on first use
// and the same bytes are returned afterwards; callers must not modify
// the returned slice.
func HTML() []byte {
	pageOnce.Do(func() {
		var buf bytes.Buffer
		// bytes.Buffer writes do not fail.
		_ = Render(&buf)
		pageHTML = buf.Bytes()
	})
	return pageHTML
}

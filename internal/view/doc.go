// Package view renders the CRM front-end placeholder.
//
// The placeholder is a fixed block of text: a heading, a line confirming
// the front end is up, the address the backend is expected at, and the
// pages planned next. It takes no inputs and holds no state, so every
// render produces the same bytes.
//
// Two renderings exist:
//
//   - HTML, built as a gomponents tree ([Placeholder], [Page], [Render]).
//   - Terminal text, styled with lipgloss ([RenderText]).
package view

// Package render turns article HTML into text a terminal can show.
// HTML from the service is sanitised first, converted to markdown, and
// finally rendered with glamour.
package render

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"

	"github.com/matheuskafuri/newsdesk/internal/news"
)

type Renderer struct {
	policy *bluemonday.Policy
	strip  *bluemonday.Policy
	conv   *md.Converter
}

func New() *Renderer {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "b", "i",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")

	return &Renderer{
		policy: p,
		strip:  bluemonday.StrictPolicy(),
		conv:   md.NewConverter("", true, nil),
	}
}

// Sanitize drops scripts, styles, event handlers and anything not on the
// allow list.
func (r *Renderer) Sanitize(html string) string {
	return r.policy.Sanitize(html)
}

// PlainText strips all markup, for one-line previews.
func (r *Renderer) PlainText(html string) string {
	return strings.Join(strings.Fields(r.strip.Sanitize(html)), " ")
}

// Markdown sanitises html and converts it to markdown. If conversion fails
// the plain text is returned instead.
func (r *Renderer) Markdown(html string) string {
	clean := r.Sanitize(html)
	if strings.TrimSpace(clean) == "" {
		return ""
	}
	out, err := r.conv.ConvertString(clean)
	if err != nil {
		return r.PlainText(clean)
	}
	return strings.TrimSpace(out)
}

// Document is the markdown body of the detail view.
func (r *Renderer) Document(a news.Article) string {
	var b strings.Builder
	if summary := r.Markdown(a.Summary); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n\n")
	}
	if content := r.Markdown(a.Content); content != "" {
		if b.Len() > 0 {
			b.WriteString("---\n\n")
		}
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	if len(a.ImageURLs) > 0 {
		b.WriteString("## Images\n\n")
		for _, u := range a.ImageURLs {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}
	return strings.TrimSpace(b.String())
}

// Terminal renders markdown for a terminal of the given width.
func Terminal(markdown string, width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// Plain renders markdown without colours.
func Plain(markdown string, width int) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	return tr.Render(markdown)
}

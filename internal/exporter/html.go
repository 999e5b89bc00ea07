package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nikbrunner/animedex/internal/listing"
	"github.com/nikbrunner/animedex/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/animedex-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("animedex-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML writes the visible page of r as a standalone HTML card grid.
// Cards carry their full titles and image list as data so the file can be
// imported again.
func ExportHTML(w io.Writer, r listing.Result, title string) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", "en")
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), title))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), title))
	body.AppendChild(withText(element(atom.P, "class", "summary"), summary(r)))

	grid := element(atom.Div, "class", "grid")
	for _, e := range r.Entries {
		grid.AppendChild(card(e))
	}
	body.AppendChild(grid)

	if len(r.Window) > 0 {
		body.AppendChild(pagination(r.Window))
	}
	root.AppendChild(body)

	return html.Render(w, doc)
}

func summary(r listing.Result) string {
	s := fmt.Sprintf("Page %d of %d · %d entries · images: %s", r.Page, max(1, r.TotalPages), len(r.Filtered), r.Mode)
	if r.Query != "" {
		s += fmt.Sprintf(" · query: %q", r.Query)
	}
	return s
}

func card(e model.Entry) *html.Node {
	attrs := []string{
		"class", "card",
		"data-id", strconv.Itoa(e.ID),
		"data-romaji", e.Title.Romaji,
		"data-native", e.Title.Native,
		"data-preferred", e.Title.Preferred,
	}
	if e.Title.English != nil {
		attrs = append(attrs, "data-english", *e.Title.English)
	}
	c := element(atom.Div, attrs...)

	c.AppendChild(element(atom.Img, "src", e.Cover(), "alt", e.DisplayTitle()))
	c.AppendChild(withText(element(atom.H2), e.DisplayTitle()))
	if sub := e.Subtitle(); sub != "" {
		c.AppendChild(withText(element(atom.P, "class", "subtitle"), sub))
	}

	if len(e.Images) > 0 {
		details := element(atom.Details)
		details.AppendChild(withText(element(atom.Summary), fmt.Sprintf("%d images", len(e.Images))))
		for i, src := range e.Images {
			details.AppendChild(element(atom.Img, "class", "image", "src", src, "alt", e.ImageAlt(i)))
		}
		c.AppendChild(details)
	}
	return c
}

func pagination(w listing.Window) *html.Node {
	nav := element(atom.Nav, "class", "pagination")
	for _, l := range w {
		switch {
		case l.Kind == listing.LinkEllipsis:
			nav.AppendChild(withText(element(atom.Span, "class", "ellipsis"), "…"))
		case l.Active:
			nav.AppendChild(withText(element(atom.Span, "class", "page active"), strconv.Itoa(l.Page)))
		default:
			nav.AppendChild(withText(element(atom.Span, "class", "page"), strconv.Itoa(l.Page)))
		}
	}
	return nav
}

// element builds an element node from key/value attribute pairs.
func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

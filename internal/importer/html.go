package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/storage"
)

// ParseHTMLCatalog reads the cards of an exported HTML page back into entries.
// Cards without a numeric data-id are skipped.
func ParseHTMLCatalog(r io.Reader) ([]model.Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	entries := []model.Entry{}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "card") {
			if e, ok := parseCard(n); ok {
				entries = append(entries, e)
			}
			return // Cards don't nest
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, nil
}

func parseCard(n *html.Node) (model.Entry, bool) {
	id, err := strconv.Atoi(getAttr(n, "data-id"))
	if err != nil {
		return model.Entry{}, false
	}

	e := model.Entry{
		ID: id,
		Title: model.Title{
			Romaji:    getAttr(n, "data-romaji"),
			Native:    getAttr(n, "data-native"),
			Preferred: getAttr(n, "data-preferred"),
		},
		Images: []string{},
	}
	if english, ok := lookupAttr(n, "data-english"); ok {
		e.Title.English = &english
	}

	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch {
			case c.Data == "h2" && e.Title.Preferred == "":
				e.Title.Preferred = getTextContent(c)
			case c.Data == "img" && hasClass(c, "image"):
				if src := getAttr(c, "src"); src != "" {
					e.Images = append(e.Images, src)
				}
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	if e.Title.Romaji == "" {
		e.Title.Romaji = e.Title.Preferred
	}
	return e, true
}

// ReadFile loads entries from an HTML export (.html, .htm) or a JSON catalog.
func ReadFile(ctx context.Context, path string) ([]model.Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		entries, err := ParseHTMLCatalog(f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return entries, nil
	default:
		return storage.NewJSONStorage(path).Load(ctx)
	}
}

// Merge appends incoming entries whose IDs are not already present.
// Existing entries keep their position; duplicates within incoming are also skipped.
func Merge(existing, incoming []model.Entry) (merged []model.Entry, added, skipped int) {
	seen := make(map[int]bool, len(existing)+len(incoming))
	merged = make([]model.Entry, 0, len(existing)+len(incoming))
	for _, e := range existing {
		seen[e.ID] = true
		merged = append(merged, e)
	}
	for _, e := range incoming {
		if seen[e.ID] {
			skipped++
			continue
		}
		seen[e.ID] = true
		merged = append(merged, e)
		added++
	}
	return merged, added, skipped
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val, true
		}
	}
	return "", false
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Package importer reads journal entries from files produced outside the
// store: JSON Lines exports and saved HTML pages.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeOfDay is used for imported entries without timestamps.
const DefaultTimeOfDay = "T12:00:00.000Z"

// now is swapped in tests.
var now = time.Now

// LoadFromJSONL loads one entry per line. Malformed or invalid lines are
// skipped with a warning; a file without any valid entry is an error.
func LoadFromJSONL(path string) ([]entry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	var entries []entry.Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e entry.Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", lineNo, path, err)
			continue
		}
		e = Complete(e)
		if err := e.Validate(); err != nil {
			log.Printf("Warning: skipping invalid entry at line %d in %s: %v", lineNo, path, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in %s: %w", path, internalerr.ErrInvalidInput)
	}
	return entries, nil
}

// Complete fills the fields an import may leave out: a fresh id, and
// noon-UTC timestamps on the entry's date.
func Complete(e entry.Entry) entry.Entry {
	e.Date = strings.TrimSpace(e.Date)
	if e.ID == "" {
		e.ID = entry.NewID(now())
	}
	if e.CreatedAt == "" {
		e.CreatedAt = e.Date + DefaultTimeOfDay
	}
	if e.UpdatedAt == "" {
		e.UpdatedAt = e.CreatedAt
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e
}

// LoadHTML turns an HTML page into the entry for date. The entry text is
// the page's visible text; tags come from a <meta name="keywords"> list
// and the mood from <meta name="mood">.
func LoadHTML(r io.Reader, date string) (entry.Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("parse html: %w", err)
	}

	var (
		text strings.Builder
		tags []string
		mood string
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Head:
				if n.DataAtom == atom.Head {
					tags, mood = readMeta(n, tags, mood)
				}
				return
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	e := Complete(entry.Entry{
		Date: date,
		Text: strings.Join(strings.Fields(text.String()), " "),
		Mood: entry.Mood(mood),
		Tags: tags,
	})
	if err := e.Validate(); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

func readMeta(head *html.Node, tags []string, mood string) ([]string, string) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Meta {
			continue
		}
		name, content := attr(c, "name"), attr(c, "content")
		switch strings.ToLower(name) {
		case "keywords":
			for _, kw := range strings.Split(content, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					tags = append(tags, kw)
				}
			}
		case "mood":
			mood = strings.TrimSpace(content)
		}
	}
	return tags, mood
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

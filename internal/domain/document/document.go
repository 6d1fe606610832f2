package document

import (
	"fmt"
	"strings"
)

// Type is the document category.
type Type string

// Document categories. The set is closed.
const (
	TypeProfile    Type = "profile"
	TypeExperience Type = "experience"
	TypeProject    Type = "project"
	TypeCourse     Type = "course"
	TypeWriting    Type = "writing"
)

// Types lists every supported category in display order.
var Types = []Type{TypeProfile, TypeExperience, TypeProject, TypeCourse, TypeWriting}

// IsValid checks if the type is one of the supported categories.
func (t Type) IsValid() bool {
	switch t {
	case TypeProfile, TypeExperience, TypeProject, TypeCourse, TypeWriting:
		return true
	}
	return false
}

// Document is the unit of search (immutable value object).
type Document struct {
	id    string
	typ   Type
	title string
	url   string
	text  string
	tags  []string
	date  string
	meta  map[string]string
}

// New validates and creates a Document.
// ID: non-empty. URL: starts with "/". Text: non-empty after trimming.
func New(
	id string, t Type, title, url, text string,
	tags []string, date string, meta map[string]string,
) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if !t.IsValid() {
		return Document{}, fmt.Errorf("document %q: unknown type %q", id, t)
	}
	if !strings.HasPrefix(url, "/") {
		return Document{}, fmt.Errorf("document %q: url must start with '/': %q", id, url)
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, fmt.Errorf("document %q: text cannot be empty", id)
	}

	return Document{
		id:    id,
		typ:   t,
		title: title,
		url:   url,
		text:  text,
		tags:  cloneStrings(tags),
		date:  date,
		meta:  cloneStringMap(meta),
	}, nil
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Type returns the document category.
func (d *Document) Type() Type { return d.typ }

// Title returns the display title.
func (d *Document) Title() string { return d.title }

// URL returns the deep link (always starts with "/").
func (d *Document) URL() string { return d.url }

// Text returns the flattened searchable body.
func (d *Document) Text() string { return d.text }

// Tags returns the ordered tag list.
func (d *Document) Tags() []string { return d.tags }

// Date returns the optional date string.
func (d *Document) Date() string { return d.date }

// Meta returns free-form metadata.
func (d *Document) Meta() map[string]string { return d.meta }

// ValidateCorpus checks corpus-level invariants: no duplicate IDs.
// Per-document invariants are enforced by New.
func ValidateCorpus(docs []Document) error {
	seen := make(map[string]struct{}, len(docs))
	for i := range docs {
		id := docs[i].ID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate document ID found: %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

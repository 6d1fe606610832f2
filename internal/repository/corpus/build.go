package corpus

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

const dateLayout = "2006-01-02"

// Build flattens content into documents in a fixed order:
// profile, experience, projects, courses, then writing newest first.
// Any per-document or corpus-level violation fails the whole build.
func Build(c Content) ([]document.Document, error) {
	var docs []document.Document
	add := func(d document.Document, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
		}
		docs = append(docs, d)
		return nil
	}

	if c.Profile != nil {
		if err := add(profileDoc(*c.Profile)); err != nil {
			return nil, err
		}
	}
	for _, e := range c.Experience {
		if err := add(experienceDoc(e)); err != nil {
			return nil, err
		}
	}
	for _, p := range c.Projects {
		if err := add(projectDoc(p)); err != nil {
			return nil, err
		}
	}
	for _, track := range c.Education {
		for _, course := range track.Courses {
			if err := add(courseDoc(track.Track, course)); err != nil {
				return nil, err
			}
		}
	}
	for _, w := range sortedWritings(c.Writing) {
		if err := add(writingDoc(w)); err != nil {
			return nil, err
		}
	}

	if err := document.ValidateCorpus(docs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCorpus, err)
	}
	return docs, nil
}

func profileDoc(p Profile) (document.Document, error) {
	// Fixed sections always render, even when empty; highlights follow in file order.
	parts := []string{
		p.Bio,
		"Career goals: " + p.CareerGoals,
		"Interests: " + strings.Join(p.Interests, ", "),
		"Focus areas: " + strings.Join(p.Focus, ", "),
	}
	for _, h := range p.Highlights {
		if h.Value != "" {
			parts = append(parts, h.Label+": "+h.Value)
		}
	}

	tags := append(append([]string{}, p.Interests...), p.Focus...)
	return document.New(p.ID, document.TypeProfile, p.Name, "/#profile", joinText(parts...), tags, "",
		map[string]string{
			"location": p.Location,
			"email":    p.Email,
			"linkedin": p.LinkedIn,
			"github":   p.GitHub,
		})
}

func experienceDoc(e Experience) (document.Document, error) {
	title := e.Role + " at " + e.Company
	return document.New(e.ID, document.TypeExperience, title, "/experience#"+e.ID,
		joinText(
			title,
			labelled("Team", e.Team),
			labelled("Location", e.Location),
			labelled("Dates", e.Dates),
			e.Blurb,
			labelledList("Technologies", e.Stack),
		),
		e.Tags, "",
		map[string]string{
			"company":  e.Company,
			"role":     e.Role,
			"team":     e.Team,
			"location": e.Location,
			"dates":    e.Dates,
			"stack":    strings.Join(e.Stack, ", "),
		})
}

func projectDoc(p Project) (document.Document, error) {
	return document.New(p.ID, document.TypeProject, p.Name, "/projects#"+p.ID,
		joinText(p.Blurb, p.Details, labelledList("Technologies", p.Stack)),
		p.Tags, "",
		map[string]string{
			"stack":  strings.Join(p.Stack, ", "),
			"github": p.Links.GitHub,
			"demo":   p.Links.Demo,
		})
}

func courseDoc(track string, c Course) (document.Document, error) {
	projects := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		s := "Project: " + p.Title + ". " + p.Description
		if len(p.Links) > 0 {
			s += " Links: " + strings.Join(p.Links, ", ")
		}
		projects = append(projects, s)
	}

	return document.New(c.ID, document.TypeCourse, c.Name, "/education#"+c.ID,
		joinText(
			c.Name,
			c.Description,
			c.Blurb,
			labelledList("Technologies", c.Technologies),
			strings.Join(projects, " "),
		),
		c.Tags, "",
		map[string]string{
			"track":        track,
			"technologies": strings.Join(c.Technologies, ", "),
		})
}

func writingDoc(w Writing) (document.Document, error) {
	return document.New(w.ID, document.TypeWriting, w.Title, "/writing/"+w.Slug,
		joinText(w.Title, w.Excerpt, w.Content, labelledList("Tags", w.Tags)),
		w.Tags, w.Date,
		map[string]string{"slug": w.Slug})
}

// sortedWritings orders posts newest first. Undated or unparsable posts go last, in file order.
func sortedWritings(ws []Writing) []Writing {
	out := make([]Writing, len(ws))
	copy(out, ws)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := parseDate(out[i].Date)
		tj, okJ := parseDate(out[j].Date)
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
	return out
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func labelledList(label string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	return label + ": " + strings.Join(values, ", ")
}

// joinText joins non-empty parts with single spaces.
func joinText(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, " ")
}

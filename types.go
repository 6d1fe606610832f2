package docsearch

import "github.com/kailas-cloud/docsearch/internal/domain/document"

// Document types accepted by the engine.
const (
	TypeProfile    = string(document.TypeProfile)
	TypeExperience = string(document.TypeExperience)
	TypeProject    = string(document.TypeProject)
	TypeCourse     = string(document.TypeCourse)
	TypeWriting    = string(document.TypeWriting)
)

// Document is one searchable unit.
type Document struct {
	ID    string
	Type  string
	Title string
	URL   string
	Text  string
	Tags  []string
	Date  string
	Meta  map[string]string
}

// Search methods reported in Response.Method.
const (
	MethodHybrid      = "hybrid"
	MethodKeywordOnly = "keyword-only"
)

// Response is a ranked result list plus the retrieval path that produced it.
type Response struct {
	Results []Document
	Method  string
	Count   int
}

// IndexInfo describes a loaded embedding index.
type IndexInfo struct {
	Model     string
	Dimension int
	Documents int
}

func toDomain(d Document) (document.Document, error) {
	return document.New(d.ID, document.Type(d.Type), d.Title, d.URL, d.Text, d.Tags, d.Date, d.Meta)
}

func fromDomain(d *document.Document) Document {
	return Document{
		ID:    d.ID(),
		Type:  string(d.Type()),
		Title: d.Title(),
		URL:   d.URL(),
		Text:  d.Text(),
		Tags:  d.Tags(),
		Date:  d.Date(),
		Meta:  d.Meta(),
	}
}

func fromDomainList(docs []document.Document) []Document {
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = fromDomain(&docs[i])
	}
	return out
}

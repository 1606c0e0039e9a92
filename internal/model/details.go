package model

// AuthorDetails is one author plus their complete book list.
type AuthorDetails struct {
	Author *Author `json:"author"`
	Books  []*Book `json:"books"`
}

// SeriesDetails is one series plus its books in series order.
type SeriesDetails struct {
	Series *Series `json:"series"`
	Books  []*Book `json:"books"`
}

// TagDetails is one tag plus the books carrying it.
type TagDetails struct {
	Tag   *Tag    `json:"tag"`
	Books []*Book `json:"books"`
}

// BookDetails is the full per-book bundle consumed by the HTML, JSON and OPDS
// surfaces alike. The Book row is kept separate from the related entities
// instead of growing ad hoc fields on the fetched row.
type BookDetails struct {
	Book        *Book               `json:"book"`
	Authors     []*Author           `json:"authors"`
	Series      *Series             `json:"series,omitempty"`
	SeriesIndex float64             `json:"series_index"`
	Tags        []*Tag              `json:"tags"`
	Languages   []string            `json:"languages"`
	Formats     []*Data             `json:"formats"`
	Comment     string              `json:"comment"`
	Identifiers []*Identifier       `json:"identifiers"`
	CustomCols  []CustomColumnValue `json:"custom_columns"`
}

// BookDetailsMini carries just enough for access-control checks: the book row,
// its tags and its raw language codes.
type BookDetailsMini struct {
	Book      *Book    `json:"book"`
	Tags      []*Tag   `json:"tags"`
	LangCodes []string `json:"lang_codes"`
}

// OPDSBook is the reduced projection used by acquisition feeds. Only the first
// language is carried and the comment is sanitized for feed readers.
type OPDSBook struct {
	Book     *Book     `json:"book"`
	Authors  []*Author `json:"authors"`
	Tags     []*Tag    `json:"tags"`
	Language string    `json:"language"`
	Formats  []*Data   `json:"formats"`
	Comment  string    `json:"comment"`
}

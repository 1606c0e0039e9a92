package model // import "github.com/isidore-books/isidore/internal/model"

// Book is one row of the Calibre books table. All fields are read-only views,
// the library database is never written.
type Book struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	SortTitle    string  `json:"sort"`
	TimeStamp    string  `json:"timestamp"`
	PublishDate  string  `json:"pubdate"`
	SeriesIndex  float64 `json:"series_index"`
	AuthorSort   string  `json:"author_sort"`
	Path         string  `json:"path"`
	UUID         string  `json:"uuid"`
	HasCover     bool    `json:"has_cover"`
	LastModified string  `json:"last_modified"`
}

// Data is one stored file format of a book.
type Data struct {
	ID     int    `json:"id"`
	BookID int    `json:"book"`
	Format string `json:"format"`
	Size   int64  `json:"uncompressed_size"`
	Name   string `json:"name"`
}

// Identifier is an external id (isbn, google, amazon, ...) attached to a book.
type Identifier struct {
	ID     int    `json:"id"`
	BookID int    `json:"book"`
	Type   string `json:"type"`
	Value  string `json:"val"`
}

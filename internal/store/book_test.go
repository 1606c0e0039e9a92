package store

import "testing"

func TestGetBook(t *testing.T) {
	s := newTestStore(t)

	book, err := s.GetBook(1)
	if err != nil {
		t.Fatalf("Failed to fetch book: %v", err)
	}
	if book.Title != "Das Buch der Bilder" || book.SortTitle != "Buch der Bilder, Das" {
		t.Fatalf("Unexpected book: %+v", book)
	}
	if !book.HasCover {
		t.Fatal("Expected a cover flag on book 1")
	}

	book, err = s.GetBook(999)
	if err != nil || book != nil {
		t.Fatalf("Unknown book must yield (nil, nil), got %v %v", book, err)
	}
}

func TestBookRelations(t *testing.T) {
	s := newTestStore(t)

	series, err := s.BookSeries(1)
	if err != nil || series == nil || series.Name != "Werke" {
		t.Fatalf("Unexpected series: %v %v", series, err)
	}
	series, err = s.BookSeries(6)
	if err != nil || series != nil {
		t.Fatalf("Book without series must yield (nil, nil), got %v %v", series, err)
	}

	codes, err := s.BookLanguageCodes(6)
	if err != nil {
		t.Fatalf("Failed to fetch languages: %v", err)
	}
	if len(codes) != 2 || codes[0] != "deu" || codes[1] != "eng" {
		t.Fatalf("Languages must come back in item order: %v", codes)
	}

	comment, err := s.BookComment(2)
	if err != nil || comment != "" {
		t.Fatalf("Book without comment must yield empty text, got %q %v", comment, err)
	}

	idents, err := s.BookIdentifiers(1)
	if err != nil {
		t.Fatalf("Failed to fetch identifiers: %v", err)
	}
	if len(idents) != 1 || idents[0].Type != "isbn" || idents[0].Value != "9783458317302" {
		t.Fatalf("Unexpected identifiers: %+v", idents)
	}
}

func TestBookDetails(t *testing.T) {
	s := newTestStore(t)

	details, err := s.BookDetails("en", 1)
	if err != nil {
		t.Fatalf("Failed to assemble details: %v", err)
	}
	if details.Book.ID != 1 || details.Series.Name != "Werke" || details.SeriesIndex != 1.0 {
		t.Fatalf("Unexpected details: %+v", details)
	}
	if len(details.Authors) != 1 || details.Authors[0].Name != "Rainer Maria Rilke" {
		t.Fatalf("Unexpected authors: %+v", details.Authors)
	}
	if len(details.Tags) != 1 || details.Tags[0].Name != "Lyrik" {
		t.Fatalf("Unexpected tags: %+v", details.Tags)
	}
	// Language codes resolve to display names in the UI language.
	if len(details.Languages) != 1 || details.Languages[0] != "German" {
		t.Fatalf("Unexpected languages: %v", details.Languages)
	}
	if len(details.Formats) != 2 || len(details.Identifiers) != 1 {
		t.Fatalf("Unexpected formats or identifiers: %+v", details)
	}
	if len(details.CustomCols) != 2 {
		t.Fatalf("Unexpected custom columns: %+v", details.CustomCols)
	}

	details, err = s.BookDetails("en", 999)
	if err != nil || details != nil {
		t.Fatalf("Unknown book must yield (nil, nil), got %v %v", details, err)
	}
}

func TestBookDetailsMini(t *testing.T) {
	s := newTestStore(t)

	mini, err := s.BookDetailsMini(6)
	if err != nil {
		t.Fatalf("Failed to assemble mini details: %v", err)
	}
	if mini.Book.Title != "Lob der Faulheit" {
		t.Fatalf("Unexpected book: %+v", mini.Book)
	}
	if len(mini.Tags) != 1 || mini.Tags[0].Name != "Fabeln" {
		t.Fatalf("Unexpected tags: %+v", mini.Tags)
	}
	// Mini details keep the raw codes, not display names.
	if len(mini.LangCodes) != 2 || mini.LangCodes[0] != "deu" {
		t.Fatalf("Unexpected language codes: %v", mini.LangCodes)
	}
}

func TestLanguageDisplayName(t *testing.T) {
	cases := []struct {
		code, uiLang, want string
	}{
		{"deu", "en", "German"},
		{"deu", "de", "Deutsch"},
		{"eng", "en", "English"},
		{"", "en", ""},
		{"xx", "en", "xx"},
	}
	for _, c := range cases {
		if got := languageDisplayName(c.code, c.uiLang); got != c.want {
			t.Fatalf("languageDisplayName(%q, %q): expected %q, got %q", c.code, c.uiLang, c.want, got)
		}
	}
}

func TestEntityDetails(t *testing.T) {
	s := newTestStore(t)

	author, err := s.AuthorDetails(1)
	if err != nil {
		t.Fatalf("Failed to assemble author details: %v", err)
	}
	if author.Author.Name != "Rainer Maria Rilke" || len(author.Books) != 5 {
		t.Fatalf("Unexpected author details: %+v", author)
	}
	// Ordered by book sort key.
	if author.Books[0].ID != 1 || author.Books[4].ID != 2 {
		t.Fatalf("Unexpected book order: %v, %v", author.Books[0].ID, author.Books[4].ID)
	}

	series, err := s.SeriesDetails(1)
	if err != nil {
		t.Fatalf("Failed to assemble series details: %v", err)
	}
	if len(series.Books) != 3 || series.Books[0].ID != 1 || series.Books[2].ID != 3 {
		t.Fatalf("Unexpected series details: %+v", series)
	}

	tag, err := s.TagDetails(2)
	if err != nil {
		t.Fatalf("Failed to assemble tag details: %v", err)
	}
	if tag.Tag.Name != "Fabeln" || len(tag.Books) != 1 {
		t.Fatalf("Unexpected tag details: %+v", tag)
	}

	if d, err := s.AuthorDetails(999); err != nil || d != nil {
		t.Fatalf("Unknown author must yield (nil, nil), got %v %v", d, err)
	}
}

package store

import "testing"

func TestSanitizeComment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>kept</p>", "<p>kept</p>"},
		{`<p class="x">attributes dropped</p>`, "<p>attributes dropped</p>"},
		{"<P>case folded</P>", "<p>case folded</p>"},
		{"<script>alert(1)</script>stripped", "alert(1)stripped"},
		{"<div><span>mixed</span><br></div>", "<div>mixed<br></div>"},
		{"a <b>bold</b> and <i>italic</i> <em>word</em>", "a <b>bold</b> and <i>italic</i> <em>word</em>"},
		{`<a href="http://x">link</a>`, "link"},
	}
	for _, c := range cases {
		if got := sanitizeComment(c.in); got != c.want {
			t.Fatalf("sanitizeComment(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestBookDetailsOPDS(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.BookDetailsOPDS(1)
	if err != nil {
		t.Fatalf("Failed to project book: %v", err)
	}
	if entry.Book.Title != "Das Buch der Bilder" {
		t.Fatalf("Unexpected book: %+v", entry.Book)
	}
	if len(entry.Authors) != 1 || entry.Authors[0].Name != "Rainer Maria Rilke" {
		t.Fatalf("Unexpected authors: %+v", entry.Authors)
	}
	// Only the first language is projected.
	if entry.Language != "deu" {
		t.Fatalf("Unexpected language: %q", entry.Language)
	}
	if len(entry.Formats) != 2 {
		t.Fatalf("Unexpected formats: %+v", entry.Formats)
	}
	if entry.Comment != "<p>Gedichte alert(1)<em>1902</em></p>" {
		t.Fatalf("Comment not sanitized: %q", entry.Comment)
	}

	entry, err = s.BookDetailsOPDS(999)
	if err != nil || entry != nil {
		t.Fatalf("Unknown book must yield (nil, nil), got %v %v", entry, err)
	}
}

func TestBooksDetailsFilteredOPDSDropsFormatless(t *testing.T) {
	s := newTestStore(t)

	slice, err := s.BooksSlice(SearchBook, 0, 10, nil, nil)
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}

	entries, err := s.BooksDetailsFilteredOPDS(slice.Entries)
	if err != nil {
		t.Fatalf("Failed to project books: %v", err)
	}
	// Book 7 has no stored format and must not be advertised.
	if len(entries) != 6 {
		t.Fatalf("Expected 6 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Book.ID == 7 {
			t.Fatal("A book without formats must be dropped from the feed")
		}
		if len(e.Formats) == 0 {
			t.Fatalf("Entry %d advertised without formats", e.Book.ID)
		}
	}
}

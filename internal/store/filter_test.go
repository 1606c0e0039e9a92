package store

import (
	"strings"
	"testing"

	"github.com/isidore-books/isidore/internal/model"
)

func intp(v int) *int { return &v }

func TestBooksFilterShapes(t *testing.T) {
	var f *CalibreFilter
	if frag, args := f.BooksFilter(); frag != "books" || args != nil {
		t.Fatalf("Nil filter must be the bare table, got %q %v", frag, args)
	}
	if frag, args := (&CalibreFilter{}).BooksFilter(); frag != "books" || args != nil {
		t.Fatalf("Empty filter must be the bare table, got %q %v", frag, args)
	}

	frag, args := (&CalibreFilter{LangID: intp(1)}).BooksFilter()
	if !strings.Contains(frag, "books_languages_link") || len(args) != 1 {
		t.Fatalf("Unexpected language shape: %q %v", frag, args)
	}

	frag, args = (&CalibreFilter{TagID: intp(2)}).BooksFilter()
	if !strings.Contains(frag, "NOT EXISTS") || len(args) != 1 {
		t.Fatalf("Tag filter must be an exclusion: %q %v", frag, args)
	}

	frag, args = (&CalibreFilter{LangID: intp(1), TagID: intp(2)}).BooksFilter()
	if !strings.Contains(frag, "books_languages_link") || !strings.Contains(frag, "NOT EXISTS") || len(args) != 2 {
		t.Fatalf("Unexpected combined shape: %q %v", frag, args)
	}
}

// The two restrictions point in opposite directions: language keeps matching
// books, tag hides matching books.
func TestFilterDirections(t *testing.T) {
	s := newTestStore(t)

	// Only book 6 is also English.
	eng := &CalibreFilter{LangID: intp(2)}
	slice, err := s.BooksSlice(SearchBook, 0, 10, nil, eng)
	if err != nil {
		t.Fatalf("Failed to list with language filter: %v", err)
	}
	if slice.Total != 1 || slice.Entries[0].ID != 6 {
		t.Fatalf("Language filter must keep only matching books: %+v", slice)
	}

	// Hiding the Lyrik tag removes Rilke's five books; the untagged book 7
	// stays visible.
	noLyrik := &CalibreFilter{TagID: intp(1)}
	slice, err = s.BooksSlice(SearchBook, 0, 10, nil, noLyrik)
	if err != nil {
		t.Fatalf("Failed to list with tag filter: %v", err)
	}
	if slice.Total != 2 {
		t.Fatalf("Tag filter must exclude matching books only: %+v", slice)
	}
	for _, b := range slice.Entries {
		if b.ID != 6 && b.ID != 7 {
			t.Fatalf("Unexpected visible book %d", b.ID)
		}
	}
}

func TestFilterPropagatesToEntityListing(t *testing.T) {
	s := newTestStore(t)

	// With Rilke's books hidden, only authors of the remaining books appear.
	noLyrik := &CalibreFilter{TagID: intp(1)}
	slice, err := s.AuthorsSlice(0, 10, nil, noLyrik)
	if err != nil {
		t.Fatalf("Failed to list authors: %v", err)
	}
	if slice.Total != 2 {
		t.Fatalf("Expected 2 visible authors, got %d", slice.Total)
	}
	for _, a := range slice.Entries {
		if a.Name == "Rainer Maria Rilke" {
			t.Fatal("Author with no visible books must not be listed")
		}
	}

	// Combined: English only and Fabeln hidden leaves nothing.
	both := &CalibreFilter{LangID: intp(2), TagID: intp(2)}
	slice, err = s.AuthorsSlice(0, 10, nil, both)
	if err != nil {
		t.Fatalf("Failed to list authors: %v", err)
	}
	if slice.Total != 0 {
		t.Fatalf("Expected no visible authors, got %d", slice.Total)
	}
}

func TestGetLanguageAndTagID(t *testing.T) {
	s := newTestStore(t)

	id, err := s.GetLanguageID("deu")
	if err != nil || id == nil || *id != 1 {
		t.Fatalf("Unexpected language id: %v %v", id, err)
	}
	id, err = s.GetLanguageID("fra")
	if err != nil || id != nil {
		t.Fatalf("Unknown language must yield (nil, nil), got %v %v", id, err)
	}

	id, err = s.GetTagID("Fabeln")
	if err != nil || id == nil || *id != 2 {
		t.Fatalf("Unexpected tag id: %v %v", id, err)
	}
	id, err = s.GetTagID("Romane")
	if err != nil || id != nil {
		t.Fatalf("Unknown tag must yield (nil, nil), got %v %v", id, err)
	}
}

func TestFilterForUser(t *testing.T) {
	s := newTestStore(t)

	f := s.FilterForUser(nil)
	if f == nil || f.LangID != nil || f.TagID != nil {
		t.Fatalf("Nil user must yield an open filter: %+v", f)
	}

	f = s.FilterForUser(&model.User{RestrictLang: "deu", RestrictTag: "Lyrik"})
	if f.LangID == nil || *f.LangID != 1 || f.TagID == nil || *f.TagID != 1 {
		t.Fatalf("Unexpected filter: %+v", f)
	}

	// Unresolvable restrictions degrade to no restriction.
	f = s.FilterForUser(&model.User{RestrictLang: "xx-nope", RestrictTag: "missing"})
	if f.LangID != nil || f.TagID != nil {
		t.Fatalf("Unknown restrictions must degrade to open: %+v", f)
	}
}

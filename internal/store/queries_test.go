package store

import (
	"strings"
	"testing"
)

func TestSearchTypeNames(t *testing.T) {
	for typ := SearchAuthor; typ < searchTypeEnd; typ++ {
		if typ.String() == "unknown" {
			t.Fatalf("Search type %d has no name", typ)
		}
	}
	if SearchType(-1).String() != "unknown" || searchTypeEnd.String() != "unknown" {
		t.Fatal("Out-of-range types must stringify as unknown")
	}
	if SearchType(-1).valid() || searchTypeEnd.valid() {
		t.Fatal("Out-of-range types must not be valid")
	}
}

// The count and data statements of one family must share the same FROM and
// WHERE text, otherwise the page arithmetic diverges from the fetched rows.
func TestSliceQueriesSharePredicate(t *testing.T) {
	filter := &CalibreFilter{LangID: intp(1), TagID: intp(2)}
	fragment, _ := filter.BooksFilter()
	so := &SearchOptions{Term: "x"}

	for typ := SearchAuthor; typ < searchTypeEnd; typ++ {
		countSQL, dataSQL, ok := mkSliceQueries(typ, fragment, so)
		if !ok {
			t.Fatalf("%s: no queries built", typ)
		}

		countTail := strings.TrimPrefix(countSQL, "SELECT count(*) FROM ")
		if countTail == countSQL {
			t.Fatalf("%s: unexpected count statement: %s", typ, countSQL)
		}

		fromIdx := strings.Index(dataSQL, " FROM ")
		orderIdx := strings.LastIndex(dataSQL, " ORDER BY ")
		if fromIdx < 0 || orderIdx < 0 {
			t.Fatalf("%s: unexpected data statement: %s", typ, dataSQL)
		}
		dataTail := dataSQL[fromIdx+len(" FROM ") : orderIdx]

		if countTail != dataTail {
			t.Fatalf("%s: count and data predicates diverge:\n%s\n%s", typ, countTail, dataTail)
		}
		if !strings.HasSuffix(dataSQL, " LIMIT :length OFFSET :offset") {
			t.Fatalf("%s: data statement must page via bind parameters: %s", typ, dataSQL)
		}
	}
}

func TestSliceQueriesScopeBinding(t *testing.T) {
	for typ := SearchAuthor; typ < searchTypeEnd; typ++ {
		countSQL, _, _ := mkSliceQueries(typ, "books", nil)
		if typ.scoped() != strings.Contains(countSQL, ":id") {
			t.Fatalf("%s: scope binding mismatch: %s", typ, countSQL)
		}
	}
}

func TestSliceQueriesUnknownFamily(t *testing.T) {
	if _, _, ok := mkSliceQueries(searchTypeEnd, "books", nil); ok {
		t.Fatal("Unknown family must not build queries")
	}
}

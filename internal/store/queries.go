package store

import "strings"

// SearchType selects one of the query families of the catalog. The four book
// variants differ only in their ordering.
type SearchType int

const (
	SearchAuthor SearchType = iota
	SearchAuthorBook
	SearchBook
	SearchBookByTimestamp
	SearchBookByPubdate
	SearchBookByLastModified
	SearchSeries
	SearchSeriesBook
	SearchTag
	SearchTagBook

	searchTypeEnd
)

func (t SearchType) valid() bool {
	return t >= SearchAuthor && t < searchTypeEnd
}

var searchTypeNames = map[SearchType]string{
	SearchAuthor:             "author",
	SearchAuthorBook:         "author_book",
	SearchBook:               "book",
	SearchBookByTimestamp:    "book_timestamp",
	SearchBookByPubdate:      "book_pubdate",
	SearchBookByLastModified: "book_last_modified",
	SearchSeries:             "series",
	SearchSeriesBook:         "series_book",
	SearchTag:                "tag",
	SearchTagBook:            "tag_book",
}

func (t SearchType) String() string {
	if name, ok := searchTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// scoped reports whether the family lists the books of one parent entity and
// therefore binds :id.
func (t SearchType) scoped() bool {
	return t == SearchAuthorBook || t == SearchSeriesBook || t == SearchTagBook
}

const bookColumns = `Books.id, Books.title, Books.sort, Books.timestamp, Books.pubdate,
	Books.series_index, Books.author_sort, Books.path, Books.uuid, Books.has_cover, Books.last_modified`

// family is the static shape of one query family. from receives the book
// filter fragment via %s where it references books.
type family struct {
	columns     string
	from        string
	scopeCond   string
	searchField string
	orderBy     string
}

var families = map[SearchType]family{
	SearchAuthor: {
		columns:     "a.id, a.name, a.sort",
		from:        "authors a",
		scopeCond:   "EXISTS (SELECT 1 FROM books_authors_link bal JOIN %s Books ON Books.id = bal.book WHERE bal.author = a.id)",
		searchField: "a.sort",
		orderBy:     "a.sort",
	},
	SearchSeries: {
		columns:     "s.id, s.name, s.sort",
		from:        "series s",
		scopeCond:   "EXISTS (SELECT 1 FROM books_series_link bsl JOIN %s Books ON Books.id = bsl.book WHERE bsl.series = s.id)",
		searchField: "s.name",
		orderBy:     "s.name",
	},
	SearchTag: {
		columns:     "t.id, t.name",
		from:        "tags t",
		scopeCond:   "EXISTS (SELECT 1 FROM books_tags_link btl JOIN %s Books ON Books.id = btl.book WHERE btl.tag = t.id)",
		searchField: "t.name",
		orderBy:     "t.name",
	},
	SearchBook: {
		columns:     bookColumns,
		from:        "%s Books",
		searchField: "Books.title",
		orderBy:     "Books.sort",
	},
	SearchBookByTimestamp: {
		columns:     bookColumns,
		from:        "%s Books",
		searchField: "Books.title",
		orderBy:     "Books.timestamp DESC",
	},
	SearchBookByPubdate: {
		columns:     bookColumns,
		from:        "%s Books",
		searchField: "Books.title",
		orderBy:     "Books.pubdate DESC",
	},
	SearchBookByLastModified: {
		columns:     bookColumns,
		from:        "%s Books",
		searchField: "Books.title",
		orderBy:     "Books.last_modified DESC",
	},
	SearchAuthorBook: {
		columns:     bookColumns,
		from:        "books_authors_link bal JOIN %s Books ON Books.id = bal.book",
		scopeCond:   "bal.author = :id",
		searchField: "Books.title",
		orderBy:     "Books.sort",
	},
	SearchSeriesBook: {
		columns:     bookColumns,
		from:        "books_series_link bsl JOIN %s Books ON Books.id = bsl.book",
		scopeCond:   "bsl.series = :id",
		searchField: "Books.title",
		orderBy:     "Books.series_index",
	},
	SearchTagBook: {
		columns:     bookColumns,
		from:        "books_tags_link btl JOIN %s Books ON Books.id = btl.book",
		scopeCond:   "btl.tag = :id",
		searchField: "Books.title",
		orderBy:     "Books.sort",
	},
}

// mkSliceQueries builds the count and data statements of one family. Both are
// derived from the same FROM and WHERE text, so their predicates cannot
// diverge. The data statement additionally orders and pages via the :length
// and :offset bind parameters.
func mkSliceQueries(t SearchType, filterFragment string, so *SearchOptions) (countSQL, dataSQL string, ok bool) {
	fam, found := families[t]
	if !found {
		return "", "", false
	}

	from := strings.Replace(fam.from, "%s", filterFragment, 1)

	conds := []string{}
	if fam.scopeCond != "" {
		conds = append(conds, strings.Replace(fam.scopeCond, "%s", filterFragment, 1))
	}
	if cond := so.Condition(fam.searchField); cond != "" {
		conds = append(conds, cond)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countSQL = "SELECT count(*) FROM " + from + where
	dataSQL = "SELECT " + fam.columns + " FROM " + from + where +
		" ORDER BY " + fam.orderBy + " LIMIT :length OFFSET :offset"
	return countSQL, dataSQL, true
}

package store

import (
	"regexp"
	"strings"

	"github.com/isidore-books/isidore/internal/model"
)

// Acquisition feeds tolerate very little markup; everything outside this
// allow-list is stripped, and the kept tags lose their attributes.
var (
	allowedTagRe   = regexp.MustCompile(`(?i)<(/?)(div|strong|i|em|b|p|br)\b[^>]*>`)
	remainingTagRe = regexp.MustCompile(`<[^>]*>`)
	markedTagRe    = regexp.MustCompile("\x00(/?)([a-z]+)\x00")
)

// sanitizeComment reduces a comment to the tag allow-list used by feed
// readers: div, strong, i, em, b, p, br. Kept tags are collapsed to their
// bare form, dropping any attributes.
func sanitizeComment(comment string) string {
	kept := allowedTagRe.ReplaceAllStringFunc(comment, func(tag string) string {
		m := allowedTagRe.FindStringSubmatch(tag)
		return "\x00" + m[1] + strings.ToLower(m[2]) + "\x00"
	})
	stripped := remainingTagRe.ReplaceAllString(kept, "")
	return markedTagRe.ReplaceAllString(stripped, "<$1$2>")
}

// BookDetailsOPDS projects one book for acquisition-feed rendering: authors,
// tags, the first language only, formats and a sanitized comment. Returns
// (nil, nil) for an unknown id.
func (s *Store) BookDetailsOPDS(id int) (*model.OPDSBook, error) {
	book, err := s.GetBook(id)
	if err != nil || book == nil {
		return nil, err
	}
	return s.bookOPDS(book)
}

func (s *Store) bookOPDS(book *model.Book) (*model.OPDSBook, error) {
	entry := &model.OPDSBook{Book: book}

	var err error
	if entry.Authors, err = s.BookAuthors(book.ID); err != nil {
		return nil, err
	}
	if entry.Tags, err = s.BookTags(book.ID); err != nil {
		return nil, err
	}

	codes, err := s.BookLanguageCodes(book.ID)
	if err != nil {
		return nil, err
	}
	if len(codes) > 0 {
		entry.Language = codes[0]
	}

	if entry.Formats, err = s.BookFormats(book.ID); err != nil {
		return nil, err
	}

	comment, err := s.BookComment(book.ID)
	if err != nil {
		return nil, err
	}
	entry.Comment = sanitizeComment(comment)

	return entry, nil
}

// BooksDetailsFilteredOPDS projects a list of books for an acquisition feed
// and drops every book without a single stored format: a feed must not
// advertise entries with nothing to acquire.
func (s *Store) BooksDetailsFilteredOPDS(books []*model.Book) ([]*model.OPDSBook, error) {
	entries := make([]*model.OPDSBook, 0, len(books))
	for _, book := range books {
		entry, err := s.bookOPDS(book)
		if err != nil {
			return nil, err
		}
		if len(entry.Formats) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

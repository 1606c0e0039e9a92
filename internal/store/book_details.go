package store

import (
	"github.com/isidore-books/isidore/internal/metrics"
	"github.com/isidore-books/isidore/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// BookDetails assembles the full per-book bundle used by every rendering
// surface: authors, series, tags, languages (as display names in the UI
// language), formats, comment, identifiers and custom columns. The related
// entities are fetched by separate queries per dimension. Returns (nil, nil)
// for an unknown id.
func (s *Store) BookDetails(uiLang string, id int) (*model.BookDetails, error) {
	book, err := s.GetBook(id)
	if err != nil || book == nil {
		return nil, err
	}
	metrics.CountDetailQuery("full")

	details := &model.BookDetails{Book: book, SeriesIndex: book.SeriesIndex}

	if details.Authors, err = s.BookAuthors(id); err != nil {
		return nil, err
	}
	if details.Series, err = s.BookSeries(id); err != nil {
		return nil, err
	}
	if details.Tags, err = s.BookTags(id); err != nil {
		return nil, err
	}

	codes, err := s.BookLanguageCodes(id)
	if err != nil {
		return nil, err
	}
	details.Languages = make([]string, 0, len(codes))
	for _, code := range codes {
		details.Languages = append(details.Languages, languageDisplayName(code, uiLang))
	}

	if details.Formats, err = s.BookFormats(id); err != nil {
		return nil, err
	}
	if details.Comment, err = s.BookComment(id); err != nil {
		return nil, err
	}
	if details.Identifiers, err = s.BookIdentifiers(id); err != nil {
		return nil, err
	}
	if details.CustomCols, err = s.CustomColumns(id); err != nil {
		return nil, err
	}

	return details, nil
}

// BookDetailsMini carries just the book, its tags and its raw language codes.
// Used for access-control checks without the cost of full detail assembly.
func (s *Store) BookDetailsMini(id int) (*model.BookDetailsMini, error) {
	book, err := s.GetBook(id)
	if err != nil || book == nil {
		return nil, err
	}
	metrics.CountDetailQuery("mini")

	tags, err := s.BookTags(id)
	if err != nil {
		return nil, err
	}
	codes, err := s.BookLanguageCodes(id)
	if err != nil {
		return nil, err
	}

	return &model.BookDetailsMini{Book: book, Tags: tags, LangCodes: codes}, nil
}

// languageDisplayName maps an ISO 639-2 code to a human-readable name in the
// requested UI language. Degrades to the raw code when either side cannot be
// resolved.
func languageDisplayName(code, uiLang string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	ui, err := language.Parse(uiLang)
	if err != nil {
		ui = language.English
	}
	namer := display.Languages(ui)
	if namer == nil {
		return code
	}
	if name := namer.Name(tag); name != "" {
		return name
	}
	return code
}

package store

import "github.com/isidore-books/isidore/internal/model"

// kindleFormats orders formats by e-reader delivery preference, best first.
var kindleFormats = []string{"AZW3", "AZW", "MOBI", "HTML", "PDF"}

func kindleFormatRank(format string) int {
	for i, f := range kindleFormats {
		if f == format {
			return i
		}
	}
	return -1
}

// KindleFormatLess orders two formats by delivery preference. Formats outside
// the priority list compare as equal and sort first.
func KindleFormatLess(a, b *model.Data) bool {
	return kindleFormatRank(a.Format) < kindleFormatRank(b.Format)
}

// BestKindleFormat returns the best-ranked deliverable format of one book,
// or (nil, nil) when the book has no accepted format.
func (s *Store) BestKindleFormat(bookID int) (*model.Data, error) {
	formats, err := s.BookFormats(bookID)
	if err != nil {
		return nil, err
	}

	var best *model.Data
	bestRank := len(kindleFormats)
	for _, f := range formats {
		rank := kindleFormatRank(f.Format)
		if rank >= 0 && rank < bestRank {
			best = f
			bestRank = rank
		}
	}
	return best, nil
}

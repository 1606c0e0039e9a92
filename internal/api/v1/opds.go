package v1

import (
	"encoding/xml"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/isidore-books/isidore/internal/http/request"
	"github.com/isidore-books/isidore/internal/http/response"
	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"github.com/isidore-books/isidore/internal/store"
	"go.uber.org/zap"
)

const (
	opdsNavigationType  = "application/atom+xml;profile=opds-catalog;kind=navigation"
	opdsAcquisitionType = "application/atom+xml;profile=opds-catalog;kind=acquisition"
)

type opdsLink struct {
	Rel  string `xml:"rel,attr,omitempty"`
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr,omitempty"`
}

type opdsAuthor struct {
	Name string `xml:"name"`
}

type opdsEntry struct {
	Title    string       `xml:"title"`
	ID       string       `xml:"id"`
	Updated  string       `xml:"updated"`
	Authors  []opdsAuthor `xml:"author,omitempty"`
	Summary  *opdsSummary `xml:"summary,omitempty"`
	Language string       `xml:"dcterms:language,omitempty"`
	Links    []opdsLink   `xml:"link"`
}

type opdsSummary struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type opdsFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Dcterms string      `xml:"xmlns:dcterms,attr"`
	ID      string      `xml:"id"`
	Title   string      `xml:"title"`
	Updated string      `xml:"updated"`
	Links   []opdsLink  `xml:"link"`
	Entries []opdsEntry `xml:"entry"`
}

func newOpdsFeed(id, title string, updated time.Time) *opdsFeed {
	return &opdsFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Dcterms: "http://purl.org/dc/terms/",
		ID:      id,
		Title:   title,
		Updated: updated.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) writeOpds(w http.ResponseWriter, r *http.Request, feed *opdsFeed, kind string) {
	body, err := xml.Marshal(feed)
	if err != nil {
		log.Error("Failed to marshal OPDS feed", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	builder := response.New(w, r)
	builder.WithHeader("Content-Type", kind+";charset=utf-8")
	builder.WithBody(append([]byte(xml.Header), body...))
	builder.Write()
}

// opdsRootFeed is the navigation entry point for e-reader clients.
func (h *Handler) opdsRootFeed(w http.ResponseWriter, r *http.Request) {
	feed := newOpdsFeed("urn:isidore:root", "Isidore Library", h.store.LastModified())
	feed.Links = []opdsLink{
		{Rel: "self", Href: "/opds", Type: opdsNavigationType},
		{Rel: "start", Href: "/opds", Type: opdsNavigationType},
	}

	updated := h.store.LastModified().UTC().Format(time.RFC3339)
	for _, section := range []struct {
		id, title, href string
	}{
		{"urn:isidore:new", "Recently added", "/opds/new"},
		{"urn:isidore:all", "All books", "/opds/all"},
		{"urn:isidore:authors", "By author", "/opds/authors"},
		{"urn:isidore:series", "By series", "/opds/series"},
		{"urn:isidore:tags", "By tag", "/opds/tags"},
	} {
		feed.Entries = append(feed.Entries, opdsEntry{
			Title:   section.title,
			ID:      section.id,
			Updated: updated,
			Links:   []opdsLink{{Rel: "subsection", Href: section.href, Type: opdsAcquisitionType}},
		})
	}
	h.writeOpds(w, r, feed, opdsNavigationType)
}

func (h *Handler) opdsAllBooksFeed(w http.ResponseWriter, r *http.Request) {
	h.opdsBooksFeed(w, r, store.SearchBook, "urn:isidore:all", "All books", "/opds/all", nil)
}

func (h *Handler) opdsNewBooksFeed(w http.ResponseWriter, r *http.Request) {
	h.opdsBooksFeed(w, r, store.SearchBookByTimestamp, "urn:isidore:new", "Recently added", "/opds/new", nil)
}

func (h *Handler) opdsSearchFeed(w http.ResponseWriter, r *http.Request) {
	so := searchParams(r)
	if so.Empty() {
		response.BadRequest(w, r, fmt.Errorf("missing search term"))
		return
	}
	h.opdsBooksFeed(w, r, store.SearchBook, "urn:isidore:search", "Search results", "/opds/search", so)
}

func (h *Handler) opdsBooksFeed(w http.ResponseWriter, r *http.Request, order store.SearchType, id, title, href string, so *store.SearchOptions) {
	index, length := pagingParams(r)

	slice, err := h.store.BooksSlice(order, index, length, so, h.userFilter(r))
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	entries, err := h.store.BooksDetailsFilteredOPDS(slice.Entries)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	feed := newOpdsFeed(id, title, h.store.LastModified())
	feed.Links = opdsPagingLinks(href, slice.Page, slice.Pages)
	feed.Entries = opdsBookEntries(entries)
	h.writeOpds(w, r, feed, opdsAcquisitionType)
}

func (h *Handler) opdsAuthorsFeed(w http.ResponseWriter, r *http.Request) {
	index, length := pagingParams(r)
	slice, err := h.store.AuthorsSlice(index, length, searchParams(r), h.userFilter(r))
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	feed := newOpdsFeed("urn:isidore:authors", "By author", h.store.LastModified())
	feed.Links = opdsPagingLinks("/opds/authors", slice.Page, slice.Pages)
	updated := feed.Updated
	for _, author := range slice.Entries {
		feed.Entries = append(feed.Entries, opdsEntry{
			Title:   author.Name,
			ID:      fmt.Sprintf("urn:isidore:author:%d", author.ID),
			Updated: updated,
			Links: []opdsLink{{
				Rel:  "subsection",
				Href: fmt.Sprintf("/opds/authors/%d", author.ID),
				Type: opdsAcquisitionType,
			}},
		})
	}
	h.writeOpds(w, r, feed, opdsNavigationType)
}

func (h *Handler) opdsSeriesFeed(w http.ResponseWriter, r *http.Request) {
	index, length := pagingParams(r)
	slice, err := h.store.SeriesSlice(index, length, searchParams(r), h.userFilter(r))
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	feed := newOpdsFeed("urn:isidore:series", "By series", h.store.LastModified())
	feed.Links = opdsPagingLinks("/opds/series", slice.Page, slice.Pages)
	updated := feed.Updated
	for _, series := range slice.Entries {
		feed.Entries = append(feed.Entries, opdsEntry{
			Title:   series.Name,
			ID:      fmt.Sprintf("urn:isidore:series:%d", series.ID),
			Updated: updated,
			Links: []opdsLink{{
				Rel:  "subsection",
				Href: fmt.Sprintf("/opds/series/%d", series.ID),
				Type: opdsAcquisitionType,
			}},
		})
	}
	h.writeOpds(w, r, feed, opdsNavigationType)
}

func (h *Handler) opdsTagsFeed(w http.ResponseWriter, r *http.Request) {
	index, length := pagingParams(r)
	slice, err := h.store.TagsSlice(index, length, searchParams(r), h.userFilter(r))
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	feed := newOpdsFeed("urn:isidore:tags", "By tag", h.store.LastModified())
	feed.Links = opdsPagingLinks("/opds/tags", slice.Page, slice.Pages)
	updated := feed.Updated
	for _, tag := range slice.Entries {
		feed.Entries = append(feed.Entries, opdsEntry{
			Title:   tag.Name,
			ID:      fmt.Sprintf("urn:isidore:tag:%d", tag.ID),
			Updated: updated,
			Links: []opdsLink{{
				Rel:  "subsection",
				Href: fmt.Sprintf("/opds/tags/%d", tag.ID),
				Type: opdsAcquisitionType,
			}},
		})
	}
	h.writeOpds(w, r, feed, opdsNavigationType)
}

func (h *Handler) opdsBooksByAuthorFeed(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	index, length := pagingParams(r)

	author, slice, err := h.store.AuthorDetailsSlice(id, index, length, h.userFilter(r))
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if author == nil {
		response.NotFound(w, r)
		return
	}
	h.opdsScopedBooksFeed(w, r, fmt.Sprintf("urn:isidore:author:%d", id), author.Name,
		fmt.Sprintf("/opds/authors/%d", id), slice)
}

func (h *Handler) opdsBooksBySeriesFeed(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	index, length := pagingParams(r)

	series, slice, err := h.store.SeriesDetailsSlice(id, index, length, h.userFilter(r))
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if series == nil {
		response.NotFound(w, r)
		return
	}
	h.opdsScopedBooksFeed(w, r, fmt.Sprintf("urn:isidore:series:%d", id), series.Name,
		fmt.Sprintf("/opds/series/%d", id), slice)
}

func (h *Handler) opdsBooksByTagFeed(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	index, length := pagingParams(r)

	tag, slice, err := h.store.TagDetailsSlice(id, index, length, h.userFilter(r))
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if tag == nil {
		response.NotFound(w, r)
		return
	}
	h.opdsScopedBooksFeed(w, r, fmt.Sprintf("urn:isidore:tag:%d", id), tag.Name,
		fmt.Sprintf("/opds/tags/%d", id), slice)
}

func (h *Handler) opdsScopedBooksFeed(w http.ResponseWriter, r *http.Request, id, title, href string, slice *model.Slice[*model.Book]) {
	entries, err := h.store.BooksDetailsFilteredOPDS(slice.Entries)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	feed := newOpdsFeed(id, title, h.store.LastModified())
	feed.Links = opdsPagingLinks(href, slice.Page, slice.Pages)
	feed.Entries = opdsBookEntries(entries)
	h.writeOpds(w, r, feed, opdsAcquisitionType)
}

func opdsPagingLinks(href string, page, pages int) []opdsLink {
	links := []opdsLink{
		{Rel: "self", Href: fmt.Sprintf("%s?page=%d", href, page), Type: opdsAcquisitionType},
		{Rel: "start", Href: "/opds", Type: opdsNavigationType},
	}
	if page > 0 {
		links = append(links, opdsLink{Rel: "previous", Href: fmt.Sprintf("%s?page=%d", href, page-1), Type: opdsAcquisitionType})
	}
	if page+1 < pages {
		links = append(links, opdsLink{Rel: "next", Href: fmt.Sprintf("%s?page=%d", href, page+1), Type: opdsAcquisitionType})
	}
	return links
}

func opdsBookEntries(books []*model.OPDSBook) []opdsEntry {
	entries := make([]opdsEntry, 0, len(books))
	for _, b := range books {
		entry := opdsEntry{
			Title:    b.Book.Title,
			ID:       fmt.Sprintf("urn:uuid:%s", b.Book.UUID),
			Updated:  b.Book.LastModified,
			Language: b.Language,
		}
		for _, a := range b.Authors {
			entry.Authors = append(entry.Authors, opdsAuthor{Name: a.Name})
		}
		if b.Comment != "" {
			entry.Summary = &opdsSummary{Type: "html", Text: b.Comment}
		}
		for _, f := range b.Formats {
			mimeType := mime.TypeByExtension("." + strings.ToLower(f.Format))
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}
			entry.Links = append(entry.Links, opdsLink{
				Rel:  "http://opds-spec.org/acquisition",
				Href: fmt.Sprintf("/opds/download/%d/%s", b.Book.ID, strings.ToLower(f.Format)),
				Type: mimeType,
			})
		}
		if b.Book.HasCover {
			entry.Links = append(entry.Links, opdsLink{
				Rel:  "http://opds-spec.org/image",
				Href: fmt.Sprintf("/api/v1/books/%d/cover", b.Book.ID),
				Type: "image/jpeg",
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

package v1

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/isidore-books/isidore/internal/config"
	"github.com/isidore-books/isidore/internal/http/request"
	"github.com/isidore-books/isidore/internal/http/response"
	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/storage"
	"github.com/isidore-books/isidore/internal/store"
	"go.uber.org/zap"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	index, length := pagingParams(r)

	order := store.SearchBook
	switch request.QueryStringParam(r, "sort", "") {
	case "new":
		order = store.SearchBookByTimestamp
	case "pubdate":
		order = store.SearchBookByPubdate
	case "modified":
		order = store.SearchBookByLastModified
	}

	slice, err := h.store.BooksSlice(order, index, length, searchParams(r), h.userFilter(r))
	if err != nil {
		log.Error("Failed to list books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, slice)
}

func (h *Handler) getBookDetails(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	uiLang := request.QueryStringParam(r, "lang", config.Opts.UILanguage)

	details, err := h.store.BookDetails(uiLang, id)
	if err != nil {
		log.Error("Failed to assemble book details", zap.Int("id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if details == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, details)
}

func (h *Handler) getKindleFormat(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	format, err := h.store.BestKindleFormat(id)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if format == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, format)
}

// downloadBook streams one stored format of a book, after checking the
// current user may see it.
func (h *Handler) downloadBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	format := strings.ToUpper(request.RouteStringParam(r, "format"))

	if !h.bookVisible(r, id) {
		response.NotFound(w, r)
		return
	}

	book, err := h.store.GetBook(id)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	formats, err := h.store.BookFormats(id)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	for _, f := range formats {
		if f.Format != format {
			continue
		}
		path, ok := storage.BookFile(config.Opts.Library, book.Path, f.Name, f.Format)
		if !ok {
			response.NotFound(w, r)
			return
		}

		mimeType := mime.TypeByExtension(filepath.Ext(path))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", mimeType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
		http.ServeFile(w, r, path)
		return
	}
	response.NotFound(w, r)
}

func (h *Handler) getCover(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")

	book, err := h.store.GetBook(id)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil || !book.HasCover {
		response.NotFound(w, r)
		return
	}

	path, ok := storage.CoverFile(config.Opts.Library, book.Path)
	if !ok {
		response.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeFile(w, r, path)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats()
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, map[string]any{
		"stats":         stats,
		"user_version":  h.store.UserVersion(),
		"last_modified": h.store.LastModified(),
		"has_notes":     h.store.HasNotes(),
	})
}

// bookVisible applies the user's restrictions to one book with the mini
// detail bundle, which is all an access check needs.
func (h *Handler) bookVisible(r *http.Request, id int) bool {
	user := getCurrentUser(r)
	if user == nil || (user.RestrictLang == "" && user.RestrictTag == "") {
		return true
	}

	mini, err := h.store.BookDetailsMini(id)
	if err != nil || mini == nil {
		return false
	}

	if user.RestrictTag != "" {
		for _, tag := range mini.Tags {
			if tag.Name == user.RestrictTag {
				return false
			}
		}
	}
	if user.RestrictLang != "" {
		found := false
		for _, code := range mini.LangCodes {
			if code == user.RestrictLang {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

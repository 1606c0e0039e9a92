package v1

import (
	"net/http"

	"github.com/isidore-books/isidore/internal/http/request"
	"github.com/isidore-books/isidore/internal/http/response"
	"github.com/isidore-books/isidore/internal/log"
	"go.uber.org/zap"
)

func (h *Handler) listAuthors(w http.ResponseWriter, r *http.Request) {
	index, length := pagingParams(r)
	slice, err := h.store.AuthorsSlice(index, length, searchParams(r), h.userFilter(r))
	if err != nil {
		log.Error("Failed to list authors", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, slice)
}

func (h *Handler) listAuthorBooks(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	index, length := pagingParams(r)

	author, slice, err := h.store.AuthorDetailsSlice(id, index, length, h.userFilter(r))
	if err != nil {
		log.Error("Failed to list author books", zap.Int("id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if author == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, map[string]any{"author": author, "books": slice})
}

func (h *Handler) listSeries(w http.ResponseWriter, r *http.Request) {
	index, length := pagingParams(r)
	slice, err := h.store.SeriesSlice(index, length, searchParams(r), h.userFilter(r))
	if err != nil {
		log.Error("Failed to list series", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, slice)
}

func (h *Handler) listSeriesBooks(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	index, length := pagingParams(r)

	series, slice, err := h.store.SeriesDetailsSlice(id, index, length, h.userFilter(r))
	if err != nil {
		log.Error("Failed to list series books", zap.Int("id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if series == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, map[string]any{"series": series, "books": slice})
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	index, length := pagingParams(r)
	slice, err := h.store.TagsSlice(index, length, searchParams(r), h.userFilter(r))
	if err != nil {
		log.Error("Failed to list tags", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, slice)
}

func (h *Handler) listTagBooks(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")
	index, length := pagingParams(r)

	tag, slice, err := h.store.TagDetailsSlice(id, index, length, h.userFilter(r))
	if err != nil {
		log.Error("Failed to list tag books", zap.Int("id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if tag == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, map[string]any{"tag": tag, "books": slice})
}

func (h *Handler) initialsFor(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initials, err := h.store.Initials(table, searchParams(r))
		if err != nil {
			log.Error("Failed to list initials", zap.String("table", table), zap.Error(err))
			response.ServerError(w, r, err)
			return
		}

		// jump=X also returns the rank of the first row with that initial.
		if jump := request.QueryStringParam(r, "jump", ""); jump != "" {
			pos, count, err := h.store.CalcInitialPos(table, jump, searchParams(r))
			if err != nil {
				response.ServerError(w, r, err)
				return
			}
			response.OK(w, r, map[string]any{"initials": initials, "position": pos, "count": count})
			return
		}
		response.OK(w, r, initials)
	}
}

func (h *Handler) authorsInitials(w http.ResponseWriter, r *http.Request) {
	h.initialsFor("authors")(w, r)
}

func (h *Handler) seriesInitials(w http.ResponseWriter, r *http.Request) {
	h.initialsFor("series")(w, r)
}

func (h *Handler) tagsInitials(w http.ResponseWriter, r *http.Request) {
	h.initialsFor("tags")(w, r)
}

func (h *Handler) titlesInitials(w http.ResponseWriter, r *http.Request) {
	h.initialsFor("books")(w, r)
}

func (h *Handler) titlesYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.store.TitlesYears(searchParams(r))
	if err != nil {
		log.Error("Failed to list years", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	if jump := request.QueryStringParam(r, "jump", ""); jump != "" {
		pos, count, err := h.store.CalcYearPos(jump, searchParams(r))
		if err != nil {
			response.ServerError(w, r, err)
			return
		}
		response.OK(w, r, map[string]any{"years": years, "position": pos, "count": count})
		return
	}
	response.OK(w, r, years)
}

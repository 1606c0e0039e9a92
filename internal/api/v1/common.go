package v1

import (
	"net/http"

	"github.com/isidore-books/isidore/internal/config"
	"github.com/isidore-books/isidore/internal/http/request"
	"github.com/isidore-books/isidore/internal/model"
	"github.com/isidore-books/isidore/internal/store"
)

// getCurrentUser resolves the authenticated user from the request context.
// Anonymous requests get a nil user, which maps to an unrestricted filter.
func getCurrentUser(r *http.Request) *model.User {
	username := request.GetUsername(r)
	if username == "" {
		return nil
	}
	u := config.Opts.FindUser(username)
	if u == nil {
		return nil
	}
	return &model.User{
		Username:     u.Username,
		Admin:        u.Admin,
		RestrictLang: u.RestrictLang,
		RestrictTag:  u.RestrictTag,
	}
}

// userFilter derives the catalog filter from the current user's restrictions.
func (h *Handler) userFilter(r *http.Request) *store.CalibreFilter {
	return h.store.FilterForUser(getCurrentUser(r))
}

// pagingParams reads page/length query parameters with configured defaults.
func pagingParams(r *http.Request) (index, length int) {
	index = request.QueryIntParam(r, "page", 0)
	length = request.QueryIntParam(r, "length", config.Opts.PageSize)
	return index, length
}

// searchParams builds the search options from query parameters.
func searchParams(r *http.Request) *store.SearchOptions {
	term := request.QueryStringParam(r, "search", "")
	if term == "" {
		return nil
	}
	return &store.SearchOptions{
		Term:        term,
		RespectCase: request.QueryBoolParam(r, "case"),
		Translit:    request.QueryBoolParam(r, "translit"),
	}
}

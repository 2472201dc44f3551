package social

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fkhayef/social/internal/model"
	"github.com/fkhayef/social/pkg/response"
)

// PageLimits bounds the page sizes accepted from clients
type PageLimits struct {
	Default int
	Max     int
}

// Handler exposes the Social facade over HTTP
type Handler struct {
	social *Social
	limits PageLimits
	logger *zap.Logger
}

// NewHandler creates a new handler with the facade injected
func NewHandler(social *Social, limits PageLimits, logger *zap.Logger) *Handler {
	if limits.Default < 1 {
		limits.Default = 20
	}
	if limits.Max < limits.Default {
		limits.Max = limits.Default
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{social: social, limits: limits, logger: logger}
}

// Routes returns the router for every social endpoint
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/persons", func(r chi.Router) {
		r.Post("/", h.CreatePerson)
		r.Get("/", h.ListPersons)
		r.Get("/{code}", h.GetPerson)
		r.Post("/{code}/friends", h.AddFriend)
		r.Get("/{code}/friends", h.ListFriends)
		r.Get("/{code}/posts", h.ListUserPosts)
		r.Get("/{code}/feed", h.FriendFeed)
	})

	r.Route("/groups", func(r chi.Router) {
		r.Post("/", h.CreateGroup)
		r.Get("/", h.ListGroups)
		r.Put("/{name}", h.RenameGroup)
		r.Delete("/{name}", h.DeleteGroup)
		r.Post("/{name}/members", h.AddMember)
		r.Get("/{name}/members", h.ListMembers)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Post("/", h.CreatePost)
		r.Get("/{id}", h.GetPost)
	})

	r.Route("/rankings", func(r chi.Router) {
		r.Get("/most-friends", h.MostFriends)
		r.Get("/largest-group", h.LargestGroup)
		r.Get("/most-groups", h.MostGroups)
	})

	return r
}

// fail writes the response matching err, logging unexpected failures
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, model.ErrAlreadyExists):
		response.Conflict(w, err.Error())
	default:
		h.logger.Error(message, zap.String("path", r.URL.Path), zap.Error(err))
		response.InternalError(w, message)
	}
}

// pathParam returns the decoded value of a URL parameter. chi matches on
// RawPath when the request has one, and only then is the value still escaped.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if v, err := url.PathUnescape(value); err == nil {
		return v
	}
	return value
}

// page reads the page and per_page query parameters
func (h *Handler) page(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = h.limits.Default
	}
	if perPage > h.limits.Max {
		perPage = h.limits.Max
	}
	return page, perPage
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func ranking(result string, ok bool) *RankingResponse {
	if !ok {
		return &RankingResponse{}
	}
	return &RankingResponse{Result: &result}
}

package social

import (
	"net/http"

	"github.com/fkhayef/social/pkg/response"
)

// CreatePost handles POST /posts
// @Summary      Publish a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body CreatePostRequest true "Post to publish"
// @Success      201 {object} response.APIResponse{data=PostResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /posts [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	id, err := h.social.Post(r.Context(), req.Author, req.Text)
	if err != nil {
		h.fail(w, r, err, "Failed to create post")
		return
	}
	response.JSON(w, http.StatusCreated, &PostResponse{ID: id})
}

// GetPost handles GET /posts/{id}
// @Summary      Get post by id
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200 {object} response.APIResponse{data=PostResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /posts/{id} [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	content, err := h.social.GetPostContent(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to get post")
		return
	}
	timestamp, err := h.social.GetTimestamp(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to get post")
		return
	}
	response.JSON(w, http.StatusOK, &PostResponse{ID: id, Content: content, Timestamp: timestamp})
}

// MostFriends handles GET /rankings/most-friends
// @Summary      Person with the most friends
// @Tags         rankings
// @Produce      json
// @Success      200 {object} response.APIResponse{data=RankingResponse}
// @Router       /rankings/most-friends [get]
func (h *Handler) MostFriends(w http.ResponseWriter, r *http.Request) {
	code, ok, err := h.social.PersonWithLargestNumberOfFriends(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to rank persons")
		return
	}
	response.JSON(w, http.StatusOK, ranking(code, ok))
}

// LargestGroup handles GET /rankings/largest-group
// @Summary      Group with the most members
// @Tags         rankings
// @Produce      json
// @Success      200 {object} response.APIResponse{data=RankingResponse}
// @Router       /rankings/largest-group [get]
func (h *Handler) LargestGroup(w http.ResponseWriter, r *http.Request) {
	name, ok, err := h.social.LargestGroup(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to rank groups")
		return
	}
	response.JSON(w, http.StatusOK, ranking(name, ok))
}

// MostGroups handles GET /rankings/most-groups
// @Summary      Person in the most groups
// @Tags         rankings
// @Produce      json
// @Success      200 {object} response.APIResponse{data=RankingResponse}
// @Router       /rankings/most-groups [get]
func (h *Handler) MostGroups(w http.ResponseWriter, r *http.Request) {
	code, ok, err := h.social.PersonInLargestNumberOfGroups(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to rank persons")
		return
	}
	response.JSON(w, http.StatusOK, ranking(code, ok))
}

package social

import (
	"net/http"

	"github.com/fkhayef/social/pkg/response"
)

// CreatePerson handles POST /persons
// @Summary      Create a new person
// @Description  Create an account identified by a unique code
// @Tags         persons
// @Accept       json
// @Produce      json
// @Param        request body CreatePersonRequest true "Person creation request"
// @Success      201 {object} response.APIResponse{data=PersonResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /persons [post]
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Code == "" {
		response.BadRequest(w, "Person code is required")
		return
	}

	if err := h.social.AddPerson(r.Context(), req.Code, req.Name, req.Surname); err != nil {
		h.fail(w, r, err, "Failed to create person")
		return
	}

	details, err := h.social.GetPerson(r.Context(), req.Code)
	if err != nil {
		h.fail(w, r, err, "Failed to get person")
		return
	}
	response.JSON(w, http.StatusCreated, &PersonResponse{Code: req.Code, Details: details})
}

// ListPersons handles GET /persons
// @Summary      List persons
// @Description  Codes of every person, sorted
// @Tags         persons
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]string}
// @Router       /persons [get]
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	codes, err := h.social.ListPersons(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to list persons")
		return
	}
	response.JSON(w, http.StatusOK, codes)
}

// GetPerson handles GET /persons/{code}
// @Summary      Get person by code
// @Tags         persons
// @Produce      json
// @Param        code path string true "Person code"
// @Success      200 {object} response.APIResponse{data=PersonResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /persons/{code} [get]
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	code := pathParam(r, "code")

	details, err := h.social.GetPerson(r.Context(), code)
	if err != nil {
		h.fail(w, r, err, "Failed to get person")
		return
	}
	response.JSON(w, http.StatusOK, &PersonResponse{Code: code, Details: details})
}

// AddFriend handles POST /persons/{code}/friends
// @Summary      Add a friend
// @Description  Make two persons friends of each other
// @Tags         persons
// @Accept       json
// @Produce      json
// @Param        code path string true "Person code"
// @Param        request body AddFriendRequest true "Friend to add"
// @Success      200 {object} response.APIResponse{data=[]string}
// @Failure      404 {object} response.APIResponse
// @Router       /persons/{code}/friends [post]
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	code := pathParam(r, "code")

	var req AddFriendRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.social.AddFriendship(r.Context(), code, req.Code); err != nil {
		h.fail(w, r, err, "Failed to add friend")
		return
	}

	friends, err := h.social.ListFriends(r.Context(), code)
	if err != nil {
		h.fail(w, r, err, "Failed to list friends")
		return
	}
	response.JSON(w, http.StatusOK, friends)
}

// ListFriends handles GET /persons/{code}/friends
// @Summary      List friends
// @Tags         persons
// @Produce      json
// @Param        code path string true "Person code"
// @Success      200 {object} response.APIResponse{data=[]string}
// @Failure      404 {object} response.APIResponse
// @Router       /persons/{code}/friends [get]
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.social.ListFriends(r.Context(), pathParam(r, "code"))
	if err != nil {
		h.fail(w, r, err, "Failed to list friends")
		return
	}
	response.JSON(w, http.StatusOK, friends)
}

// ListUserPosts handles GET /persons/{code}/posts
// @Summary      List a person's posts
// @Description  Post ids written by the person, most recent first
// @Tags         posts
// @Produce      json
// @Param        code path string true "Person code"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]string}
// @Failure      404 {object} response.APIResponse
// @Router       /persons/{code}/posts [get]
func (h *Handler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	page, perPage := h.page(r)

	ids, err := h.social.GetPaginatedUserPosts(r.Context(), pathParam(r, "code"), page, perPage)
	if err != nil {
		h.fail(w, r, err, "Failed to list posts")
		return
	}
	response.JSONWithMeta(w, http.StatusOK, ids, &response.Meta{Page: page, PerPage: perPage, Count: len(ids)})
}

// FriendFeed handles GET /persons/{code}/feed
// @Summary      Friend feed
// @Description  Posts of the person's friends as "author:id" keys, most recent first
// @Tags         posts
// @Produce      json
// @Param        code path string true "Person code"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]string}
// @Router       /persons/{code}/feed [get]
func (h *Handler) FriendFeed(w http.ResponseWriter, r *http.Request) {
	page, perPage := h.page(r)

	keys, err := h.social.GetPaginatedFriendPosts(r.Context(), pathParam(r, "code"), page, perPage)
	if err != nil {
		h.fail(w, r, err, "Failed to build feed")
		return
	}
	response.JSONWithMeta(w, http.StatusOK, keys, &response.Meta{Page: page, PerPage: perPage, Count: len(keys)})
}

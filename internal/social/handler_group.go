package social

import (
	"net/http"

	"github.com/fkhayef/social/pkg/response"
)

// CreateGroup handles POST /groups
// @Summary      Create a new group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Group name is required")
		return
	}

	if err := h.social.AddGroup(r.Context(), req.Name); err != nil {
		h.fail(w, r, err, "Failed to create group")
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// ListGroups handles GET /groups
// @Summary      List groups
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]string}
// @Router       /groups [get]
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	names, err := h.social.ListGroups(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to list groups")
		return
	}
	response.JSON(w, http.StatusOK, names)
}

// RenameGroup handles PUT /groups/{name}
// @Summary      Rename a group
// @Description  Move every member to a group with the new name
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        name path string true "Current group name"
// @Param        request body RenameGroupRequest true "New name"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{name} [put]
func (h *Handler) RenameGroup(w http.ResponseWriter, r *http.Request) {
	var req RenameGroupRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Group name is required")
		return
	}

	if err := h.social.UpdateGroupName(r.Context(), pathParam(r, "name"), req.Name); err != nil {
		h.fail(w, r, err, "Failed to rename group")
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"name": req.Name})
}

// DeleteGroup handles DELETE /groups/{name}
// @Summary      Delete a group
// @Tags         groups
// @Produce      json
// @Param        name path string true "Group name"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{name} [delete]
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.social.DeleteGroup(r.Context(), pathParam(r, "name")); err != nil {
		h.fail(w, r, err, "Failed to delete group")
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

// AddMember handles POST /groups/{name}/members
// @Summary      Add member to group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        name path string true "Group name"
// @Param        request body AddMemberRequest true "Member to add"
// @Success      200 {object} response.APIResponse{data=[]string}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{name}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	var req AddMemberRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.social.AddPersonToGroup(r.Context(), req.Code, name); err != nil {
		h.fail(w, r, err, "Failed to add member")
		return
	}

	members, err := h.social.ListMembers(r.Context(), name)
	if err != nil {
		h.fail(w, r, err, "Failed to get members")
		return
	}
	response.JSON(w, http.StatusOK, members)
}

// ListMembers handles GET /groups/{name}/members. An unknown group has no
// members rather than a 404.
// @Summary      List group members
// @Tags         groups
// @Produce      json
// @Param        name path string true "Group name"
// @Success      200 {object} response.APIResponse{data=[]string}
// @Router       /groups/{name}/members [get]
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.social.ListMembers(r.Context(), pathParam(r, "name"))
	if err != nil {
		h.fail(w, r, err, "Failed to get members")
		return
	}
	response.JSON(w, http.StatusOK, members)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PostRequest is the POST/PUT /posts payload. The owner is always the authenticated caller.
type PostRequest struct {
	Content string `json:"content" binding:"required" example:"hello world"`
}

// @Summary   List posts
// @Tags      posts
// @Produce   json
// @Success   200  {array}   models.Post
// @Failure   401  {object}  map[string]string
// @Router    /posts [get]
// @Security  BearerAuth
func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.services.Posts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, "posts_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary   Create post
// @Tags      posts
// @Accept    json
// @Produce   json
// @Param     body  body      PostRequest  true  "post"
// @Success   200   {object}  models.Post
// @Failure   400   {object}  map[string]string
// @Failure   401   {object}  map[string]string
// @Router    /posts [post]
// @Security  BearerAuth
func (h *Handler) createPost(c *gin.Context) {
	var input PostRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	owner, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	p, err := h.services.Posts.Create(c.Request.Context(), owner.ID, input.Content)
	if err != nil {
		h.respondError(c, "post_create_failed", err, "user_id", owner.ID)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteAllPosts(c *gin.Context) {
	if err := h.services.Posts.DeleteAll(c.Request.Context()); err != nil {
		h.respondError(c, "posts_delete_all_failed", err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary   Get post
// @Tags      posts
// @Produce   json
// @Param     id   path      int  true  "post id"
// @Success   200  {object}  models.Post
// @Failure   404  {object}  map[string]string
// @Router    /posts/{id} [get]
// @Security  BearerAuth
func (h *Handler) getPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.services.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "post_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.services.Posts.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "post_delete_failed", err, "id", id)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) patchPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var fields map[string]json.RawMessage
	if ok := h.bindJSONOrBadRequest(c, &fields); !ok {
		return
	}
	p, err := h.services.Posts.Patch(c.Request.Context(), id, fields)
	if err != nil {
		h.respondError(c, "post_patch_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) replacePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input PostRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	p, err := h.services.Posts.Replace(c.Request.Context(), id, input.Content)
	if err != nil {
		h.respondError(c, "post_replace_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary   Get the author of a post
// @Tags      posts
// @Produce   json
// @Param     id   path      int  true  "post id"
// @Success   200  {object}  models.User
// @Failure   404  {object}  map[string]string
// @Router    /posts/{id}/user [get]
// @Security  BearerAuth
func (h *Handler) postOwner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.services.Posts.Owner(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "post_owner_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, u)
}

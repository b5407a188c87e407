package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blog_api/internal/service"

	"github.com/gin-gonic/gin"
)

// SignUpRequest is the POST /users payload. Password is checked by the service so that
// a missing password maps to the same error as an empty one.
type SignUpRequest struct {
	Name     string `json:"name" binding:"required" example:"Ann"`
	Location string `json:"location" binding:"required" example:"Oslo"`
	Age      *int   `json:"age" binding:"required,gte=0" example:"30"`
	Email    string `json:"email" binding:"required,email" example:"ann@example.com"`
	Password string `json:"password" example:"s3cr3t"`
}

// ReplaceUserRequest is the PUT /users/:id payload. Email is accepted but never applied.
type ReplaceUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Age      *int   `json:"age" binding:"required,gte=0"`
	Email    string `json:"email,omitempty"`
}

// LoginRequest is the POST /users/login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"s3cr3t"`
}

// @Summary      Sign up
// @Description  Creates a user. The password is stored as a bcrypt hash and never returned.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      SignUpRequest  true  "new user"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *Handler) signUp(c *gin.Context) {
	var input SignUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Name:     input.Name,
		Location: input.Location,
		Age:      *input.Age,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, "user_sign_up_failed", err, "email", input.Email)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Log in
// @Description  Exchanges email and password (JSON body or HTTP Basic) for a bearer token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  false  "credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /users/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if email, password, ok := c.Request.BasicAuth(); ok {
		input = LoginRequest{Email: email, Password: password}
	} else if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, "user_login_failed", err, "email", input.Email)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Log out
// @Description  Revokes the presented token, or every token of the caller with all=true.
// @Tags         users
// @Param        all  query  bool  false  "revoke all tokens of the caller"
// @Success      200
// @Failure      401  {object}  map[string]string
// @Router       /users/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	var err error
	if all, _ := strconv.ParseBool(c.Query("all")); all {
		err = h.services.Auth.LogoutAll(c.Request.Context(), c.GetInt(ctxUserIDKey))
	} else {
		err = h.services.Auth.Logout(c.Request.Context(), c.GetString(ctxTokenKey))
	}
	if err != nil {
		h.respondError(c, "user_logout_failed", err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary   List users
// @Tags      users
// @Produce   json
// @Success   200  {array}   models.User
// @Failure   401  {object}  map[string]string
// @Router    /users [get]
// @Security  BearerAuth
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, "users_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) deleteAllUsers(c *gin.Context) {
	if err := h.services.Users.DeleteAll(c.Request.Context()); err != nil {
		h.respondError(c, "users_delete_all_failed", err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary   Get user
// @Tags      users
// @Produce   json
// @Param     id   path      string  true  "user id or 'me'"
// @Success   200  {object}  models.User
// @Failure   400  {object}  map[string]string
// @Failure   404  {object}  map[string]string
// @Router    /users/{id} [get]
// @Security  BearerAuth
func (h *Handler) getUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	u, err := h.services.Users.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "user_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, "user_delete_failed", err, "id", id)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary      Update user
// @Description  Applies name, location and age when present. Other keys are ignored.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "user id or 'me'"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [patch]
// @Security     BearerAuth
func (h *Handler) patchUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var fields map[string]json.RawMessage
	if ok := h.bindJSONOrBadRequest(c, &fields); !ok {
		return
	}
	u, err := h.services.Users.Patch(c.Request.Context(), id, fields)
	if err != nil {
		h.respondError(c, "user_patch_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Replace user
// @Description  Overwrites name, location and age. Email and password never change here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "user id or 'me'"
// @Param        body  body      ReplaceUserRequest  true  "replacement"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (h *Handler) replaceUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var input ReplaceUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	u, err := h.services.Users.Replace(c.Request.Context(), id, service.ReplaceUserInput{
		Name:     input.Name,
		Location: input.Location,
		Age:      *input.Age,
	})
	if err != nil {
		h.respondError(c, "user_replace_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary   List a user's posts
// @Tags      users
// @Produce   json
// @Param     id   path      string  true  "user id or 'me'"
// @Success   200  {array}   models.Post
// @Failure   404  {object}  map[string]string
// @Router    /users/{id}/posts [get]
// @Security  BearerAuth
func (h *Handler) userPosts(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	posts, err := h.services.Users.Posts(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "user_posts_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, posts)
}

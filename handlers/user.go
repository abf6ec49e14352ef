package handlers

import (
	"net/http"

	"homeserve/models"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves account endpoints.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

// RegisterUserHandler handles POST /auth/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "User registered successfully", resp)
}

// LoginHandler handles POST /auth/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Login successful", resp)
}

// MeHandler handles GET /auth/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	usr, err := h.UserService.GetUserByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User retrieved successfully", usr)
}

// CreateAccountHandler handles POST /admin/users.
func (h *UserHandler) CreateAccountHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req user.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	usr, err := h.UserService.CreateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Account created successfully", usr)
}

// ListUsersHandler handles GET /admin/users?role=.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	users, err := h.UserService.ListUsers(c.Request.Context(), actor, models.Role(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Users retrieved successfully", users)
}

// SetUserActiveHandler handles PATCH /admin/users/:id/active.
func (h *UserHandler) SetUserActiveHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.UserService.SetActive(c.Request.Context(), actor, c.Param("id"), *body.Active); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User updated successfully", gin.H{"id": c.Param("id"), "isActive": *body.Active})
}

// DeleteUserHandler handles DELETE /admin/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.UserService.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User deleted successfully", nil)
}

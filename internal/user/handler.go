package user

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
	"github.com/rsydfhmy03/SEA-Catering/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

type RoleResponse struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.RegisterRequest true "Registration payload"
// @Success      201 {object} api.Envelope{data=user.AuthResponse}
// @Failure      400 {object} api.Envelope
// @Failure      500 {object} api.Envelope
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !api.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, "User registered successfully.", resp)
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.LoginRequest true "Credentials"
// @Success      200 {object} api.Envelope{data=user.AuthResponse}
// @Failure      400 {object} api.Envelope
// @Failure      401 {object} api.Envelope
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Login successful.", resp)
}

// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.RefreshRequest true "Refresh token"
// @Success      200 {object} api.Envelope{data=user.AuthResponse}
// @Failure      401 {object} api.Envelope
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !api.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Token refreshed successfully.", resp)
}

// Tokens are stateless, so logout only confirms the caller was authenticated.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Envelope
// @Failure      401 {object} api.Envelope
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if _, ok := auth.GetPrincipal(c); !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	api.OK(c, "Logout successful.", nil)
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Envelope{data=user.User}
// @Failure      401 {object} api.Envelope
// @Failure      404 {object} api.Envelope
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := auth.GetUserUUID(c)
	if !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "User retrieved successfully.", user)
}

// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role   query string false "user or admin"
// @Param        limit  query int    false "Page size"
// @Param        offset query int    false "Offset"
// @Success      200 {object} api.Envelope{data=[]user.User}
// @Failure      400 {object} api.Envelope
// @Failure      403 {object} api.Envelope
// @Router       /admin/users [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if !api.BindQuery(c, &q) {
		return
	}

	users, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Users retrieved successfully.", users)
}

// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                 true "User ID"
// @Param        request body user.UpdateRoleRequest true "New role"
// @Success      200 {object} api.Envelope{data=user.RoleResponse}
// @Failure      400 {object} api.Envelope
// @Failure      404 {object} api.Envelope
// @Router       /admin/users/{id}/role [put]
func (h *Handler) UpdateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, apperr.New(apperr.KindNotFound, "User not found."))
		return
	}

	var req UpdateRoleRequest
	if !api.BindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "User role updated successfully.", RoleResponse{ID: user.ID, Role: user.Role})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadflow_backend/internal/auth/repository"
	"leadflow_backend/internal/auth/service"
	"leadflow_backend/internal/auth/transport"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) SignUp(c *gin.Context) {
	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	pair, err := h.svc.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, toTokenPairResponse(pair))
}

func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	pair, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toTokenPairResponse(pair))
}

func (h *Handler) Refresh(c *gin.Context) {
	var req transport.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toTokenPairResponse(pair))
}

func (h *Handler) SignOut(c *gin.Context) {
	var req transport.SignOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.SignOut(c.Request.Context(), req.RefreshToken); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		httpkit.Error(c, http.StatusUnauthorized, "invalid token subject", nil)
		return
	}

	var req transport.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		httpkit.Error(c, http.StatusUnauthorized, "invalid token subject", nil)
		return
	}

	user, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToUserResponse(user))
}

// ToUserResponse maps a stored account to its public view.
func ToUserResponse(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTokenPairResponse(pair service.TokenPair) transport.TokenPairResponse {
	return transport.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         ToUserResponse(pair.User),
	}
}

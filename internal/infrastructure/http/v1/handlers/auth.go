package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/apperror"
	appctx "bahikhata/internal/core/context"
	"bahikhata/internal/domain/auth"
	"bahikhata/internal/domain/company"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	*BaseHandler
	authService    *auth.Service
	companyService *company.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, authService *auth.Service, companyService *company.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler:    base,
		authService:    authService,
		companyService: companyService,
	}
}

// Signup handles POST /auth/signup - provisions a company with its
// owner user and the seed chart of accounts.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	companyID, err := h.companyService.CreateCompanyAccount(c.Request.Context(), company.SignupInput{
		CompanyName: req.CompanyName,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{CompanyID: companyID.String()})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        dto.FromUser(user),
	})
}

// Me handles GET /auth/me - returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userCtx := appctx.GetUser(c.Request.Context())
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userCtx.UserID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

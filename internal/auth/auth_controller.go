package auth

import (
	"errors"
	"net/http"

	"github.com/DhavalSuthar-24/scorebook/internal/middleware"
	responses "github.com/DhavalSuthar-24/scorebook/pkg/matchresponse"
	"github.com/DhavalSuthar-24/scorebook/pkg/token"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	repo          AuthRepository
	jwtSecret     string
	expiryMinutes int
	logger        *zap.Logger
}

func NewAuthController(repo AuthRepository, jwtSecret string, expiryMinutes int, logger *zap.Logger) *AuthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthController{
		repo:          repo,
		jwtSecret:     jwtSecret,
		expiryMinutes: expiryMinutes,
		logger:        logger,
	}
}

// @Summary      Log in
// @Description  Exchange a username and password for an access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Credentials"
// @Success      200   {object} matchresponse.SuccessBody{data=AuthResponse}
// @Failure      400   {object} matchresponse.ErrorBody
// @Failure      401   {object} matchresponse.ErrorBody
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	u, err := Authenticate(c.Request.Context(), ac.repo, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			responses.ErrorResponse(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		ac.logger.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		responses.ErrorResponse(c, http.StatusInternalServerError, "Login failed")
		return
	}

	accessToken, err := token.GenerateJWT(u.ID, u.Role, ac.jwtSecret, ac.expiryMinutes)
	if err != nil {
		ac.logger.Error("token generation failed", zap.Uint("user_id", u.ID), zap.Error(err))
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	ac.logger.Info("user logged in", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	responses.SuccessResponse(c, http.StatusOK, "Login successful", AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   ac.expiryMinutes * 60,
		User:        *u,
	})
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200   {object} matchresponse.SuccessBody{data=User}
// @Failure      401   {object} matchresponse.ErrorBody
// @Security     ApiKeyAuth
// @Router       /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := ac.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if u == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "User not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "", u)
}

// @Summary      Create a user
// @Description  Admins create scorer and viewer accounts.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  CreateUserRequest  true  "Account"
// @Success      201   {object} matchresponse.SuccessBody{data=User}
// @Failure      400   {object} matchresponse.ErrorBody
// @Failure      409   {object} matchresponse.ErrorBody
// @Security     ApiKeyAuth
// @Router       /auth/users [post]
func (ac *AuthController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	u, err := CreateAccount(c.Request.Context(), ac.repo, req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, ErrUsernameTaken):
		responses.ErrorResponse(c, http.StatusConflict, "User with this username already exists")
		return
	case errors.Is(err, ErrInvalidRole):
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		ac.logger.Error("create user failed", zap.String("username", req.Username), zap.Error(err))
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	ac.logger.Info("user created", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	responses.SuccessResponse(c, http.StatusCreated, "User created successfully", u)
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// AuthHandler handles registration, login, and the current user's profile.
type AuthHandler struct {
	userService  services.UserServicer
	tokenService services.TokenServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, tokenService services.TokenServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		auditService: auditService,
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username       string           `json:"username" binding:"required,min=3,max=150"`
	Email          string           `json:"email" binding:"required,email,max=255"`
	Password       string           `json:"password" binding:"required,min=8,max=128,password"`
	FirstName      string           `json:"first_name" binding:"max=100"`
	LastName       string           `json:"last_name" binding:"max=100"`
	DOB            *time.Time       `json:"dob"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a partial update of the caller's profile
type UpdateProfileRequest struct {
	Username       *string          `json:"username" binding:"omitempty,min=3,max=150"`
	Email          *string          `json:"email" binding:"omitempty,email,max=255"`
	Password       *string          `json:"password" binding:"omitempty,min=8,max=128,password"`
	FirstName      *string          `json:"first_name" binding:"omitempty,max=100"`
	LastName       *string          `json:"last_name" binding:"omitempty,max=100"`
	DOB            *time.Time       `json:"dob"`
	AvatarURL      *string          `json:"avatar_url" binding:"omitempty,url,max=500"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DOB            *time.Time `json:"dob,omitempty"`
	AvatarURL      string     `json:"avatar_url,omitempty"`
	InitialBalance string     `json:"initial_balance"`
	TotalBalance   string     `json:"total_balance,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// userJSON builds the serialized form of a user, without sensitive fields.
// Balances are rendered with two decimal places.
func userJSON(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		DOB:            user.DOB,
		AvatarURL:      user.AvatarURL,
		InitialBalance: user.InitialBalance.StringFixed(2),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with username, email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username or email already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != nil {
		initialBalance = *req.InitialBalance
	}

	user, err := h.userService.CreateUser(req.Username, req.Email, req.Password, req.FirstName, req.LastName, req.DOB, initialBalance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.tokenService.IssueToken(user.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "register", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userJSON(user),
	})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get an opaque token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if !h.userService.VerifyPassword(user, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := h.tokenService.IssueToken(user.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "login", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userJSON(user),
	})
}

// Logout revokes the presented token
// @Summary     Logout user
// @Description Revoke the opaque token used for this request
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Success     200 {object} MessageResponse "Token revoked"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.tokenService.RevokeToken(parts[1]); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "logout", "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetProfile returns the authenticated user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile, including the computed total balance
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/user [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totalBalance, err := h.userService.GetTotalBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	body := userJSON(user)
	body.TotalBalance = totalBalance.StringFixed(2)
	c.JSON(http.StatusOK, gin.H{"user": body})
}

// UpdateProfile applies a partial update to the authenticated user's profile
// @Summary     Update user profile
// @Description Update the authenticated user's profile fields
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Param       request body UpdateProfileRequest true "Profile fields to update"
// @Success     200 {object} UserResponse "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Username or email already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/user [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UserUpdate{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DOB:            req.DOB,
		AvatarURL:      req.AvatarURL,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// UserHandler handles user-by-id requests. All operations are restricted to
// the caller's own record; any other id is reported as not found so that
// account ids cannot be probed.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{
		userService:  userService,
		auditService: auditService,
	}
}

// resolveOwnID parses the path id and verifies it refers to the caller.
func resolveOwnID(c *gin.Context) (string, error) {
	userID, err := getUserID(c)
	if err != nil {
		return "", err
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		return "", err
	}
	if id != userID {
		return "", apperrors.ErrUserNotFound
	}
	return userID, nil
}

// GetUser returns a user by id
// @Summary     Get user by ID
// @Description Get a user's profile by id; only the caller's own id is visible
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Param       id path string true "User ID"
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := resolveOwnID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// UpdateUser updates a user by id
// @Summary     Update user by ID
// @Description Update a user's profile by id; only the caller's own id is writable
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Param       id path string true "User ID"
// @Param       request body UpdateProfileRequest true "Profile fields to update"
// @Success     200 {object} UserResponse "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "Username or email already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := resolveOwnID(c)
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

// DeleteUser deletes a user by id, cascading to everything they own
// @Summary     Delete user by ID
// @Description Delete a user account and all owned categories, transactions, and goals
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    TokenAuth
// @Param       id path string true "User ID"
// @Success     200 {object} MessageResponse "User deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := resolveOwnID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

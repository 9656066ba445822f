package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundit/internal/errors"
	"fundit/internal/logger"
	"fundit/internal/middleware"
	"fundit/internal/models"
	"fundit/internal/services"
)

// AuthHandler handles authentication and account-related requests
type AuthHandler struct {
	userService  services.UserServicer
	guestService services.GuestServicer
	auditService services.AuditServicer
	now          func() time.Time
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, guestService services.GuestServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, guestService: guestService, auditService: auditService, now: time.Now}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SettingsRequest represents the settings update payload. Omitted fields are unchanged.
type SettingsRequest struct {
	FirstName *string      `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string      `json:"last_name" binding:"omitempty,max=100"`
	Email     *string      `json:"email" binding:"omitempty,email,max=255"`
	Sex       *string      `json:"sex" binding:"omitempty,sex"`
	DOB       *models.Date `json:"dob"`
	Currency  *string      `json:"currency" binding:"omitempty,supported_currency"`
}

// ChangePasswordRequest represents the change-password payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=128"`
}

// DeleteAccountRequest represents the account deletion payload.
type DeleteAccountRequest struct {
	Confirm     bool   `json:"confirm"`
	Reason      string `json:"reason" binding:"max=100"`
	OtherReason string `json:"other_reason" binding:"max=500"`
	Rating      int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID        string       `json:"id"`
	UserCode  string       `json:"user_code"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Sex       *models.Sex  `json:"sex"`
	DOB       *models.Date `json:"dob"`
	Currency  *string      `json:"currency"`
	IsGuest   bool         `json:"is_guest"`
}

// AuthResponse represents the authentication response with tokens
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		UserCode:  user.UserCode,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Sex:       user.Sex,
		DOB:       user.DOB,
		Currency:  user.Currency,
		IsGuest:   user.IsGuest,
	}
}

// issueTokens creates an access/refresh pair and stores the refresh hash.
func (h *AuthHandler) issueTokens(user *models.User) (*AuthResponse, error) {
	access, err := middleware.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	refresh, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := h.userService.StoreRefreshTokenHash(user.ID, middleware.HashToken(refresh)); err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: access, RefreshToken: refresh, User: toUserResponse(user)}, nil
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, models.AuditRegister, "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, resp)
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get tokens
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     423 {object} ErrorResponse "Account locked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary     Refresh tokens
// @Description Exchange a valid refresh token for a new access/refresh token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} AuthResponse "New tokens"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid or revoked token"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	stored, err := h.userService.GetRefreshTokenHash(claims.UserID)
	if err != nil || stored == "" || stored != middleware.HashToken(req.RefreshToken) {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	resp, err := h.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GuestLogin creates a guest account seeded with demo data
// @Summary     Guest login
// @Description Create a temporary guest account populated with demo data
// @Tags        auth
// @Produce     json
// @Success     201 {object} AuthResponse "Guest created and tokens generated"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/guest [post]
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	user, err := h.userService.CreateGuestUser()
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.guestService.SeedDemoData(user.ID, h.now().Year()); err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Logout revokes the refresh token. Guest accounts are deleted.
// @Summary     Logout
// @Description Revoke the current refresh token; guest accounts are removed
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
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

	if user.IsGuest {
		err = h.userService.DeleteUser(userID)
	} else {
		err = h.userService.StoreRefreshTokenHash(userID, "")
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile information
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
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

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// UpdateSettings changes the user's profile settings
// @Summary     Update settings
// @Description Update name, email, sex, date of birth or currency
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SettingsRequest true "Settings"
// @Success     200 {object} UserResponse "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Router      /settings [put]
func (h *AuthHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	settings := services.UserSettings{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		DOB:       req.DOB,
		Currency:  req.Currency,
	}
	if req.Sex != nil {
		sex := models.Sex(*req.Sex)
		settings.Sex = &sex
	}

	user, err := h.userService.UpdateSettings(userID, settings)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdateSettings, "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// ChangePassword replaces the user's password
// @Summary     Change password
// @Description Change the password after verifying the current one
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangePasswordRequest true "Passwords"
// @Success     200 {object} map[string]string "Password changed"
// @Failure     400 {object} ErrorResponse "Incorrect current password or invalid new password"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditChangePassword, "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DeleteAccount removes the user's account and all their data
// @Summary     Delete account
// @Description Permanently delete the account; feedback is logged
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DeleteAccountRequest true "Confirmation and feedback"
// @Success     200 {object} map[string]string "Account deleted"
// @Failure     400 {object} ErrorResponse "Not confirmed or invalid feedback"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /delete-account [post]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	if !req.Confirm {
		respondWithError(c, apperrors.ErrDeletionNotConfirmed)
		return
	}
	if req.Reason == "Other" && req.OtherReason == "" {
		respondWithError(c, apperrors.Validation(map[string]string{
			"other_reason": `Please describe your reason when selecting "Other".`,
		}))
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		respondWithError(c, err)
		return
	}

	logger.Get().Infow("account deleted",
		"user_id", userID,
		"reason", req.Reason,
		"other_reason", req.OtherReason,
		"rating", req.Rating,
	)

	c.JSON(http.StatusOK, gin.H{"message": "Your account has been deleted"})
}

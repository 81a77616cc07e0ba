package api

import (
	"net/http"

	"github.com/san98215/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// cookieSettings controls the session cookie written on register and login.
type cookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	cookie      cookieSettings
	responder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, cookie cookieSettings, resp responder) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, responder: resp}
}

// --- Request Structs ---

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user
// @Description Creates an account and starts a session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} gin.H "User registered successfully"
// @Failure 400 {object} gin.H "Invalid input or duplicate account"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "Internal server error")
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and starts a session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} gin.H "User logged in successfully"
// @Failure 400 {object} gin.H "Missing fields"
// @Failure 401 {object} gin.H "Invalid credentials"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "Internal server error")
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged in successfully",
		"user":    user,
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the current session and clears the cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} gin.H "User logged out successfully"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(contextTokenKey)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.fail(c, err, "Internal server error")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged out successfully",
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, token, int(h.authService.SessionTTL().Seconds()), "/", "", h.cookie.Secure, true)
}

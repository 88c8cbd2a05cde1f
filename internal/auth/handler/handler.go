package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blazebomb/vidai/internal/auth"
	"github.com/blazebomb/vidai/internal/auth/provider"
	"github.com/blazebomb/vidai/internal/logger"
	"github.com/blazebomb/vidai/internal/register"
	"github.com/blazebomb/vidai/internal/session"
)

type Handler struct {
	providers    *provider.Registry
	authority    *auth.Authority
	registration *register.Service
	errorPath    string
}

func NewHandler(
	registry *provider.Registry,
	authority *auth.Authority,
	registration *register.Service,
	errorPath string,
) *Handler {
	return &Handler{
		providers:    registry,
		authority:    authority,
		registration: registration,
		errorPath:    errorPath,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	// Provider-side error: the user denied or the flow broke. Send
	// them back to a fresh sign-in rather than failing the request.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, h.errorPath)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	identity, err := p.ExchangeCode(
		c.Request.Context(),
		code,
		codeVerifier,
	)
	if err != nil {
		logger.Warn("oauth code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	principal, err := h.authority.LoginFederated(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to resolve user",
		})
		return
	}

	if !h.issueSession(c, principal) {
		return
	}

	logger.Info("federated login", map[string]any{
		"provider": providerName,
		"user_id":  principal.UserID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "authenticated",
	})
}

func (h *Handler) Logout(c *gin.Context) {
	// Tokens are stateless; logout just drops the cookie.
	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}

// issueSession signs a token for the principal and sets the session
// cookie. On failure it writes the error response and returns false.
func (h *Handler) issueSession(c *gin.Context, principal auth.Principal) bool {
	token, err := h.authority.IssueSession(principal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create session",
		})
		return false
	}

	session.SetCookie(
		c.Writer,
		token,
		time.Now().Add(session.DefaultTTL),
		session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	)

	return true
}

// isCredentialError reports whether err is a credential failure whose
// sub-reason must stay out of the response.
func isCredentialError(err error) (*auth.CredentialError, bool) {
	var credErr *auth.CredentialError
	if errors.As(err, &credErr) {
		return credErr, true
	}
	return nil, false
}

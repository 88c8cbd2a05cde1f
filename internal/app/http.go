package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/blazebomb/vidai/internal/auth"
	"github.com/blazebomb/vidai/internal/auth/credentials"
	"github.com/blazebomb/vidai/internal/auth/handler"
	"github.com/blazebomb/vidai/internal/auth/provider"
	"github.com/blazebomb/vidai/internal/auth/provider/github"
	"github.com/blazebomb/vidai/internal/auth/provider/google"
	"github.com/blazebomb/vidai/internal/auth/resolver"
	"github.com/blazebomb/vidai/internal/config"
	"github.com/blazebomb/vidai/internal/middleware"
	"github.com/blazebomb/vidai/internal/register"
	"github.com/blazebomb/vidai/internal/session"
	"github.com/blazebomb/vidai/internal/videos"

	goredis "github.com/redis/go-redis/v9"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	credentialStore := credentials.NewStore(infra.DBCache)
	identityResolver := resolver.NewStoreResolver(credentialStore)
	issuer := session.NewIssuer([]byte(cfg.SessionSecret), session.DefaultTTL)

	authority := auth.NewAuthority(credentialStore, identityResolver, issuer)
	registration := register.NewService(credentialStore)

	var providerList []provider.OAuthProvider

	if cfg.GithubClientID != "" {
		githubProvider, err := github.New(
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			cfg.GithubRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providerList = append(providerList, githubProvider)
	}

	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providerList = append(providerList, googleProvider)
	}

	registry := provider.NewRegistry(providerList...)

	authHandler := handler.NewHandler(
		registry,
		authority,
		registration,
		cfg.ErrorPath,
	)

	var redisClient *goredis.Client
	if infra.Redis != nil {
		redisClient = infra.Redis.Client
	}

	videoStore := videos.NewStore(infra.DBCache)
	videoCache := videos.NewListCache(videoStore, redisClient)
	videoHandler := videos.NewHandler(videoCache)

	authMiddleware := middleware.NewAuthMiddleware(authority)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Sign-in descriptor: tells clients which login methods exist.
	providerNames := make([]string, 0, len(providerList))
	for _, p := range providerList {
		providerNames = append(providerNames, p.Name())
	}

	router.GET(cfg.SignInPath, func(c *gin.Context) {
		c.JSON(200, gin.H{
			"credential_login": "/api/auth/login",
			"providers":        providerNames,
		})
	})

	router.GET("/api/videos", videoHandler.List)

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.POST("/videos", videoHandler.Create)

	api.GET("/me", func(c *gin.Context) {
		view, ok := middleware.SessionFromContext(c.Request.Context())
		if !ok {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(200, gin.H{
			"user": gin.H{
				"id":    view.User.ID,
				"email": view.User.Email,
			},
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.Close, nil
}

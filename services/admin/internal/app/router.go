package internal

import (
	"time"

	"asme-site/pkg/config"
	"asme-site/pkg/drafts"
	"asme-site/pkg/jwt"
	"asme-site/pkg/logger"
	"asme-site/pkg/middleware"
	adminHTTP "asme-site/services/admin/internal/controller/http"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services are the use cases the router exposes.
type Services struct {
	Posts        usecase.CollectionUseCase[*entity.BlogPost, entity.BlogPostPatch]
	LegalPosts   usecase.CollectionUseCase[*entity.LegalBlogPost, entity.LegalBlogPostPatch]
	Clients      usecase.CollectionUseCase[*entity.Client, entity.ClientPatch]
	Casos        usecase.CollectionUseCase[*entity.Caso, entity.CasoPatch]
	Appointments usecase.CollectionUseCase[*entity.Appointment, entity.AppointmentPatch]
	Auth         usecase.AuthUseCase
	Drafts       drafts.Store
}

// NewRouter builds the HTTP API. Rate limiting is skipped when redisClient is
// nil.
func NewRouter(cfg *config.Config, log *logger.Logger, jwtService *jwt.Service, redisClient *redis.Client, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := adminHTTP.NewAuthHandler(svc.Auth, log)
	siteHandler := adminHTTP.NewSiteHandler(svc.Posts, svc.LegalPosts, svc.Appointments, log)
	draftHandler := adminHTTP.NewDraftHandler(svc.Drafts, cfg.DraftAutosaveInterval, cfg.DraftTTL, log)

	api := r.Group("/api/v1")
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute))
	}
	{
		api.POST("/auth/login", authHandler.Login)

		siteHandler.Register(api.Group("/site"))

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		{
			admin.GET("/me", authHandler.Me)

			adminHTTP.NewCollectionHandler(svc.Posts, adminHTTP.NewBlogPostDecoder(svc.Posts), log).
				Register(admin.Group("/posts"))
			adminHTTP.NewCollectionHandler(svc.LegalPosts, adminHTTP.NewLegalBlogPostDecoder(svc.LegalPosts), log).
				Register(admin.Group("/legal-posts"))
			adminHTTP.NewCollectionHandler(svc.Clients, adminHTTP.NewClientDecoder(), log).
				Register(admin.Group("/clients"))
			adminHTTP.NewCollectionHandler(svc.Casos, adminHTTP.NewCasoDecoder(), log).
				Register(admin.Group("/casos"))
			adminHTTP.NewCollectionHandler(svc.Appointments, adminHTTP.NewAppointmentDecoder(), log).
				Register(admin.Group("/appointments"))

			draftHandler.Register(admin.Group("/drafts"))
		}
	}

	return r
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("[HTTP] %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

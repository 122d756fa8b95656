package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asme-site/pkg/cache"
	"asme-site/pkg/config"
	"asme-site/pkg/database"
	"asme-site/pkg/drafts"
	"asme-site/pkg/jwt"
	"asme-site/pkg/listing"
	"asme-site/pkg/logger"
	"asme-site/pkg/queue"
	"asme-site/pkg/s3"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/repo/persistent"
	"asme-site/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "asme-site/services/admin/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithOptions(cfg.LogLevel, cfg.LogPretty)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (selections and drafts fall back to memory)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg, cfg.S3BlogBucket, cfg.S3LegalBlogBucket)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without orphan cleanup queue)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret).WithTTL(cfg.JWTTTL),
		queueClient: queueClient,
	}, nil
}

// Services wires repositories and use cases for every collection.
func (a *App) Services() Services {
	var selections listing.SelectionStore = listing.NewMemorySelectionStore()
	var draftStore drafts.Store = drafts.NewMemoryStore()
	if a.redisClient != nil {
		selections = listing.NewRedisSelectionStore(a.redisClient, a.cfg.SelectionTTL)
		draftStore = drafts.NewRedisStore(a.redisClient, a.cfg.DraftTTL)
	}

	orphans := func(collection string) listing.OrphanReporter {
		if a.queueClient == nil {
			return nil
		}
		return usecase.NewQueueOrphanReporter(a.queueClient, collection)
	}

	collection := func(name, bucket string) usecase.CollectionConfig {
		return usecase.CollectionConfig{
			Name:               name,
			PageSize:           a.cfg.ListPageSize,
			Bucket:             bucket,
			CleanupConcurrency: a.cfg.MediaCleanupConcurrency,
		}
	}

	return Services{
		Posts: usecase.NewCollectionUseCase[*entity.BlogPost, entity.BlogPostPatch](
			collection("posts", a.cfg.S3BlogBucket),
			persistent.NewBlogPostRepository(a.db),
			selections, a.s3Client, orphans("posts"), a.log,
		),
		LegalPosts: usecase.NewCollectionUseCase[*entity.LegalBlogPost, entity.LegalBlogPostPatch](
			collection("legal_posts", a.cfg.S3LegalBlogBucket),
			persistent.NewLegalBlogPostRepository(a.db),
			selections, a.s3Client, orphans("legal_posts"), a.log,
		),
		Clients: usecase.NewCollectionUseCase[*entity.Client, entity.ClientPatch](
			collection("clients", ""),
			persistent.NewClientRepository(a.db),
			selections, nil, nil, a.log,
		),
		Casos: usecase.NewCollectionUseCase[*entity.Caso, entity.CasoPatch](
			collection("casos", ""),
			persistent.NewCasoRepository(a.db),
			selections, nil, nil, a.log,
		),
		Appointments: usecase.NewCollectionUseCase[*entity.Appointment, entity.AppointmentPatch](
			collection("appointments", ""),
			persistent.NewAppointmentRepository(a.db),
			selections, nil, nil, a.log,
		),
		Auth:   usecase.NewAuthUseCase(persistent.NewStaffUserRepository(a.db), a.jwtService, a.log),
		Drafts: draftStore,
	}
}

func (a *App) Logger() *logger.Logger { return a.log }

func (a *App) Run() error {
	gin.SetMode(gin.ReleaseMode)
	if a.cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	}

	r := NewRouter(a.cfg, a.log, a.jwtService, a.redisClient, a.Services())

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Admin service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down admin service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Admin service exited")
	_ = a.log.Sync()
	return nil
}

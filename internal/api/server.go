package api

import (
	"context"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gea-verde/gea-api/docs"
	v1 "github.com/gea-verde/gea-api/internal/api/handler/v1"
	"github.com/gea-verde/gea-api/internal/api/middleware"
	"github.com/gea-verde/gea-api/internal/config"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
	"github.com/gea-verde/gea-api/internal/repository/dao"
	"github.com/gea-verde/gea-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	table greencoins.Table
	redis *redis.Client
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client, uploader service.ImageUploader) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		redis:  redisClient,
	}

	// Seed and load the level progression once at startup; services get
	// an immutable copy. Level edits apply on the next start.
	gamificationSvc := s.initGamificationService(db)
	if err := gamificationSvc.Seed(context.Background()); err != nil {
		zap.L().Warn("failed to seed gamification levels", zap.Error(err))
	}
	s.table = gamificationSvc.LoadTable(context.Background())

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	recordHandler := s.initRecordHandler(db)
	productHandler := s.initProductHandler(db, uploader)
	comercioHandler := s.initComercioHandler(db, uploader)
	redemptionHandler := s.initRedemptionHandler(db)
	gamificationHandler := s.initGamificationHandler(db, gamificationSvc)
	chatHandler := s.initChatHandler(db)
	integrationHandler := s.initIntegrationHandler(db, uploader)
	s.MountHandlers(
		authHandler,
		userHandler,
		recordHandler,
		productHandler,
		comercioHandler,
		redemptionHandler,
		gamificationHandler,
		chatHandler,
		integrationHandler,
	)

	return s
}

func (s *Server) initGamificationService(db *gorm.DB) *service.GamificationService {
	gamificationDAO := dao.NewGamificationDAO(db)
	repo := repository.NewGamificationRepository(gamificationDAO)

	return service.NewGamificationService(repo)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo, s.table)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo, s.table)

	return v1.NewUserHandler(svc)
}

func (s *Server) initRecordService(db *gorm.DB) *service.RecordService {
	recordRepo := repository.NewRecordRepository(dao.NewRecordDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	redemptionRepo := repository.NewRedemptionRepository(dao.NewRedemptionDAO(db))
	comercioRepo := repository.NewComercioRepository(dao.NewComercioDAO(db))

	return service.NewRecordService(recordRepo, userRepo, redemptionRepo, comercioRepo, s.table)
}

func (s *Server) initRecordHandler(db *gorm.DB) *v1.RecordHandler {
	return v1.NewRecordHandler(s.initRecordService(db))
}

func (s *Server) initProductHandler(db *gorm.DB, uploader service.ImageUploader) *v1.ProductHandler {
	repo := repository.NewProductRepository(dao.NewProductDAO(db))
	svc := service.NewProductService(repo, uploader)

	return v1.NewProductHandler(svc)
}

func (s *Server) initComercioHandler(db *gorm.DB, uploader service.ImageUploader) *v1.ComercioHandler {
	repo := repository.NewComercioRepository(dao.NewComercioDAO(db))
	svc := service.NewComercioService(repo, uploader)

	return v1.NewComercioHandler(svc)
}

func (s *Server) initRedemptionHandler(db *gorm.DB) *v1.RedemptionHandler {
	redemptionRepo := repository.NewRedemptionRepository(dao.NewRedemptionDAO(db))
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewRedemptionService(redemptionRepo, productRepo, userRepo, s.table)

	return v1.NewRedemptionHandler(svc)
}

func (s *Server) initGamificationHandler(db *gorm.DB, svc *service.GamificationService) *v1.GamificationHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	userSvc := service.NewUserService(userRepo, s.table)

	return v1.NewGamificationHandler(svc, userSvc, s.table)
}

func (s *Server) initChatHandler(db *gorm.DB) *v1.ChatHandler {
	comercioRepo := repository.NewComercioRepository(dao.NewComercioDAO(db))
	recordRepo := repository.NewRecordRepository(dao.NewRecordDAO(db))
	svc := service.NewChatService(s.Config.Gemini, comercioRepo, recordRepo)

	return v1.NewChatHandler(svc)
}

func (s *Server) initIntegrationHandler(db *gorm.DB, uploader service.ImageUploader) *v1.IntegrationHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	userSvc := service.NewUserService(userRepo, s.table)
	comercioRepo := repository.NewComercioRepository(dao.NewComercioDAO(db))
	comercioSvc := service.NewComercioService(comercioRepo, uploader)

	return v1.NewIntegrationHandler(userSvc, comercioSvc, s.initRecordService(db))
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) rateLimit(limit int, window time.Duration) gin.HandlerFunc {
	if s.redis == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	return middleware.RateLimit(s.redis, limit, window)
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	recordHandler *v1.RecordHandler,
	productHandler *v1.ProductHandler,
	comercioHandler *v1.ComercioHandler,
	redemptionHandler *v1.RedemptionHandler,
	gamificationHandler *v1.GamificationHandler,
	chatHandler *v1.ChatHandler,
	integrationHandler *v1.IntegrationHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", s.rateLimit(10, time.Minute), authHandler.HandleSignup)
		auth.POST("/auth/login", s.rateLimit(20, time.Minute), authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users", userHandler.HandleListUsers)
		authed.POST("/users", userHandler.HandleCreateUser)
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PATCH("/users/:userID/status", userHandler.HandleUpdateUserStatus)
		authed.GET("/users/:userID/client", userHandler.HandleGetClient)
		authed.GET("/users/:userID/records", recordHandler.HandleListUserRecords)
		authed.GET("/users/:userID/redemptions", redemptionHandler.HandleListUserRedemptions)
		authed.GET("/clients", userHandler.HandleListClients)

		authed.POST("/records", recordHandler.HandleCreateRecord)
		authed.GET("/records", recordHandler.HandleListRecords)
		authed.GET("/records/:recordID", recordHandler.HandleGetRecord)
		authed.PUT("/records/:recordID", recordHandler.HandleUpdateRecord)
		authed.PATCH("/records/:recordID/status", recordHandler.HandleUpdateRecordStatus)
		authed.DELETE("/records/:recordID", recordHandler.HandleDeleteRecord)

		authed.GET("/products", productHandler.HandleListProducts)
		authed.GET("/products/:productID", productHandler.HandleGetProduct)
		authed.POST("/products", productHandler.HandleCreateProduct)
		authed.PUT("/products/:productID", productHandler.HandleUpdateProduct)
		authed.DELETE("/products/:productID", productHandler.HandleDeleteProduct)
		authed.POST("/products/:productID/image", productHandler.HandleUploadProductImage)
		authed.POST("/products/:productID/redeem", s.rateLimit(30, time.Minute), redemptionHandler.HandleRedeemProduct)
		authed.GET("/redemptions", redemptionHandler.HandleListRedemptions)

		authed.GET("/comercios", comercioHandler.HandleListComercios)
		authed.GET("/comercios/:comercioID", comercioHandler.HandleGetComercio)
		authed.POST("/comercios", comercioHandler.HandleCreateComercio)
		authed.PUT("/comercios/:comercioID", comercioHandler.HandleUpdateComercio)
		authed.DELETE("/comercios/:comercioID", comercioHandler.HandleDeleteComercio)
		authed.POST("/comercios/:comercioID/image", comercioHandler.HandleUploadComercioImage)

		authed.GET("/gamification/me", gamificationHandler.HandleGetMyGamification)
		authed.GET("/gamification/levels", gamificationHandler.HandleListLevels)
		authed.POST("/gamification/levels", gamificationHandler.HandleCreateLevel)
		authed.PUT("/gamification/levels/:level", gamificationHandler.HandleUpdateLevel)
		authed.DELETE("/gamification/levels/:level", gamificationHandler.HandleDeleteLevel)

		authed.POST("/chat", s.rateLimit(20, time.Minute), chatHandler.HandleChat)
	}

	integration := s.Router.Group(basePath+"/integration",
		middleware.RequireAPIKey(s.Config.Integration.APIKey),
		s.rateLimit(120, time.Minute),
	)
	{
		integration.GET("/clients/lookup", integrationHandler.HandleLookupClient)
		integration.GET("/comercios", integrationHandler.HandleListIntegrationComercios)
		integration.GET("/comercios/:cuit", integrationHandler.HandleGetComercioByCUIT)
		integration.GET("/records", integrationHandler.HandleListIntegrationRecords)
		integration.POST("/records", integrationHandler.HandleCreateIntegrationRecord)
		integration.PUT("/records/:recordID", integrationHandler.HandleUpdateIntegrationRecord)
		integration.DELETE("/records/:recordID", integrationHandler.HandleDeleteIntegrationRecord)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "GEA API"
	docs.SwaggerInfo.Description = "API for the GEA green coins program."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

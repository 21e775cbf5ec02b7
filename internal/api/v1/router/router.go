package router

import (
	"context"
	"net/http"
	"strings"

	"babysimple/internal/api/v1/handler"
	"babysimple/internal/config"
	"babysimple/internal/middleware"
	"babysimple/internal/provider"
	"babysimple/internal/repository"
	"babysimple/internal/service"
	"babysimple/internal/usage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the full application: database pool, S3 archive, provider
// adapters, services, handlers, and middleware. The pool is nil when no
// DATABASE_URL is configured; the app then runs in session-local mode.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	// 1. Open DB pool when a connection string is configured.
	var pool *pgxpool.Pool
	if cfg.DBConnectionString != "" {
		var err error
		pool, err = openPool(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to open DB pool")
			return nil, nil, err
		}
		logger.Info().Msg("Database connection successful")
	} else {
		logger.Warn().Msg("DATABASE_URL not set, running without persistence")
	}

	// 2. Initialize the S3 archive client when a bucket is configured.
	var archiveSvc *service.ArchiveService
	if cfg.S3Bucket != "" {
		s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
			awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
		)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load S3 config")
			return nil, nil, err
		}
		s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		})
		archiveSvc = service.NewArchiveService(s3Client, cfg.S3Bucket, logger)
	}

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize provider adapters
	chatAdapter := provider.NewChatAdapter(cfg.ResolveChatProvider(), logger)
	geminiAdapter := provider.NewGeminiAdapter(logger)

	// 5. Initialize repositories & services & handlers
	var (
		profileRepo repository.ProfileRepository
		historyRepo repository.HistoryRepository
		usageRepo   repository.UsageRepository
		teamRepo    repository.TeamRepository
	)
	if pool != nil {
		profileRepo = repository.NewProfileRepo(pool)
		historyRepo = repository.NewHistoryRepo(pool)
		usageRepo = repository.NewUsageRepo(pool)
		teamRepo = repository.NewTeamRepo(pool)
	}

	counter := usage.NewCounter(usage.NewMemoryStore())
	historySvc := service.NewHistoryService(repository.NewMemoryHistory(), historyRepo, logger)

	simplifySvc := service.NewSimplifyService(
		chatAdapter, geminiAdapter,
		cfg.ChatCredential(), cfg.GeminiCredential(),
		counter, historySvc, usageRepo, logger,
	)
	chatSvc := service.NewChatService(geminiAdapter, chatAdapter, cfg.GeminiCredential(), cfg.ChatCredential(), logger)
	userSvc := service.NewUserService(profileRepo, historySvc, counter, usageRepo, logger)
	teamSvc := service.NewTeamService(teamRepo, profileRepo, logger)
	docSvc := service.NewDocumentService(archiveSvc, logger)

	simplifyHandler := handler.NewSimplifyHandler(simplifySvc, userSvc, counter, validate, logger)
	historyHandler := handler.NewHistoryHandler(historySvc, logger)
	userHandler := handler.NewUserHandler(userSvc, logger)
	teamHandler := handler.NewTeamHandler(teamSvc, userSvc, validate, logger)
	uploadHandler := handler.NewUploadHandler(docSvc, userSvc, logger)
	chatHandler := handler.NewChatHandler(chatSvc, userSvc, validate, logger)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalAuthMiddleware := middleware.OptionalAuthMiddleware(cfg.JWTSecret)

	// 7. Create ServeMux router
	mux := http.NewServeMux()

	apiV1Mux := http.NewServeMux()
	simplifyHandler.RegisterRoutes(apiV1Mux, optionalAuthMiddleware)
	historyHandler.RegisterRoutes(apiV1Mux, optionalAuthMiddleware)
	uploadHandler.RegisterRoutes(apiV1Mux, optionalAuthMiddleware)
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	teamHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	chatHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Redirect root-level requests to /v1/{path}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/v1"+r.URL.Path, http.StatusMovedPermanently)
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), pool, nil
}

// openPool opens a pgx pool with the environment-appropriate DSN tweaks:
// sslmode off for local development, simple protocol behind transaction
// poolers like pgbouncer elsewhere.
func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := cfg.DBConnectionString
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = 25
	if cfg.Environment != "development" {
		poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}

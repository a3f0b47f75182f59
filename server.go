package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/middlewares"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/models/reports"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const defaultPort = "8080"

var tracer = otel.Tracer("mahadgroup-erp")

// Define a struct to represent the rate limiter.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func getRedisClient(redisAddress string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddress,
	})
	return client
}

func errorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": gin.H{
						"code":    "INVALID_REQUEST",
						"message": "email and password are required",
						"fields":  utils.ProcessValidationErrors(verrs),
					},
				})
				return
			}
			errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required")
			return
		}

		info, err := models.Login(c.Request.Context(), &input, c.ClientIP(), c.Request.UserAgent())
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// callerScope reads the authenticated caller's role and scope out of the
// request context set by the auth middleware.
func callerScope(ctx context.Context) (models.UserRole, reports.Scope, error) {
	roleStr, ok := utils.GetRoleFromContext(ctx)
	if !ok {
		return "", reports.Scope{}, errors.New("no role in context")
	}
	role, err := models.ParseUserRole(roleStr)
	if err != nil {
		return "", reports.Scope{}, err
	}
	companyId, _ := utils.GetCompanyIdFromContext(ctx)
	branchId, _ := utils.GetBranchIdFromContext(ctx)
	return role, reports.Scope{CompanyId: companyId, BranchId: branchId}, nil
}

// parseAsOf reads the optional as_of query param in 2006-01-02 form,
// defaulting to today.
func parseAsOf(c *gin.Context) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("as_of"))
	if raw == "" {
		return time.Now().UTC(), nil
	}
	asOf, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return asOf, nil
}

func renderComputeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, reports.ErrUnknownRole):
		errorResponse(c, http.StatusBadRequest, "UNKNOWN_ROLE", "unknown role")
	case errors.Is(err, reports.ErrScopeMissing):
		errorResponse(c, http.StatusBadRequest, "SCOPE_MISSING", "no company assigned to user")
	case errors.Is(err, utils.ErrorRecordNotFound):
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", "company not found")
	default:
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		logger.WithFields(logrus.Fields{
			"field":          "dashboard",
			"correlation_id": cid,
		}).Error("dashboard computation failed: " + err.Error())
		errorResponse(c, http.StatusInternalServerError, "COMPUTATION_ERROR", "dashboard computation failed")
	}
}

func dashboardHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		role, scope, err := callerScope(ctx)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "UNKNOWN_ROLE", "unknown role")
			return
		}
		asOf, err := parseAsOf(c)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "as_of must be YYYY-MM-DD")
			return
		}

		ctx, span := tracer.Start(ctx, "dashboard."+role.Slug())
		dashboard, err := reports.ComputeDashboard(ctx, role, scope, asOf)
		span.End()
		if err != nil {
			renderComputeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}

// dashboardBySlugHandler serves a named dashboard. Callers only ever get
// their own role's view; asking for another role's slug is a 403, not a
// fallback to the caller's dashboard.
func dashboardBySlugHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		role, scope, err := callerScope(ctx)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "UNKNOWN_ROLE", "unknown role")
			return
		}

		requested, err := models.UserRoleFromSlug(c.Param("slug"))
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "UNKNOWN_ROLE", "unknown dashboard: "+c.Param("slug"))
			return
		}
		if requested != role {
			errorResponse(c, http.StatusForbidden, "UNAUTHORIZED", "dashboard not available for your role")
			return
		}

		asOf, err := parseAsOf(c)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "as_of must be YYYY-MM-DD")
			return
		}

		ctx, span := tracer.Start(ctx, "dashboard."+role.Slug())
		dashboard, err := reports.ComputeDashboard(ctx, role, scope, asOf)
		span.End()
		if err != nil {
			renderComputeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}

func dashboardExportHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		role, scope, err := callerScope(ctx)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "UNKNOWN_ROLE", "unknown role")
			return
		}
		asOf, err := parseAsOf(c)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "as_of must be YYYY-MM-DD")
			return
		}

		ctx, span := tracer.Start(ctx, "dashboard.export."+role.Slug())
		dashboard, err := reports.ComputeDashboard(ctx, role, scope, asOf)
		span.End()
		if err != nil {
			renderComputeError(c, logger, err)
			return
		}

		filename := fmt.Sprintf("dashboard-%s-%s.xlsx", role.Slug(), asOf.Format("2006-01-02"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := reports.ExportDashboardExcel(c.Writer, dashboard); err != nil {
			logger.WithFields(logrus.Fields{"field": "export"}).Error("excel export failed: " + err.Error())
		}
	}
}

func customNotFoundHandler(c *gin.Context) {
	errorResponse(c, http.StatusNotFound, "NOT_FOUND", "route not found")
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until DB/Redis are ready, app endpoints return 503.
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Optional rate limiting (recommended for production).
	// Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		client := getRedisClient(os.Getenv("REDIS_ADDRESS"))
		limit := int64(600)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		windowSec := int64(60)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				windowSec = n
			}
		}
		rateLimiter := NewRateLimiter(client, limit, time.Duration(windowSec)*time.Second)
		r.Use(rateLimiter.RateLimitMiddleware)
	}

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.POST("/api/auth/login", loginHandler())

	dash := r.Group("/api/dashboard", middlewares.AuthMiddleware())
	dash.GET("/", dashboardHandler(logger))
	dash.GET("/export", dashboardExportHandler(logger))
	dash.GET("/:slug", dashboardBySlugHandler(logger))

	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow disabling on startup
	// and running migrations as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateAll()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/")
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

// Initialize a new RateLimiter instance.
func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Middleware function to check rate limits.
func (rl *RateLimiter) RateLimitMiddleware(c *gin.Context) {
	key := c.ClientIP()

	exists, err := rl.client.Exists(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if exists == 0 {
		err := rl.client.Set(c.Request.Context(), key, 1, rl.window).Err()
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		c.Next()
		return
	}

	count, err := rl.client.Incr(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if count > rl.limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(rl.window.Seconds())),
		})
		return
	}

	c.Next()
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

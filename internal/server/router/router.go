package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/server/handlers"
	"github.com/anupkhare/finreport/internal/service/reports"
	"github.com/anupkhare/finreport/pkg/clients/googleauth"
)

// New wires the Gin engine with required routes and middlewares. verifier
// may be nil, which disables the API guard entirely.
func New(
	projectHandler *handlers.ProjectHandler,
	financialHandler *handlers.FinancialHandler,
	reportHandler *handlers.ReportHandler,
	verifier googleauth.Verifier,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api", authMiddleware(verifier, logger))

	api.GET("/projects", projectHandler.List)
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects/:id", projectHandler.Get)
	api.PUT("/projects/:id", projectHandler.Update)
	api.DELETE("/projects/:id", projectHandler.Delete)
	api.POST("/projects/:id/duplicate", projectHandler.Duplicate)

	api.GET("/projects/:id/logs", financialHandler.Logs)
	api.POST("/projects/:id/logs", financialHandler.AppendEntry)
	api.PATCH("/projects/:id/logs/:index", financialHandler.UpdateField)
	api.GET("/projects/:id/hike-config", financialHandler.HikeConfig)
	api.PUT("/projects/:id/hike-config", financialHandler.SetHikeConfig)

	api.GET("/projects/:id/reports/profit-loss", reportHandler.ProfitLoss)
	api.GET("/projects/:id/reports/balance-sheet", reportHandler.BalanceSheet)
	api.GET("/projects/:id/reports/mpbf", reportHandler.MPBF)
	api.GET("/projects/:id/reports/profit-loss/pdf", reportHandler.PDF(reports.TypeProfitLoss))
	api.GET("/projects/:id/reports/balance-sheet/pdf", reportHandler.PDF(reports.TypeBalanceSheet))
	api.POST("/projects/:id/reports/profit-loss/export", reportHandler.Export(reports.TypeProfitLoss))
	api.POST("/projects/:id/reports/balance-sheet/export", reportHandler.Export(reports.TypeBalanceSheet))

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// authMiddleware rejects requests without a verifiable Google ID token in
// the Authorization header. With no verifier configured every request is
// admitted.
func authMiddleware(verifier googleauth.Verifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		info, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Warn("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_email", info.Email)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

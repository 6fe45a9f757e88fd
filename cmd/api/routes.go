package main

import (
	"context"
	"net/http"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/api"

	"github.com/gin-gonic/gin"
)

func (app *app) routes() http.Handler {
	g := gin.Default()
	g.Use(corsMiddleware())

	g.GET("/health", healthHandler)

	g.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK. Company updates at /api/company-updates/:company\n")
	})

	timeout := app.config.Server.HandlerTimeout

	public := g.Group("/api")
	{
		public.GET("/companies", app.handlers.ListCompanies)
		public.GET("/company-updates/:company", withTimeout(timeout, app.handlers.CompanyUpdates))
		public.GET("/earnings-calendar", app.handlers.EarningsCalendar)
		public.GET("/sources", app.handlers.NewsSources)
	}

	// article and profile routes need both a database and clerk credentials
	if app.store != nil && app.config.Clerk.SecretKey != "" {
		private := g.Group("/api")
		private.Use(api.WithClerkSession(), api.RequireAuth(app.store))
		{
			private.GET("/me", app.getCurrentUser)
			private.GET("/articles", app.listArticles)
			private.POST("/articles", app.createArticle)
			private.GET("/articles/:id", app.getArticle)
			private.DELETE("/articles/:id", app.deleteArticle)
		}
	}

	return g
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func withTimeout(d time.Duration, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		fn(c)
	}
}

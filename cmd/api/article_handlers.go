package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/api"
	"github.com/RobertVMill/tech-news-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxArticleTitleLength = 200
	maxReferencesPerPost  = 20
)

func (app *app) getCurrentUser(c *gin.Context) {
	userID, ok := api.GetUserID(c)
	if !ok {
		api.AbortJSONError(c, http.StatusInternalServerError, "missing user context")
		return
	}

	profile, err := app.store.GetProfileByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.AbortJSONError(c, http.StatusNotFound, "profile not found")
			return
		}
		api.AbortJSONError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	articleCount, err := app.store.CountArticlesByUserID(c.Request.Context(), userID)
	if err != nil {
		api.AbortJSONError(c, http.StatusInternalServerError, "failed to count articles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             profile.ID,
		"email":          profile.Email,
		"created_at":     profile.CreatedAt.Format(time.RFC3339),
		"articles_count": articleCount,
	})
}

func (app *app) listArticles(c *gin.Context) {
	articles, err := app.store.ListArticles(c.Request.Context())
	if err != nil {
		api.AbortJSONError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}

	result := make([]gin.H, 0, len(articles))
	for _, article := range articles {
		result = append(result, articleJSON(&article))
	}
	c.JSON(http.StatusOK, gin.H{"articles": result})
}

func (app *app) createArticle(c *gin.Context) {
	userID, ok := api.GetUserID(c)
	if !ok {
		api.AbortJSONError(c, http.StatusInternalServerError, "missing user context")
		return
	}

	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		References []struct {
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"references"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		api.AbortJSONErrorWithDetails(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		api.AbortJSONError(c, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Title) > maxArticleTitleLength {
		api.AbortJSONError(c, http.StatusBadRequest, fmt.Sprintf("title must be at most %d characters", maxArticleTitleLength))
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		api.AbortJSONError(c, http.StatusBadRequest, "content is required")
		return
	}

	if len(req.References) > maxReferencesPerPost {
		api.AbortJSONError(c, http.StatusBadRequest, fmt.Sprintf("maximum %d references per article", maxReferencesPerPost))
		return
	}

	refs := make([]store.Reference, 0, len(req.References))
	for _, ref := range req.References {
		ref.URL = strings.TrimSpace(ref.URL)
		if ref.URL == "" {
			continue
		}
		u, err := url.Parse(ref.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			api.AbortJSONErrorWithDetails(c, http.StatusBadRequest, "invalid reference url", ref.URL)
			return
		}
		refs = append(refs, store.Reference{
			ID:      uuid.NewString(),
			URL:     ref.URL,
			Content: strings.TrimSpace(ref.Content),
		})
	}

	now := time.Now()
	article := &store.Article{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
		References: refs,
	}

	if err := app.store.CreateArticle(c.Request.Context(), article); err != nil {
		api.AbortJSONError(c, http.StatusInternalServerError, "failed to create article")
		return
	}

	c.JSON(http.StatusCreated, articleJSON(article))
}

func (app *app) getArticle(c *gin.Context) {
	articleID := c.Param("id")
	article, err := app.store.GetArticleByID(c.Request.Context(), articleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.AbortJSONError(c, http.StatusNotFound, "article not found")
			return
		}
		api.AbortJSONError(c, http.StatusInternalServerError, "failed to fetch article")
		return
	}

	c.JSON(http.StatusOK, articleJSON(article))
}

func (app *app) deleteArticle(c *gin.Context) {
	userID, ok := api.GetUserID(c)
	if !ok {
		api.AbortJSONError(c, http.StatusInternalServerError, "missing user context")
		return
	}

	articleID := c.Param("id")
	article, err := app.store.GetArticleByID(c.Request.Context(), articleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.AbortJSONError(c, http.StatusNotFound, "article not found")
			return
		}
		api.AbortJSONError(c, http.StatusInternalServerError, "failed to fetch article")
		return
	}

	if article.UserID != userID {
		api.AbortJSONError(c, http.StatusForbidden, "you do not own this article")
		return
	}

	if err := app.store.DeleteArticle(c.Request.Context(), articleID); err != nil {
		api.AbortJSONError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	c.Status(http.StatusNoContent)
}

func articleJSON(article *store.Article) gin.H {
	refs := make([]gin.H, 0, len(article.References))
	for _, ref := range article.References {
		refs = append(refs, gin.H{
			"id":      ref.ID,
			"url":     ref.URL,
			"content": ref.Content,
		})
	}

	return gin.H{
		"id":         article.ID,
		"user_id":    article.UserID,
		"title":      article.Title,
		"content":    article.Content,
		"references": refs,
		"created_at": article.CreatedAt.Format(time.RFC3339),
		"updated_at": article.UpdatedAt.Format(time.RFC3339),
	}
}

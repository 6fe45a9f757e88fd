package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/store"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// WithClerkSession verifies the Authorization header and attaches the Clerk
// session claims to the request context. Verification failures are answered
// by the Clerk middleware with a bare 401.
func WithClerkSession() gin.HandlerFunc {
	verify := clerkhttp.WithHeaderAuthorization()
	return func(c *gin.Context) {
		passed := false
		verify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
		})).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// RequireAuth gates a route group on a verified Clerk session and provisions
// a local profile for first-time users.
func RequireAuth(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := clerk.SessionClaimsFromContext(c.Request.Context())
		if !ok {
			AbortJSONError(c, http.StatusUnauthorized, "missing or invalid authentication")
			return
		}

		profile, err := getOrCreateProfile(c.Request.Context(), s, claims.Subject)
		if err != nil {
			log.Printf("error provisioning profile %s: %v", claims.Subject, err)
			AbortJSONError(c, http.StatusInternalServerError, "failed to provision profile")
			return
		}

		c.Set(string(userIDKey), profile.ID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(string(userIDKey))
	if !ok {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok
}

func getOrCreateProfile(ctx context.Context, s store.Store, clerkUserID string) (*store.Profile, error) {
	p, err := s.GetProfileByProvider(ctx, "clerk", clerkUserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup profile by provider: %w", err)
	}

	clerkUser, err := user.Get(ctx, clerkUserID)
	if err != nil {
		return nil, fmt.Errorf("fetch clerk user: %w", err)
	}

	email := ""
	if len(clerkUser.EmailAddresses) > 0 {
		email = clerkUser.EmailAddresses[0].EmailAddress
	}
	if email == "" {
		return nil, fmt.Errorf("clerk user %s has no email address", clerkUserID)
	}

	provider := "clerk"
	now := time.Now()
	profile := &store.Profile{
		ID:              uuid.NewString(),
		Email:           email,
		AuthProvider:    &provider,
		ProviderSubject: &clerkUserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	log.Printf("provisioned new profile: id=%s email=%s clerk_id=%s", profile.ID, profile.Email, clerkUserID)
	return profile, nil
}

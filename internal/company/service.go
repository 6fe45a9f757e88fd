package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/feed"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrUnknownCompany reports a slug with no registry entry.
	ErrUnknownCompany = errors.New("unknown company")

	// ErrNoUpdates reports an empty result after quality filtering.
	ErrNoUpdates = errors.New("no updates available")
)

// Fetcher retrieves raw items from an upstream source.
type Fetcher interface {
	FetchFeed(ctx context.Context, url string) ([]feed.Item, error)
	ScrapePage(ctx context.Context, url string) ([]feed.Item, error)
}

// Service resolves a company slug to its merged, normalized updates.
type Service struct {
	fetcher  Fetcher
	registry *Registry
	now      func() time.Time
}

func NewService(fetcher Fetcher, registry *Registry) *Service {
	return &Service{
		fetcher:  fetcher,
		registry: registry,
		now:      time.Now,
	}
}

func (s *Service) Registry() *Registry {
	return s.registry
}

// Updates fetches every source of the company concurrently, normalizes each
// batch, and merges them newest-first. Fan-in is all-or-nothing: any source
// failing fails the whole request, so no partial result is ever returned.
func (s *Service) Updates(ctx context.Context, slug string) ([]feed.UpdateRecord, error) {
	c, ok := s.registry.Lookup(slug)
	if !ok {
		return nil, ErrUnknownCompany
	}

	now := s.now()
	batches := make([][]feed.UpdateRecord, len(c.Sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range c.Sources {
		i, src := i, src
		g.Go(func() error {
			items, err := s.fetchSource(ctx, src)
			if err != nil {
				return fmt.Errorf("%s (%s): %w", c.Name, src.Kind, err)
			}
			cfg := feed.MapConfig{
				Priorities:     src.Fields,
				FallbackAuthor: c.Name,
				Kind:           src.Kind,
			}
			batches[i] = feed.MapItems(items, cfg, now, c.FilterEmpty)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := feed.Merge(batches...)
	if c.FilterEmpty && len(merged) == 0 {
		return nil, ErrNoUpdates
	}
	return merged, nil
}

func (s *Service) fetchSource(ctx context.Context, src Source) ([]feed.Item, error) {
	if src.Scrape {
		return s.fetcher.ScrapePage(ctx, src.URL)
	}

	items, err := s.fetcher.FetchFeed(ctx, src.URL)
	if err != nil && src.ScrapeFallbackURL != "" {
		return s.fetcher.ScrapePage(ctx, src.ScrapeFallbackURL)
	}
	return items, err
}

package main

import (
	"log"

	"github.com/RobertVMill/tech-news-tracker/internal/api"
	"github.com/RobertVMill/tech-news-tracker/internal/company"
	"github.com/RobertVMill/tech-news-tracker/internal/config"
	"github.com/RobertVMill/tech-news-tracker/internal/earnings"
	"github.com/RobertVMill/tech-news-tracker/internal/fetch"
	"github.com/RobertVMill/tech-news-tracker/internal/store"

	"github.com/clerk/clerk-sdk-go/v2"
)

type app struct {
	config   *config.Config
	store    store.Store
	handlers *api.Handlers
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	registry, err := cfg.Companies()
	if err != nil {
		log.Fatal(err)
	}

	updates := company.NewService(fetch.New(cfg.Feeds.Timeout), registry)
	handlers := api.NewHandlers(updates, earnings.DefaultCalendar())

	s, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Printf("warning: failed to initialize database, articles disabled: %v", err)
	} else {
		defer s.Close()
		log.Printf("database initialized, articles enabled")
	}

	if cfg.Clerk.SecretKey != "" {
		clerk.SetKey(cfg.Clerk.SecretKey)
		log.Printf("clerk authentication enabled")
	}

	app := &app{
		config:   cfg,
		store:    s,
		handlers: handlers,
	}

	log.Printf("listening on :%d (companies=%d)", cfg.Server.Port, len(registry.Companies()))

	log.Fatal(app.serve())
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-blog-api/config"
	"github.com/oksasatya/go-ddd-blog-api/internal/application"
	"github.com/oksasatya/go-ddd-blog-api/internal/infrastructure/store"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
)

// seed creates a demo author with one post so the API has something to list.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	repos, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer repos.Close()

	email := "demo@example.com"
	password := "password123"
	name := "Demo Author"

	auth := application.NewAuthService(repos.Users, helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL), logger)
	session, err := auth.Register(ctx, name, email, password)
	if errors.Is(err, application.ErrEmailTaken) {
		session, err = auth.Login(ctx, email, password)
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", session.User.ID, email, password)

	posts := application.NewPostService(repos.Posts, repos.Users, logger, nil, "")
	p, err := posts.Create(ctx, session.User.ID, application.CreatePostInput{
		Title:      "Hello, world",
		Content:    "The first post on this blog.",
		Categories: []string{"general"},
	})
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%s\n", p.ID)
	fmt.Printf("token: %s\n", session.AccessToken)
}

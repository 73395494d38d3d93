package testutil

import (
	"context"

	"github.com/pulsegram/backend/internal/entity"
	"github.com/pulsegram/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:      entity.Base{ID: "user1"},
		Name:      "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		IsActive:  true,
	}

	User2 = entity.User{
		Base:      entity.Base{ID: "user2"},
		Name:      "bob",
		Email:     "bob@example.com",
		FirstName: "Bob",
		IsActive:  true,
	}

	User3 = entity.User{
		Base:      entity.Base{ID: "user3"},
		Name:      "carol",
		Email:     "carol@example.com",
		FirstName: "Carol",
		IsActive:  true,
		IsPrivate: true,
	}

	Post1 = entity.Post{
		Base:      entity.Base{ID: "post1"},
		UserID:    User1.ID,
		Caption:   "first light",
		MediaURL:  "https://cdn.example.com/post1.jpg",
		MediaType: entity.MediaImage,
		IsPublic:  true,
	}

	Post2 = entity.Post{
		Base:      entity.Base{ID: "post2"},
		UserID:    User2.ID,
		Caption:   "weekend ride",
		MediaURL:  "https://cdn.example.com/post2.mp4",
		MediaType: entity.MediaVideo,
		IsPublic:  true,
	}
)

// CreateFixture populates the mock database with a small social graph
// shared by most domain tests.
func CreateFixture(ctx context.Context) {
	InsertUsers(ctx)
	InsertPosts(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, User3} {
		u := user
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}
}

func InsertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()
	for _, post := range []entity.Post{Post1, Post2} {
		p := post
		if err := postRepo.Create(ctx, &p); err != nil {
			panic(err)
		}
	}
}

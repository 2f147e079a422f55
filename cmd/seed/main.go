package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/pulsefeed/pulsefeed/config"
	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/repository"
	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Seeds the configured database with demo users, communities, posts,
// comments and follow edges. Knobs come from the environment:
// USERS, POSTS, COMMUNITIES (defaults 20/200/3). Every user's password
// is "password".
func main() {
	cfg := must(config.Load())
	db := must(database.Open(cfg.DB))

	users := repository.NewUserRepository(db)
	communities := repository.NewCommunityRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	follows := repository.NewFollowRepository(db)
	relSvc := service.NewRelationshipService(follows)

	ctx := context.Background()

	nUsers := envInt("USERS", 20)
	nPosts := envInt("POSTS", 200)
	nCommunities := envInt("COMMUNITIES", 3)

	hash := must(bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost))

	seededUsers := make([]*model.User, 0, nUsers)
	for i := 0; i < nUsers; i++ {
		u := &model.User{
			Username: fmt.Sprintf("user%03d", i),
			Email:    fmt.Sprintf("user%03d@example.com", i),
			Password: string(hash),
		}
		must(0, users.Create(ctx, u))
		seededUsers = append(seededUsers, u)
	}

	seededCommunities := make([]*model.Community, 0, nCommunities)
	for i := 0; i < nCommunities; i++ {
		g := &model.Community{
			Title:       fmt.Sprintf("Community %d", i),
			Slug:        fmt.Sprintf("community-%d", i),
			Description: "seeded community",
		}
		must(0, communities.Create(ctx, g))
		seededCommunities = append(seededCommunities, g)
	}

	for i := 0; i < nPosts; i++ {
		p := &model.Post{
			Text:     fmt.Sprintf("seeded post %d", i),
			AuthorID: seededUsers[rand.Intn(len(seededUsers))].ID,
		}
		// roughly half the posts belong to a community
		if rand.Intn(2) == 0 {
			p.CommunityID = &seededCommunities[rand.Intn(len(seededCommunities))].ID
		}
		must(0, posts.Create(ctx, p))
		if rand.Intn(3) == 0 {
			must(0, comments.Create(ctx, &model.Comment{
				Text:     "seeded comment",
				PostID:   p.ID,
				AuthorID: seededUsers[rand.Intn(len(seededUsers))].ID,
			}))
		}
	}

	edges := 0
	for _, u := range seededUsers {
		for i := 0; i < 3; i++ {
			target := seededUsers[rand.Intn(len(seededUsers))]
			if err := relSvc.Follow(ctx, u.ID, target.ID); err == nil {
				edges++
			}
		}
	}

	fmt.Printf("seeded %d users, %d communities, %d posts, ~%d follow edges\n",
		nUsers, nCommunities, nPosts, edges)
	_ = os.Stdout.Sync()
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// Command seed populates the database with fake users, posts, comments, and
// likes for local development.
package main

import (
	"flag"
	"log"
	"math/rand"
	"strings"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 30, "number of posts to create")
	comments := flag.Int("comments", 100, "number of comments to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	// Every seeded account shares a known password for manual testing.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var userIDs []uint
	for i := 0; i < *users; i++ {
		user := models.User{
			Username: strings.ToLower(gofakeit.Username()),
			Email:    strings.ToLower(gofakeit.Email()),
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("skipping user %q: %v", user.Username, err)
			continue
		}
		userIDs = append(userIDs, user.ID)
	}
	if len(userIDs) == 0 {
		log.Fatal("No users created, aborting")
	}

	var postIDs []uint
	for i := 0; i < *posts; i++ {
		post := models.Post{
			Title:   gofakeit.Sentence(rand.Intn(6) + 3),
			Content: gofakeit.Paragraph(2, 4, 12, "\n\n"),
			UserID:  userIDs[rand.Intn(len(userIDs))],
		}
		if err := db.Create(&post).Error; err != nil {
			log.Printf("skipping post: %v", err)
			continue
		}
		postIDs = append(postIDs, post.ID)
	}
	if len(postIDs) == 0 {
		log.Fatal("No posts created, aborting")
	}

	for i := 0; i < *comments; i++ {
		comment := models.Comment{
			Content: gofakeit.Sentence(rand.Intn(15) + 3),
			UserID:  userIDs[rand.Intn(len(userIDs))],
			PostID:  postIDs[rand.Intn(len(postIDs))],
		}
		if err := db.Create(&comment).Error; err != nil {
			log.Printf("skipping comment: %v", err)
		}
	}

	// Each user likes a random subset of posts. The unique index absorbs any
	// duplicate picks.
	likes := 0
	for _, uid := range userIDs {
		for _, pid := range postIDs {
			if rand.Float64() > 0.3 {
				continue
			}
			err := db.Exec(
				`INSERT INTO likes (user_id, post_id, created_at)
				 VALUES (?, ?, NOW())
				 ON CONFLICT (user_id, post_id) DO NOTHING`,
				uid, pid,
			).Error
			if err != nil {
				log.Printf("skipping like: %v", err)
				continue
			}
			likes++
		}
	}

	log.Printf("Seeded %d users, %d posts, %d comments, %d likes",
		len(userIDs), len(postIDs), *comments, likes)
}

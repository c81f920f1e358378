package main

import (
	"log"
	"os"

	"forum-live-be/internal/model"
	"forum-live-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo users and threads...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash seed password: %v", err)
	}

	users := []model.User{
		{Id: uuid.New(), Name: "alice", Email: "alice@example.com", PasswordHash: string(hash)},
		{Id: uuid.New(), Name: "bob", Email: "bob@example.com", PasswordHash: string(hash)},
		{Id: uuid.New(), Name: "carol", Email: "carol@example.com", PasswordHash: string(hash)},
	}

	for i := range users {
		var existing model.User
		if err := db.Where("name = ?", users[i].Name).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", users[i].Name)
			users[i] = existing
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("Error: failed to seed user %s: %v", users[i].Name, err)
		}
		color.Green("Created user '%s'", users[i].Name)
	}

	threads := []model.Thread{
		{
			ID:         uuid.New(),
			Title:      "Welcome to the forum",
			Content:    "Introduce yourself here. Mention someone with @name to notify them.",
			Category:   "general",
			AuthorID:   users[0].Id,
			AuthorName: users[0].Name,
		},
		{
			ID:         uuid.New(),
			Title:      "Show off your setup",
			Content:    "Post a photo of your desk.",
			Category:   "offtopic",
			AuthorID:   users[1].Id,
			AuthorName: users[1].Name,
		},
	}

	for _, t := range threads {
		var existing model.Thread
		if err := db.Where("title = ?", t.Title).First(&existing).Error; err == nil {
			color.Yellow("Thread '%s' already exists, skipping...", t.Title)
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			log.Fatalf("Error: failed to seed thread '%s': %v", t.Title, err)
		}
		color.Green("Created thread '%s'", t.Title)
	}

	color.Cyan("Seeding complete. All demo accounts use password 'password123'.")
}

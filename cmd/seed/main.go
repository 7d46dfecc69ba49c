package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skillforge-backend/internal/auth"
	"skillforge-backend/internal/catalog"
	"skillforge-backend/internal/config"
	"skillforge-backend/internal/db"
	"skillforge-backend/internal/models"
	"skillforge-backend/internal/utils"
)

type seedCourse struct {
	Title       string
	Description string
	Category    string
	Level       string
	Price       float64
	Instructor  string
	Lessons     []catalog.Lesson
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	courses := []seedCourse{
		{
			Title:       "Modern Web Development",
			Description: "Build responsive applications with current frontend tooling.",
			Category:    "Development",
			Level:       catalog.LevelBeginner,
			Price:       49.99,
			Instructor:  "Sarah Chen",
			Lessons: []catalog.Lesson{
				{Title: "Setting up the toolchain", DurationMinutes: 25},
				{Title: "Components and state", DurationMinutes: 40},
				{Title: "Routing and data fetching", DurationMinutes: 35},
			},
		},
		{
			Title:       "Data Analysis with Python",
			Description: "From raw CSV files to clear visual insights.",
			Category:    "Data Science",
			Level:       catalog.LevelIntermediate,
			Price:       59.99,
			Instructor:  "Miguel Torres",
			Lessons: []catalog.Lesson{
				{Title: "Loading and cleaning data", DurationMinutes: 30},
				{Title: "Exploratory analysis", DurationMinutes: 45},
				{Title: "Plotting results", DurationMinutes: 30},
			},
		},
		{
			Title:       "UI Design Fundamentals",
			Description: "Layout, color and typography for product interfaces.",
			Category:    "Design",
			Level:       catalog.LevelBeginner,
			Price:       39.99,
			Instructor:  "Ana Kovac",
			Lessons: []catalog.Lesson{
				{Title: "Visual hierarchy", DurationMinutes: 20},
				{Title: "Color systems", DurationMinutes: 25},
			},
		},
		{
			Title:       "Distributed Systems Deep Dive",
			Description: "Consensus, replication and failure handling in practice.",
			Category:    "Development",
			Level:       catalog.LevelAdvanced,
			Price:       89.99,
			Instructor:  "David Okafor",
			Lessons: []catalog.Lesson{
				{Title: "Failure models", DurationMinutes: 35},
				{Title: "Replication strategies", DurationMinutes: 50},
				{Title: "Consensus protocols", DurationMinutes: 55},
			},
		},
		{
			Title:       "Digital Marketing Essentials",
			Description: "Campaign planning, channels and measurement.",
			Category:    "Marketing",
			Level:       catalog.LevelBeginner,
			Price:       29.99,
			Instructor:  "Lucie Martin",
			Lessons: []catalog.Lesson{
				{Title: "Audience and positioning", DurationMinutes: 25},
				{Title: "Channel strategy", DurationMinutes: 30},
			},
		},
		{
			Title:       "Machine Learning in Production",
			Description: "Ship and monitor models beyond the notebook.",
			Category:    "Data Science",
			Level:       catalog.LevelAdvanced,
			Price:       99.99,
			Instructor:  "Miguel Torres",
			Lessons: []catalog.Lesson{
				{Title: "Serving architectures", DurationMinutes: 40},
				{Title: "Monitoring and drift", DurationMinutes: 45},
			},
		},
	}

	for _, course := range courses {
		slug := utils.Slugify(course.Title)
		total := 0
		for _, lesson := range course.Lessons {
			total += lesson.DurationMinutes
		}
		filter := bson.M{"slug": slug}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":             primitive.NewObjectID().Hex(),
				"slug":            slug,
				"title":           course.Title,
				"description":     course.Description,
				"category":        course.Category,
				"level":           course.Level,
				"price":           course.Price,
				"instructorName":  course.Instructor,
				"rating":          0.0,
				"reviewCount":     0,
				"enrollmentCount": 0,
				"durationMinutes": total,
				"lessons":         course.Lessons,
				"createdAt":       time.Now().In(cfg.Timezone),
				"updatedAt":       time.Now().In(cfg.Timezone),
			},
		}

		_, err := cols.Courses.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Fatalf("seed error for %s: %v", course.Title, err)
		}
	}

	username := envOrDefault("ADMIN_USER", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("seed admin: ADMIN_PASSWORD missing, skipping")
	} else if err := seedAdminUser(ctx, cols, username, envOrDefault("ADMIN_EMAIL", ""), password, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error for %s: %v", username, err)
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, email, password string, loc *time.Location) error {
	if cols == nil || cols.Users == nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	filter := bson.M{"username": username}
	set := bson.M{
		"passwordHash": hash,
		"role":         models.UserRoleAdmin,
		"updatedAt":    now,
	}
	if email != "" {
		set["email"] = email
	}
	setOnInsert := bson.M{
		"_id":       primitive.NewObjectID().Hex(),
		"username":  username,
		"createdAt": now,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": setOnInsert,
	}
	_, err = cols.Users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Command seed loads a starter catalogue of posts and authors for local
// development.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"sanaalens/internal/config"
	"sanaalens/internal/database"
	"sanaalens/internal/middleware"
	"sanaalens/internal/models"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		middleware.Logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	password, err := bcrypt.GenerateFromPassword([]byte("LocalDevPass1"), bcrypt.DefaultCost)
	if err != nil {
		middleware.Logger.Error("failed to hash seed password", "error", err)
		os.Exit(1)
	}

	authors := []models.User{
		{
			ID: 1, Email: "amina@sanaalens.co.ke", Username: "amina_wanjiku",
			DisplayName: "Amina Wanjiku", Password: string(password),
			Bio: "Contemporary art curator and writer exploring Nairobi's creative scene.",
		},
		{
			ID: 2, Email: "david@sanaalens.co.ke", Username: "david_kimani",
			DisplayName: "David Kimani", Password: string(password),
			Bio: "Cultural historian documenting Kenya's traditional crafts.",
		},
		{
			ID: 3, Email: "sarah@sanaalens.co.ke", Username: "sarah_muthoni",
			DisplayName: "Sarah Muthoni", Password: string(password),
			Bio: "Street photographer chasing murals across East Africa.",
		},
	}

	published := func(daysAgo int) *time.Time {
		t := time.Now().AddDate(0, 0, -daysAgo)
		return &t
	}

	posts := []models.Post{
		{
			ID:          1,
			Title:       "The Renaissance of Kenyan Contemporary Art",
			Slug:        "kenyan-contemporary-art-renaissance",
			Excerpt:     "A new generation of Nairobi artists is redefining what Kenyan art means on the global stage.",
			AuthorID:    1,
			AuthorName:  "Amina Wanjiku",
			Categories:  pq.StringArray{"Contemporary Art", "Culture"},
			Tags:        pq.StringArray{"nairobi", "galleries", "painting"},
			SEOKeywords: pq.StringArray{"kenyan art", "contemporary", "nairobi galleries"},
			Featured:    true,
			Status:      models.PostStatusPublished,
			PublishedAt: published(2),
		},
		{
			ID:          2,
			Title:       "Traditional Pottery: Keeping Ancient Crafts Alive",
			Slug:        "traditional-pottery-ancient-crafts",
			Excerpt:     "In the hills of western Kenya, potters still shape clay the way their grandmothers did.",
			AuthorID:    2,
			AuthorName:  "David Kimani",
			Categories:  pq.StringArray{"Traditional Crafts", "Heritage"},
			Tags:        pq.StringArray{"pottery", "craft", "heritage"},
			Featured:    true,
			Status:      models.PostStatusPublished,
			PublishedAt: published(5),
		},
		{
			ID:          3,
			Title:       "Street Art Stories from Eastlands",
			Slug:        "street-art-stories-eastlands",
			Excerpt:     "The walls of Eastlands speak. We followed the artists giving them a voice.",
			AuthorID:    3,
			AuthorName:  "Sarah Muthoni",
			Categories:  pq.StringArray{"Street Art", "Culture"},
			Tags:        pq.StringArray{"murals", "nairobi", "public-art"},
			Status:      models.PostStatusPublished,
			PublishedAt: published(9),
		},
		{
			ID:          4,
			Title:       "Digital Canvases: Kenya's New Media Artists",
			Slug:        "digital-canvases-new-media-artists",
			Excerpt:     "From NFTs to projection mapping, Kenyan artists are claiming digital space.",
			AuthorID:    1,
			AuthorName:  "Amina Wanjiku",
			Categories:  pq.StringArray{"Digital Art", "Contemporary Art"},
			Tags:        pq.StringArray{"digital", "new-media"},
			Status:      models.PostStatusPublished,
			PublishedAt: published(14),
		},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&authors).Error; err != nil {
		middleware.Logger.Error("failed to seed authors", "error", err)
		os.Exit(1)
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&posts).Error; err != nil {
		middleware.Logger.Error("failed to seed posts", "error", err)
		os.Exit(1)
	}

	middleware.Logger.Info("seed complete", "authors", len(authors), "posts", len(posts))
}

// Command seed loads a demo catalog into the configured relational backend.
// It is a no-op when products already exist.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/duallane/go-shop-api/internal/config"
	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/model"
	"github.com/duallane/go-shop-api/internal/repository"
)

var demoProducts = []model.Product{
	{Name: "Wireless Keyboard", Description: "Low-profile wireless keyboard with quiet keys", Price: 49900, ImageURL: "", Category: "electronics", Stock: 50},
	{Name: "Mechanical Keyboard", Description: "Hot-swappable mechanical keyboard, tactile switches", Price: 129000, ImageURL: "", Category: "electronics", Stock: 30},
	{Name: "USB-C Hub", Description: "7-in-1 USB-C hub with HDMI and card reader", Price: 39000, ImageURL: "", Category: "electronics", Stock: 80},
	{Name: "Ceramic Mug", Description: "350ml ceramic mug, dishwasher safe", Price: 12000, ImageURL: "", Category: "kitchen", Stock: 120},
	{Name: "French Press", Description: "1L borosilicate glass french press", Price: 28000, ImageURL: "", Category: "kitchen", Stock: 40},
	{Name: "Canvas Tote Bag", Description: "Heavy-duty canvas tote, 20L", Price: 18000, ImageURL: "", Category: "accessories", Stock: 60},
	{Name: "Desk Lamp", Description: "Dimmable LED desk lamp with USB charging port", Price: 35000, ImageURL: "", Category: "home", Stock: 45},
	{Name: "Notebook Set", Description: "Set of 3 dotted A5 notebooks", Price: 15000, ImageURL: "", Category: "stationery", Stock: 200},
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DB, log)
	if err != nil {
		log.Error("init database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db)

	count, err := productRepo.Count(ctx)
	if err != nil {
		log.Error("count products", "error", err)
		os.Exit(1)
	}
	if count > 0 {
		log.Info("products already present, skipping seed", "count", count)
		return
	}

	for i := range demoProducts {
		if err := productRepo.Create(ctx, &demoProducts[i]); err != nil {
			log.Error("seed product", "name", demoProducts[i].Name, "error", err)
			os.Exit(1)
		}
	}
	log.Info("seeded demo catalog", "products", len(demoProducts), "backend", cfg.DB.Backend)
}

// Command fill wipes the category and product tables and reloads them from
// the category.json and product.json fixture files in the working
// directory.
package main

import (
	"encoding/json"
	"os"

	"catalog-service/internal/model"
	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"

	"go.uber.org/zap"
)

type categoryFixture struct {
	PK     uint `json:"pk"`
	Fields struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	} `json:"fields"`
}

type productFixture struct {
	PK     uint `json:"pk"`
	Fields struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Photo       *string `json:"photo"`
		Category    *uint   `json:"category"`
		Price       *int    `json:"price"`
		Owner       uint    `json:"owner"`
	} `json:"fields"`
}

func main() {
	appConfig, err := config.Load("catalog")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: "catalog-fill",
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(&model.Category{}, &model.Product{}, &model.Version{}); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	var categories []categoryFixture
	if err := readFixture("category.json", &categories); err != nil {
		log.Fatal("Failed to read category fixture", zap.Error(err))
	}
	var products []productFixture
	if err := readFixture("product.json", &products); err != nil {
		log.Fatal("Failed to read product fixture", zap.Error(err))
	}

	// Products reference categories, so they go first
	if err := db.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
		log.Fatal("Failed to clear products", zap.Error(err))
	}
	if err := db.Where("1 = 1").Delete(&model.Category{}).Error; err != nil {
		log.Fatal("Failed to clear categories", zap.Error(err))
	}

	for _, fixture := range categories {
		category := model.Category{
			ID:          fixture.PK,
			Name:        fixture.Fields.Name,
			Description: fixture.Fields.Description,
		}
		if err := db.Create(&category).Error; err != nil {
			log.Fatal("Failed to create category",
				zap.Uint("id", fixture.PK),
				zap.Error(err))
		}
	}
	log.Info("Categories loaded", zap.Int("count", len(categories)))

	for _, fixture := range products {
		product := model.Product{
			ID:          fixture.PK,
			Name:        fixture.Fields.Name,
			Description: fixture.Fields.Description,
			Photo:       fixture.Fields.Photo,
			CategoryID:  fixture.Fields.Category,
			Price:       fixture.Fields.Price,
			OwnerID:     fixture.Fields.Owner,
			IsPublished: true,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Fatal("Failed to create product",
				zap.Uint("id", fixture.PK),
				zap.Error(err))
		}
	}
	log.Info("Products loaded", zap.Int("count", len(products)))
}

func readFixture(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nutriswap/nutriswap/app/catalog"
	"github.com/nutriswap/nutriswap/app/categories"
	"github.com/nutriswap/nutriswap/app/favorites"
	"github.com/nutriswap/nutriswap/app/ingest"
	"github.com/nutriswap/nutriswap/app/substitutes"
	"github.com/nutriswap/nutriswap/database"
	"github.com/nutriswap/nutriswap/logger"
	"github.com/nutriswap/nutriswap/models"
	"github.com/nutriswap/nutriswap/openfoodfacts"
)

func main() {
	runIngestion := flag.Bool("ingest", false, "run one ingestion batch and exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := LoadConfig()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(log,
		&models.Category{},
		&models.Product{},
		&models.SavedProduct{},
	)
	if err != nil {
		log.Fatal("database setup failed", zap.Error(err))
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	savedRepo := models.NewSavedProductsRepository(db)

	client := openfoodfacts.NewClient(cfg.OpenFoodFactsURL)
	ingestor := ingest.NewIngestor(categoriesRepo, productsRepo, client.ProductURL)
	orchestrator := ingest.NewOrchestrator(client, categoriesRepo, ingestor, log)

	if *runIngestion {
		if _, err := orchestrator.Run(context.Background()); err != nil {
			log.Fatal("ingestion failed", zap.Error(err))
		}
		return
	}

	catalogHandler := catalog.NewCatalogHandler(productsRepo)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo)
	substitutesHandler := substitutes.NewSubstitutesHandler(substitutes.NewFinder(productsRepo))
	favoritesHandler := favorites.NewFavoritesHandler(savedRepo)
	ingestHandler := ingest.NewHandler(orchestrator, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", catalogHandler.HandleSearch)
	mux.HandleFunc("GET /products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /products/{id}/substitutes", substitutesHandler.HandleGet)
	mux.HandleFunc("GET /categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /favorites", favoritesHandler.HandleSave)
	mux.HandleFunc("GET /favorites", favoritesHandler.HandleList)
	mux.HandleFunc("DELETE /favorites/{productID}", favoritesHandler.HandleDelete)
	mux.HandleFunc("POST /ingestion/run", ingestHandler.HandleRun)

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

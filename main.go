package main

import (
	"log"

	api "coffeemap-backend/cmd/api"
	authRepo "coffeemap-backend/internal/auth/repository"
	authUsecase "coffeemap-backend/internal/auth/usecase"
	shopRepo "coffeemap-backend/internal/coffeeshop/repository"
	shopUsecase "coffeemap-backend/internal/coffeeshop/usecase"
	"coffeemap-backend/pkg/config"
	"coffeemap-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewMongoConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	shopRepository := shopRepo.NewCoffeeShopRepository(db)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	shopUsecaseInstance := shopUsecase.NewCoffeeShopUsecase(shopRepository)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, shopUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

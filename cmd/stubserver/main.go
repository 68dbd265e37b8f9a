package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/azizbekh/staffdesk/internal/api"
	"github.com/azizbekh/staffdesk/internal/config"
	"github.com/azizbekh/staffdesk/internal/repository"
)

func main() {
	// LOAD ENV
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed load config:", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// INIT STORE
	var store repository.Store
	switch cfg.Store {
	case "postgres":
		pg, err := repository.NewPostgresStore(cfg)
		if err != nil {
			log.Fatal("db connect:", err)
		}
		if err := pg.RunMigrations(context.Background()); err != nil {
			log.Fatal("migration error:", err)
		}
		store = pg
	default:
		store = repository.NewMemStore()
	}

	// ADMIN SEED
	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash admin password:", err)
	}
	if _, err := store.UpsertUser(context.Background(), "Admin", cfg.AdminEmail, string(hashed)); err != nil {
		log.Println("failed seeding admin:", err)
	} else {
		log.Println("admin seeded OK")
	}

	// ROUTER
	r := api.NewRouter(store, cfg.JWTSecret)

	// START SERVER
	log.Println("Server running on port:", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server:", err)
	}
}

package main

import (
	"catalog-backend/config"
	"catalog-backend/routers"
	"catalog-backend/storage"
	"log"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("invalid environment: %v", err)
	}

	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := config.SetupMySQLConnection("config/config.yaml")
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	if err := config.SeedSuperAdmin(db); err != nil {
		log.Fatalf("failed to seed super admin: %v", err)
	}

	store, err := storage.NewMinioStorage(
		env.S3Endpoint,
		env.S3AccessKey,
		env.S3SecretKey,
		env.S3Bucket,
		env.S3UseSSL,
	)
	if err != nil {
		log.Fatalf("failed to set up object storage: %v", err)
	}

	router := routers.SetupRouters(db, store, env.JWTSecret)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

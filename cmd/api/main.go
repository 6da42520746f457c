package main

import (
	"context"
	"os"

	"medstore/internal/config"
	"medstore/internal/domain/model"
	"medstore/internal/handler"
	"medstore/internal/infra/db"
	infraRepo "medstore/internal/infra/repository"
	"medstore/internal/infra/storage"
	"medstore/internal/server"
	"medstore/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional outside local dev
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("could not load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("invalid LOG_LEVEL %q, using %s", cfg.LogLevel, level)
	}
	log.SetLevel(level)

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	log.Info("database connection established")

	// repositories (GORM implementations)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// image storage (S3)
	imageStore, err := storage.NewS3Storage(context.Background(), cfg.S3Bucket)
	if err != nil {
		log.Fatalf("s3 storage: %v", err)
	}

	// usecases
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(productRepo, imageStore)
	cartUC := usecase.NewCartUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	// handlers
	authH := handler.NewAuthHandler(authUC)
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(cartUC, orderUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC)

	e := server.New(cfg, log)
	authH.RegisterRoutes(e)
	productH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	adminOrderH.RegisterRoutes(e, cfg)

	addr := ":" + cfg.Port
	log.Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

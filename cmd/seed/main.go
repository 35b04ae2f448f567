package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/keeper31337/homepage-api/config"
	"github.com/keeper31337/homepage-api/internal/domain/entity"
	"github.com/keeper31337/homepage-api/internal/seed"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		logger.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	opts := seed.Options{
		VirtualMemberID: cfg.VirtualMemberID,
		Categories:      seed.DefaultCategories,
		MeritTypes:      seed.DefaultMeritTypes,
	}

	// SEED_ADMIN_LOGIN_ID creates a president account for first boot
	if login := os.Getenv("SEED_ADMIN_LOGIN_ID"); login != "" {
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			logger.Fatal("SEED_ADMIN_PASSWORD is required with SEED_ADMIN_LOGIN_ID")
		}
		hash, err := helpers.HashPassword(password)
		if err != nil {
			logger.Fatalf("failed to hash password: %v", err)
		}
		opts.Admin = &seed.Admin{
			LoginID:      login,
			Email:        os.Getenv("SEED_ADMIN_EMAIL"),
			PasswordHash: hash,
			RealName:     login,
			Jobs:         []entity.JobType{entity.JobMember, entity.JobPresident, entity.JobSystemAdmin},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rep, err := seed.Run(ctx, db, opts)
	if err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"jobs":           rep.Jobs,
		"virtual_member": rep.VirtualMember,
		"categories":     rep.Categories,
		"merit_types":    rep.MeritTypes,
		"admin_id":       rep.AdminID,
	}).Info("seed complete")
}

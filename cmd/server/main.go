package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"patient_backend/internal/app/di"
	"patient_backend/internal/app/router"
	authadapters "patient_backend/internal/feature/auth/adapters"
	authhandler "patient_backend/internal/feature/auth/transport/handler"
	authusecase "patient_backend/internal/feature/auth/usecase"
	infradb "patient_backend/internal/platform/db"
	infraredis "patient_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db, err := infradb.Open(infradb.LoadConfig())
	if err != nil {
		log.Fatal(err)
	}

	// マイグレーション（Patient, Sessionフォールバック）
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := infradb.Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to MySQL session store.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	patientRepo := authadapters.NewPatientMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(patientRepo, sessionRepo, sessionTTL())

	// Handler
	authH := authhandler.NewAuthHandler(authUC)

	// ルータ生成
	r := router.NewRouter(authH, authUC, "./public")

	if err := r.Run(":3301"); err != nil {
		log.Fatal(err)
	}
}

// sessionTTL はSESSION_TTL_HOURSからセッション有効期間を読み込みます。
// 未設定または不正な値の場合は0を返し、usecase側のデフォルトに委ねます。
func sessionTTL() time.Duration {
	raw := os.Getenv("SESSION_TTL_HOURS")
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		log.Printf("[WARN] invalid SESSION_TTL_HOURS %q; using default", raw)
		return 0
	}
	return time.Duration(hours) * time.Hour
}

// Package db はGORM/MySQLデータベース接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"patient_backend/internal/feature/auth/adapters"
	"patient_backend/internal/feature/auth/domain/entity"
)

const (
	// connectTimeout はDB接続リトライを諦めるまでの時間です。
	connectTimeout = 60 * time.Second
	// retryInterval は接続リトライの間隔です。
	retryInterval = 3 * time.Second
)

// Config はMySQL接続設定です。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// InstanceName はCloud SQLのUnixソケット接続名です。
	// 設定されている場合、Host/Portより優先されます。
	InstanceName string
}

// LoadConfig は環境変数から接続設定を読み込みます。
func LoadConfig() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN は設定からMySQLのDSN文字列を組み立てます。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// Open はMySQLへ接続します。起動直後のDBを待つため一定時間リトライします。
func Open(cfg Config) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	deadline := time.Now().Add(connectTimeout)
	for {
		db, err := gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", connectTimeout, err)
		}
		slog.Warn("DB connect failed, retrying...", "error", err)
		time.Sleep(retryInterval)
	}
}

// Migrate はpatientsテーブルとセッションフォールバック用のsessionsテーブルを作成します。
// RUN_MIGRATIONS=true のときのみ呼び出されます。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Patient{},
		&adapters.SessionModel{},
	)
}

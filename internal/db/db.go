// Package db opens the MySQL connection the repositories run on.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/sharebite/sharebite-backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dialAddr resolves the address portion of the DSN. A Cloud SQL instance
// name wins over DB_HOST; a bare path means a unix socket.
func dialAddr(cfg *config.Config) string {
	switch {
	case cfg.InstanceConnectionName != "":
		return fmt.Sprintf("unix(/cloudsql/%s)", cfg.InstanceConnectionName)
	case strings.HasPrefix(cfg.DBHost, "tcp(") || strings.HasPrefix(cfg.DBHost, "unix("):
		return cfg.DBHost
	case strings.HasPrefix(cfg.DBHost, "/"):
		return fmt.Sprintf("unix(%s)", cfg.DBHost)
	default:
		return fmt.Sprintf("tcp(%s:%s)", cfg.DBHost, cfg.DBPort)
	}
}

func BuildDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@%s/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, dialAddr(cfg), cfg.DBName)
}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(mysql.Open(BuildDSN(cfg)), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	return conn, nil
}

package database

import (
    "gorm.io/driver/postgres"
    "gorm.io/gorm"

    "github.com/d60-Lab/social-feed/config"
    "github.com/d60-Lab/social-feed/internal/model"
)

// InitDB 连接 PostgreSQL 并配置连接池
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
    if err != nil {
        return nil, err
    }
    sqlDB, err := db.DB()
    if err != nil {
        return nil, err
    }
    sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
    sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
    return db, nil
}

// AutoMigrate 建表（开发环境用，线上走迁移脚本）
func AutoMigrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &model.User{},
        &model.Post{},
        &model.Follow{},
        &model.Like{},
    )
}

// file: database/connect.go
package database

import (
	"github.com/Arainf/0XCTF25/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"log"
	"os"
	"time"
)

var DB *gorm.DB

const defaultDSN = "root:123456@tcp(localhost:3306)/oxctf?charset=utf8mb4&parseTime=True&loc=Local"

func Connect() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Println("warning: DATABASE_DSN is not set, using default DSN")
		dsn = defaultDSN
	}

	var err error
	// TranslateError 必须开启：Solve / HintUsage 的插入依赖
	// gorm.ErrDuplicatedKey 来识别并发重复，关掉它判重逻辑会失效
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	// 这对于解决 MySQL 的 'wait_timeout' 问题至关重要。
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Hint{},
		&models.Submission{},
		&models.Solve{},
		&models.HintUsage{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}

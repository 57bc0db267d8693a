// file: services/testdb_test.go
package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Arainf/0XCTF25/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB 每个测试一个独立的内存 SQLite 库。
// 单连接即可，事务经连接池自然串行，不会碰到共享缓存的表锁；
// 唯一索引行为与 MySQL 一致，足以验证判重仲裁逻辑。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("oxctf_test_%d", atomic.AddInt64(&testDBSeq, 1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Hint{},
		&models.Submission{},
		&models.Solve{},
		&models.HintUsage{},
	), "migrate test db")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "test-password-123",
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error, "create user %s", username)
	return user
}

func createTestChallenge(t *testing.T, db *gorm.DB, title string, points uint, flag string, state models.ChallengeState) models.Challenge {
	t.Helper()
	hash, err := HashFlag(flag)
	require.NoError(t, err, "hash flag")
	chal := models.Challenge{
		Title:       title,
		Category:    "misc",
		Description: "test challenge",
		Points:      points,
		FlagHash:    hash,
		State:       state,
		CreatedBy:   1,
	}
	require.NoError(t, db.Create(&chal).Error, "create challenge %s", title)
	return chal
}

func userScore(t *testing.T, db *gorm.DB, userID uint32) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.Score
}

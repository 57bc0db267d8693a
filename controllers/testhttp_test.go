// file: controllers/testhttp_test.go
package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Arainf/0XCTF25/database"
	"github.com/Arainf/0XCTF25/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB 每个测试一个独立的内存 SQLite 库，并挂到 database.DB 上，
// 让控制器按生产路径走全局连接。配置与 services 包的测试库保持一致。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("oxctf_ctl_test_%d", atomic.AddInt64(&testDBSeq, 1))
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

	database.DB = db
	return db
}

type respEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// invokeJSON 直接驱动单个 handler，绕过路由和鉴权中间件
func invokeJSON(t *testing.T, handler gin.HandlerFunc, method string, params gin.Params, body string) respEnvelope {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = params

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler(c)

	require.Equal(t, http.StatusOK, w.Code)
	var env respEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "decode response: %s", w.Body.String())
	return env
}

// file: controllers/user_controller_test.go
package controllers

import (
	"net/http"
	"testing"

	"github.com/Arainf/0XCTF25/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicate(t *testing.T) {
	setupTestDB(t)

	env := invokeJSON(t, Register, http.MethodPost, nil,
		`{"username":"alice","password":"password123","email":"alice@example.com"}`)
	require.Equal(t, 0, env.Code, env.Msg)

	// 用户名重复：唯一约束冲突按已注册处理，不能当成内部错误
	env = invokeJSON(t, Register, http.MethodPost, nil,
		`{"username":"alice","password":"password123","email":"other@example.com"}`)
	assert.Equal(t, 2001, env.Code, env.Msg)

	// 邮箱重复同理
	env = invokeJSON(t, Register, http.MethodPost, nil,
		`{"username":"alice2","password":"password123","email":"alice@example.com"}`)
	assert.Equal(t, 2001, env.Code, env.Msg)
}

func TestUpdateUserStatus(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{
		Username: "bob",
		Password: "password123",
		Email:    "bob@example.com",
	}
	require.NoError(t, db.Create(&user).Error)

	params := gin.Params{{Key: "id", Value: "1"}}

	env := invokeJSON(t, UpdateUserStatus, http.MethodPut, params, `{"status":"banned"}`)
	assert.Equal(t, 0, env.Code, env.Msg)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.Equal(t, models.StatusBanned, got.Status)

	// 把状态改成当前值是幂等操作，必须成功而不是报用户不存在
	env = invokeJSON(t, UpdateUserStatus, http.MethodPut, params, `{"status":"banned"}`)
	assert.Equal(t, 0, env.Code, env.Msg)

	env = invokeJSON(t, UpdateUserStatus, http.MethodPut,
		gin.Params{{Key: "id", Value: "4242"}}, `{"status":"banned"}`)
	assert.Equal(t, 4004, env.Code)
}

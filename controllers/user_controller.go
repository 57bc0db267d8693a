// file: controllers/user_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/Arainf/0XCTF25/database"
	"github.com/Arainf/0XCTF25/models"
	"github.com/Arainf/0XCTF25/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	newUser := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}

	// 不做先查后插，直接插入并按唯一约束冲突判重，
	// 并发注册同名用户也能得到一致的判重结果
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, 2001, "用户名或邮箱已被注册")
			return
		}
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"id":       newUser.ID,
		"username": newUser.Username,
		"role":     newUser.Role,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Error(c, 2002, "用户名或密码错误")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Error(c, 2002, "用户名或密码错误")
		return
	}
	if user.Status == models.StatusBanned {
		utils.Error(c, 2004, "账号已被封禁")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Error(c, 5000, "Token 生成失败")
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token":    token,
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// --- 登录用户接口 ---

// GetMe 当前用户信息，附带解题数
func GetMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint32)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	var solveCount int64
	database.DB.Model(&models.Solve{}).Where("user_id = ?", userID).Count(&solveCount)

	utils.Success(c, "success", gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"score":       user.Score,
		"role":        user.Role,
		"solve_count": solveCount,
		"created_at":  user.CreatedAt,
	})
}

// --- 管理员接口 ---

// UpdateUserStatus 封禁/解封用户
func UpdateUserStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	if req.Status != models.StatusActive && req.Status != models.StatusBanned {
		utils.Error(c, 1001, "status 取值无效（active/banned）")
		return
	}

	// 先确认存在再更新：MySQL 默认只统计实际变更的行数，
	// 把状态改成当前值时 RowsAffected 为 0，不能据此判定用户不存在
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}

	if err := database.DB.Model(&user).Update("status", req.Status).Error; err != nil {
		utils.Error(c, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "User status updated", nil)
}

// file: controllers/leaderboard_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/Arainf/0XCTF25/services"
	"github.com/Arainf/0XCTF25/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetLeaderboard —— 排行榜，读时现算，匿名可访问
func GetLeaderboard(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, _ := strconv.Atoi(limitStr)

	entries, err := boardSvc.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		utils.Error(c, 5000, "排行榜查询失败")
		return
	}

	utils.Success(c, "success", gin.H{
		"total":       len(entries),
		"leaderboard": entries,
	})
}

// GetUserRank —— 单用户名次
func GetUserRank(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		utils.Error(c, 1001, "用户 ID 无效")
		return
	}

	rank, err := boardSvc.GetUserRank(c.Request.Context(), uint32(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, 4004, "用户不存在")
			return
		}
		if errors.Is(err, services.ErrNotRanked) {
			utils.Error(c, 4004, "该用户不参与排名")
			return
		}
		utils.Error(c, 5000, "排名查询失败")
		return
	}

	utils.Success(c, "success", gin.H{"rank": rank})
}

// file: controllers/record_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/Arainf/0XCTF25/database"
	"github.com/Arainf/0XCTF25/models"
	"github.com/Arainf/0XCTF25/utils"
	"github.com/gin-gonic/gin"
)

// GetUserSolves 查询某用户的解题记录（公开，不含任何提交原文）
func GetUserSolves(c *gin.Context) {
	userID, _ := strconv.Atoi(c.Param("id"))

	var solves []models.Solve
	database.DB.Where("user_id = ?", userID).Order("solved_at asc").Find(&solves)

	type SolveInfo struct {
		ChallengeID uint32 `json:"challenge_id"`
		Title       string `json:"title"`
		Points      uint   `json:"points"`
		SolvedAt    string `json:"solved_at"`
	}
	result := make([]SolveInfo, 0, len(solves))
	for _, solve := range solves {
		var chal models.Challenge
		database.DB.Select("title").First(&chal, solve.ChallengeID)
		result = append(result, SolveInfo{
			ChallengeID: solve.ChallengeID,
			Title:       chal.Title,
			Points:      solve.Points,
			SolvedAt:    solve.SolvedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", result)
}

// GetSubmissionLogs 管理员查询提交审计日志，提交原文只在这里出接口
func GetSubmissionLogs(c *gin.Context) {
	type LogDetail struct {
		ID            uint64    `json:"id"`
		ChallengeID   uint32    `json:"challenge_id"`
		Title         string    `json:"title"`
		UserID        uint32    `json:"user_id"`
		Username      string    `json:"username"`
		SubmittedFlag string    `json:"submitted_flag"`
		IsCorrect     bool      `json:"is_correct"`
		SubmittedAt   time.Time `json:"submitted_at"`
		IPAddress     string    `json:"ip_address"`
		UserAgent     string    `json:"user_agent"`
	}

	db := database.DB.Table("oxctf_submission l").
		Select("l.id, l.challenge_id, c.title, l.user_id, u.username, l.submitted_flag, l.is_correct, l.submitted_at, l.ip_address, l.user_agent").
		Joins("LEFT JOIN oxctf_challenge c ON l.challenge_id = c.id").
		Joins("LEFT JOIN oxctf_user u ON l.user_id = u.id")

	if challengeID := c.Query("challenge_id"); challengeID != "" {
		db = db.Where("l.challenge_id = ?", challengeID)
	}
	if userID := c.Query("user_id"); userID != "" {
		db = db.Where("l.user_id = ?", userID)
	}
	if result := c.Query("result"); result == "correct" {
		db = db.Where("l.is_correct = ?", true)
	} else if result == "wrong" {
		db = db.Where("l.is_correct = ?", false)
	}
	if ip := c.Query("ip"); ip != "" {
		db = db.Where("l.ip_address = ?", ip)
	}

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")
	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var results []LogDetail
	db.Order("l.submitted_at desc").Offset((page - 1) * limit).Limit(limit).Find(&results)

	utils.Success(c, "success", gin.H{
		"page":        page,
		"limit":       limit,
		"submissions": results,
	})
}

// CompareFlagSubmissions 对比提交过相同内容的记录，排查跨账号抄袭
func CompareFlagSubmissions(c *gin.Context) {
	flag := c.Query("flag")
	if flag == "" {
		utils.Error(c, 1001, "Missing 'flag' query parameter")
		return
	}

	type CompareResult struct {
		UserID      uint32    `json:"user_id"`
		Username    string    `json:"username"`
		ChallengeID uint32    `json:"challenge_id"`
		IsCorrect   bool      `json:"is_correct"`
		SubmittedAt time.Time `json:"submitted_at"`
		IPAddress   string    `json:"ip_address"`
	}

	var results []CompareResult
	database.DB.Table("oxctf_submission l").
		Select("l.user_id, u.username, l.challenge_id, l.is_correct, l.submitted_at, l.ip_address").
		Joins("JOIN oxctf_user u ON l.user_id = u.id").
		Where("l.submitted_flag = ?", flag).
		Order("l.submitted_at asc").
		Find(&results)

	utils.Success(c, "success", gin.H{
		"flag_value":  flag,
		"submissions": results,
	})
}

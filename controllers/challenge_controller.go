// file: controllers/challenge_controller.go
package controllers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Arainf/0XCTF25/database"
	"github.com/Arainf/0XCTF25/dto"
	"github.com/Arainf/0XCTF25/models"
	"github.com/Arainf/0XCTF25/services"
	"github.com/Arainf/0XCTF25/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateChallenge —— 管理员建题，Flag 哈希后落库，未提供 Flag 时随机生成并只回显一次
func CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	if req.Title == "" || req.Category == "" || req.Description == "" || req.Points == 0 {
		utils.Error(c, 1001, "缺少必填字段")
		return
	}
	if req.Difficulty != "easy" && req.Difficulty != "medium" && req.Difficulty != "hard" {
		utils.Error(c, 1001, "difficulty 取值无效（easy/medium/hard）")
		return
	}
	for i, h := range req.Hints {
		if strings.TrimSpace(h.Text) == "" {
			utils.Error(c, 1002, "第 "+strconv.Itoa(i+1)+" 条提示内容为空")
			return
		}
	}

	generatedFlag := ""
	plainFlag := req.Flag
	if plainFlag == "" {
		plainFlag = utils.GenerateFlag()
		generatedFlag = plainFlag
	}

	flagHash, err := services.HashFlag(plainFlag)
	if err != nil {
		utils.Error(c, 5000, "Flag 哈希失败: "+err.Error())
		return
	}

	userID := c.MustGet("user_id").(uint32)

	chal := models.Challenge{
		Title:       req.Title,
		Category:    req.Category,
		Author:      req.Author,
		Description: req.Description,
		Difficulty:  models.ChallengeDifficulty(req.Difficulty),
		Points:      req.Points,
		FlagHash:    flagHash,
		CreatedBy:   userID,
	}
	for i, h := range req.Hints {
		chal.Hints = append(chal.Hints, models.Hint{
			HintIndex: uint(i),
			Text:      strings.TrimSpace(h.Text),
			Cost:      h.Cost,
		})
	}

	if err := database.DB.Create(&chal).Error; err != nil {
		utils.Error(c, 5000, "创建题目失败: "+err.Error())
		return
	}

	resp := gin.H{"id": chal.ID}
	if generatedFlag != "" {
		resp["flag"] = generatedFlag
	}
	utils.Success(c, "Challenge created successfully", resp)
}

// ListChallenges —— 用户可见的题目列表（仅已发布），登录用户附带解题标记
func ListChallenges(c *gin.Context) {
	var challenges []models.Challenge
	if err := database.DB.
		Where("state = ?", models.ChallengeStatePublished).
		Order("category ASC, points ASC").
		Find(&challenges).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	solved := map[uint32]bool{}
	if userIDAny, exists := c.Get("user_id"); exists {
		var solves []models.Solve
		database.DB.Where("user_id = ?", userIDAny.(uint32)).Find(&solves)
		for _, s := range solves {
			solved[s.ChallengeID] = true
		}
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, dto.ChallengeItemResp{
			ID:          ch.ID,
			Title:       ch.Title,
			Category:    ch.Category,
			Difficulty:  string(ch.Difficulty),
			Points:      ch.Points,
			SolvedCount: ch.SolvedCount,
			Solved:      solved[ch.ID],
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      len(items),
		"challenges": items,
	})
}

// GetChallengeDetail —— 题目详情，提示只给出价格，已付费解锁的才返回内容
func GetChallengeDetail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.Preload("Hints", func(db *gorm.DB) *gorm.DB {
		return db.Order("hint_index ASC")
	}).First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}
	if challenge.State != models.ChallengeStatePublished {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	var userID uint32
	loggedIn := false
	if userIDAny, exists := c.Get("user_id"); exists {
		userID = userIDAny.(uint32)
		loggedIn = true
	}

	unlocked := map[uint]bool{}
	solvedByUser := false
	if loggedIn {
		var err error
		unlocked, err = hintSvc.UnlockedHints(c.Request.Context(), userID, challenge.ID)
		if err != nil {
			utils.Error(c, 5000, "提示查询失败")
			return
		}
		var prior models.Solve
		if database.DB.Where("user_id = ? AND challenge_id = ?", userID, challenge.ID).
			First(&prior).Error == nil {
			solvedByUser = true
		}
	}

	hints := make([]dto.HintResp, 0, len(challenge.Hints))
	for _, h := range challenge.Hints {
		item := dto.HintResp{Index: h.HintIndex, Cost: h.Cost, Unlocked: unlocked[h.HintIndex]}
		if item.Unlocked {
			item.Text = h.Text
		}
		hints = append(hints, item)
	}

	utils.Success(c, "success", dto.ChallengeDetailResp{
		ID:          challenge.ID,
		Title:       challenge.Title,
		Category:    challenge.Category,
		Author:      challenge.Author,
		Description: challenge.Description,
		Difficulty:  string(challenge.Difficulty),
		Points:      challenge.Points,
		SolvedCount: challenge.SolvedCount,
		Solved:      solvedByUser,
		Hints:       hints,
	})
}

// SubmitFlag —— 提交 Flag，所有业务结局按 SubmitOutcome 分支映射响应
func SubmitFlag(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.Flag == "" {
		utils.Error(c, 1001, "flag 不能为空")
		return
	}

	userID := c.MustGet("user_id").(uint32)

	result, err := solveSvc.Submit(
		c.Request.Context(),
		userID,
		uint32(challengeID),
		req.Flag,
		c.ClientIP(),
		c.Request.UserAgent(),
		time.Now(),
	)
	if err != nil {
		// 内部故障才走到这里，业务性冲突都在 Outcome 里，不会当错误记
		log.Printf("submit flag failed: user=%d challenge=%d: %v", userID, challengeID, err)
		utils.Error(c, 5000, "提交处理失败，请稍后重试")
		return
	}

	switch result.Outcome {
	case services.SubmitRateLimited:
		utils.RateLimited(c, result.RetryAfter)
	case services.SubmitNotFound, services.SubmitNotPublished:
		// 未发布的题目对用户等同不存在
		utils.Error(c, 4004, "题目不存在")
	case services.SubmitAlreadySolved:
		utils.Error(c, 2001, "你已解出此题")
	case services.SubmitIncorrect:
		utils.Success(c, "success", dto.SubmitFlagResp{Correct: false, Message: "Flag 错误"})
	case services.SubmitCorrect:
		utils.Success(c, "success", dto.SubmitFlagResp{
			Correct:       true,
			Message:       "Flag 正确！",
			PointsAwarded: result.PointsAwarded,
		})
	default:
		utils.Error(c, 5000, "未知的提交结果")
	}
}

// UpdateChallenge —— 管理员编辑题目；改 Flag 只影响之后的提交，已有 Solve 不回溯
func UpdateChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Difficulty != nil {
		d := strings.ToLower(strings.TrimSpace(*req.Difficulty))
		if d != "easy" && d != "medium" && d != "hard" {
			utils.Error(c, 1001, "difficulty 取值无效（easy/medium/hard）")
			return
		}
		updates["difficulty"] = d
	}
	if req.Points != nil {
		if *req.Points == 0 {
			utils.Error(c, 1001, "points 必须大于 0")
			return
		}
		updates["points"] = *req.Points
	}
	if req.Flag != nil {
		flag := strings.TrimSpace(*req.Flag)
		if flag == "" {
			utils.Error(c, 1002, "flag 不能为空")
			return
		}
		flagHash, err := services.HashFlag(flag)
		if err != nil {
			utils.Error(c, 5000, "Flag 哈希失败: "+err.Error())
			return
		}
		updates["flag_hash"] = flagHash
	}

	if len(updates) == 0 {
		utils.Error(c, 1001, "没有可更新的字段")
		return
	}

	if err := database.DB.Model(&challenge).Updates(updates).Error; err != nil {
		utils.Error(c, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge updated successfully", nil)
}

// UpdateChallengeState —— 发布/下架切换
func UpdateChallengeState(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateStateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	state := models.ChallengeState(strings.ToLower(strings.TrimSpace(req.State)))
	if state != models.ChallengeStatePublished && state != models.ChallengeStateHidden {
		utils.Error(c, 1001, "state 取值无效（published/hidden）")
		return
	}

	// 先确认存在再更新：MySQL 默认只统计实际变更的行数，
	// 重复发布已发布的题目时 RowsAffected 为 0，不能据此判定题目不存在
	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	if err := database.DB.Model(&challenge).Update("state", state).Error; err != nil {
		utils.Error(c, 5000, "更新失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge state updated", gin.H{"state": state})
}

// DeleteChallenge —— 删题级联清掉 Solve/Hint/HintUsage；Submission 审计日志只追加，保留
func DeleteChallenge(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var challenge models.Challenge
	if err := database.DB.First(&challenge, id).Error; err != nil {
		utils.Error(c, 4004, "题目不存在")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", id).Delete(&models.Solve{}).Error; err != nil {
			return err
		}
		if err := tx.Where("challenge_id = ?", id).Delete(&models.HintUsage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("challenge_id = ?", id).Delete(&models.Hint{}).Error; err != nil {
			return err
		}
		return tx.Delete(&challenge).Error
	})
	if err != nil {
		utils.Error(c, 5000, "删除失败: "+err.Error())
		return
	}
	utils.Success(c, "Challenge deleted", nil)
}

// AdminListChallenges —— 管理员查询题目列表（已发布/隐藏均可，支持筛选+分页）
func AdminListChallenges(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	diff := strings.TrimSpace(c.Query("difficulty"))
	state := strings.TrimSpace(c.Query("state"))
	kw := strings.TrimSpace(c.Query("keyword"))
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.DB.Model(&models.Challenge{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if diff != "" {
		db = db.Where("difficulty = ?", models.ChallengeDifficulty(diff))
	}
	if state != "" {
		db = db.Where("state = ?", models.ChallengeState(state))
	}
	if kw != "" {
		like := "%" + kw + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		utils.Error(c, 5000, "查询失败: "+err.Error())
		return
	}

	var list []models.Challenge
	if err := db.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		utils.Error(c, 5000, "查询失败: "+err.Error())
		return
	}

	items := make([]dto.AdminChallengeItemResp, 0, len(list))
	for _, ch := range list {
		items = append(items, dto.AdminChallengeItemResp{
			ID:          ch.ID,
			Title:       ch.Title,
			Category:    ch.Category,
			Difficulty:  string(ch.Difficulty),
			State:       string(ch.State),
			Points:      ch.Points,
			SolvedCount: ch.SolvedCount,
			UpdatedAt:   ch.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.Success(c, "success", gin.H{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"challenges": items,
	})
}

// file: controllers/hint_controller.go
package controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/Arainf/0XCTF25/services"
	"github.com/Arainf/0XCTF25/utils"
	"github.com/gin-gonic/gin"
)

// UnlockHint —— 付费解锁提示，重复解锁不二次扣分
func UnlockHint(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))
	hintIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil || hintIndex < 0 {
		utils.Error(c, 1001, "提示序号无效")
		return
	}

	userID := c.MustGet("user_id").(uint32)

	result, err := hintSvc.Unlock(
		c.Request.Context(),
		userID,
		uint32(challengeID),
		uint(hintIndex),
		time.Now(),
	)
	if err != nil {
		log.Printf("unlock hint failed: user=%d challenge=%d index=%d: %v", userID, challengeID, hintIndex, err)
		utils.Error(c, 5000, "解锁处理失败，请稍后重试")
		return
	}

	switch result.Outcome {
	case services.HintNotFound:
		utils.Error(c, 4004, "题目或提示不存在")
	case services.HintAlreadyUsed:
		utils.Error(c, 2002, "该提示已解锁过，可在题目详情中查看")
	case services.HintUnlocked:
		utils.Success(c, "Hint unlocked", gin.H{
			"text": result.Text,
			"cost": result.Cost,
		})
	default:
		utils.Error(c, 5000, "未知的解锁结果")
	}
}

// file: services/score_service.go
package services

import (
	"github.com/Arainf/0XCTF25/models"
	"gorm.io/gorm"
)

// Award 以相对增量调整用户总分：score = score + delta，单条 UPDATE 原子完成。
// 解题传正值，解锁提示传负值。绝不允许先读再写两步走，并发下会丢更新。
// 全仓库只有这里写 score 字段。
func Award(tx *gorm.DB, userID uint32, delta int) error {
	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("score", gorm.Expr("score + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

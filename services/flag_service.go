// file: services/flag_service.go
package services

import (
	"errors"
	"golang.org/x/crypto/bcrypt"
)

// Flag 与账号密码用同一套哈希原语（bcrypt），盐编码在哈希串内部，
// 校验耗时与凭据校验一致，爆破成本也一致。

// HashFlag 生成 Flag 的 bcrypt 哈希
func HashFlag(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyFlag 校验提交的 Flag 是否正确。
// 哈希损坏等内部错误一律按"不正确"返回，同时上抛错误，绝不按正确处理。
func VerifyFlag(attempt, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(attempt))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

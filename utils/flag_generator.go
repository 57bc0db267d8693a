// file: utils/flag_generator.go
package utils

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
)

// GenerateFlag 生成随机 Flag，供管理员建题时未指定 Flag 的情况使用。
// 明文只在创建响应里返回一次，落库的只有哈希。
func GenerateFlag() string {
	part1 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	part2 := strings.Replace(uuid.New().String(), "-", "", -1)[:12]
	return fmt.Sprintf("0xCTF{%s-%s}", part1, part2)
}

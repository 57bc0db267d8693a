// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type HintReq struct {
	Text string `json:"text"`
	Cost uint   `json:"cost"`
}

type CreateChallengeReq struct {
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"` // easy / medium / hard
	Points      uint      `json:"points"`
	Flag        string    `json:"flag"` // 明文只在请求里出现，落库前哈希
	Hints       []HintReq `json:"hints"`
}

// Normalize: 清洗与默认值
func (r *CreateChallengeReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = strings.TrimSpace(r.Description)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	r.Flag = strings.TrimSpace(r.Flag)

	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
}

type UpdateChallengeReq struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty"`
	Points      *uint   `json:"points"`
	Flag        *string `json:"flag"` // 改 Flag 不回溯撤销已有 Solve
}

type UpdateStateReq struct {
	State string `json:"state"` // published / hidden
}

type SubmitFlagReq struct {
	Flag      string `json:"flag"`
	FlagCamel string `json:"Flag"` // 兼容旧客户端
}

func (r *SubmitFlagReq) Normalize() {
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}
	r.Flag = strings.TrimSpace(r.Flag)
}

// ========== 响应 DTO ==========

type ChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	Points      uint   `json:"points"`
	SolvedCount uint   `json:"solved_count"`
	Solved      bool   `json:"solved"`
}

type HintResp struct {
	Index    uint   `json:"index"`
	Cost     uint   `json:"cost"`
	Unlocked bool   `json:"unlocked"`
	Text     string `json:"text,omitempty"` // 仅已解锁时返回
}

type ChallengeDetailResp struct {
	ID          uint32     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Author      string     `json:"author"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	Points      uint       `json:"points"`
	SolvedCount uint       `json:"solved_count"`
	Solved      bool       `json:"solved"`
	Hints       []HintResp `json:"hints"`
}

type SubmitFlagResp struct {
	Correct       bool   `json:"correct"`
	Message       string `json:"message"`
	PointsAwarded uint   `json:"points_awarded,omitempty"`
}

// ====== Admin 专用响应 DTO ======

type AdminChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	State       string `json:"state"`
	Points      uint   `json:"points"`
	SolvedCount uint   `json:"solved_count"`
	UpdatedAt   string `json:"updated_at"`
}

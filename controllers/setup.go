// file: controllers/setup.go
package controllers

import (
	"github.com/Arainf/0XCTF25/services"
)

var (
	solveSvc *services.SolveService
	hintSvc  *services.HintService
	boardSvc *services.LeaderboardService
)

// Setup 注入各服务实例，main 在建好限流后端之后调用。
// 换限流实现（内存/Redis）只动 main 的装配代码，handler 无感知。
func Setup(solve *services.SolveService, hint *services.HintService, board *services.LeaderboardService) {
	solveSvc = solve
	hintSvc = hint
	boardSvc = board
}

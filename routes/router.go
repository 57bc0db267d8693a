// file: routes/router.go
package routes

import (
	"github.com/Arainf/0XCTF25/controllers"
	"github.com/Arainf/0XCTF25/middlewares"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 用户模块 ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
			// 排名与解题记录公开可查
			usersPublic.GET("/:id/rank", controllers.GetUserRank)
			usersPublic.GET("/:id/solves", controllers.GetUserSolves)
		}
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(middlewares.JWTAuthMiddleware())
		{
			usersAuth.GET("/me", controllers.GetMe)
		}

		// --- 排行榜（匿名可访问） ---
		apiV1.GET("/leaderboard", controllers.GetLeaderboard)

		// --- 题目模块 ---
		challengeRoutes := apiV1.Group("/challenges")
		{
			// 读接口匿名可访问，登录后附带个人解题/提示状态
			challengeRoutes.GET("", middlewares.JWTTryAuthMiddleware(), controllers.ListChallenges)
			challengeRoutes.GET("/:id", middlewares.JWTTryAuthMiddleware(), controllers.GetChallengeDetail)

			// 提交与提示必须登录
			challengeRoutes.POST("/:id/submit", middlewares.JWTAuthMiddleware(), controllers.SubmitFlag)
			challengeRoutes.POST("/:id/hints/:index/unlock", middlewares.JWTAuthMiddleware(), controllers.UnlockHint)

			// 管理员接口
			challengeRoutes.POST("", middlewares.JWTAuthMiddleware(), middlewares.AdminAuthMiddleware(), controllers.CreateChallenge)
			challengeRoutes.PUT("/:id", middlewares.JWTAuthMiddleware(), middlewares.AdminAuthMiddleware(), controllers.UpdateChallenge)
			challengeRoutes.PUT("/:id/state", middlewares.JWTAuthMiddleware(), middlewares.AdminAuthMiddleware(), controllers.UpdateChallengeState)
			challengeRoutes.DELETE("/:id", middlewares.JWTAuthMiddleware(), middlewares.AdminAuthMiddleware(), controllers.DeleteChallenge)
		}

		// --- 管理员模块 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.AdminAuthMiddleware())
		{
			adminRoutes.GET("/challenges", controllers.AdminListChallenges)
			adminRoutes.GET("/submissions", controllers.GetSubmissionLogs)
			adminRoutes.GET("/submissions/compare", controllers.CompareFlagSubmissions)
			adminRoutes.PUT("/users/:id/status", controllers.UpdateUserStatus)
		}
	}

	return r
}

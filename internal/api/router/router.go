package router

import (
	"cutmatch-go/internal/api/handler"
	"cutmatch-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	hairstyleHandler *handler.HairstyleHandler,
	reviewHandler *handler.ReviewHandler,
	favoriteHandler *handler.FavoriteHandler,
	relationHandler *handler.RelationHandler,
	searchHandler *handler.SearchHandler,
	adminMiddleware gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		// 公开接口
		users.GET("/:id", middleware.OptionalAuth(), userHandler.GetByID)
		users.GET("/:id/posts", middleware.OptionalAuth(), postHandler.ListByUser)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.GET("/me", userHandler.GetMe)
			usersAuth.POST("/me/avatar", userHandler.UploadAvatar)
			usersAuth.GET("/me/favorites", favoriteHandler.ListMine)
			usersAuth.PUT("/:id", userHandler.Update)
			usersAuth.DELETE("/:id", userHandler.Delete)
		}

		// 管理员接口
		admin := users.Group("", middleware.AuthRequired(), adminMiddleware)
		{
			admin.GET("", userHandler.List)
			admin.POST("/:id/restore", userHandler.Restore)
			admin.POST("/:id/promote", userHandler.Promote)
		}
	}

	// --- 帖子模块 ---
	posts := v1.Group("/posts")
	{
		// 公开接口（登录用户附带点赞状态）
		posts.GET("", middleware.OptionalAuth(), postHandler.Feed)
		posts.GET("/:post_id", middleware.OptionalAuth(), postHandler.GetByID)
		posts.GET("/:post_id/comments", commentHandler.ListByPost)

		postsAuth := posts.Group("", middleware.AuthRequired())
		{
			postsAuth.POST("", postHandler.Create)
			postsAuth.PUT("/:post_id", postHandler.Update)
			postsAuth.DELETE("/:post_id", postHandler.Delete)
			postsAuth.POST("/:post_id/like", postHandler.ToggleLike)
			postsAuth.POST("/:post_id/comments", commentHandler.Create)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", middleware.AuthRequired())
	{
		comments.POST("/:id/reply", commentHandler.Reply)
		comments.PUT("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// --- 发型目录模块 ---
	hairstyles := v1.Group("/hairstyles")
	{
		hairstyles.GET("", middleware.OptionalAuth(), hairstyleHandler.List)
		hairstyles.GET("/:id", middleware.OptionalAuth(), hairstyleHandler.GetByID)
		hairstyles.GET("/:id/reviews", reviewHandler.ListByHairstyle)

		hairstylesAuth := hairstyles.Group("", middleware.AuthRequired())
		{
			hairstylesAuth.POST("/:id/reviews", reviewHandler.Create)
			hairstylesAuth.POST("/:id/favorite", favoriteHandler.Add)
			hairstylesAuth.DELETE("/:id/favorite", favoriteHandler.Remove)
		}

		// 管理员接口
		admin := hairstyles.Group("", middleware.AuthRequired(), adminMiddleware)
		{
			admin.POST("", hairstyleHandler.Create)
			admin.PUT("/:id", hairstyleHandler.Update)
			admin.DELETE("/:id", hairstyleHandler.Delete)
		}
	}

	// --- 评价模块 ---
	reviews := v1.Group("/reviews", middleware.AuthRequired())
	{
		reviews.PUT("/:review_id", reviewHandler.Update)
		reviews.DELETE("/:review_id", reviewHandler.Delete)
	}

	// --- 关注关系模块 ---
	relations := v1.Group("/relations", middleware.AuthRequired())
	{
		relations.POST("/follow", relationHandler.Follow)
		relations.POST("/unfollow", relationHandler.Unfollow)
		relations.GET("/:id/following", relationHandler.GetFollowingList)
		relations.GET("/:id/followers", relationHandler.GetFollowerList)
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/hairstyles", middleware.OptionalAuth(), searchHandler.SearchHairstyles)
	}
}

package router

import (
	"Lee_Social/internal/handler"
	"Lee_Social/internal/middleware"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, emailCfg pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	emailSvc := service.NewEmailService(emailCfg)

	user := handler.NewUserHandler(db, emailSvc)
	email := handler.NewEmailHandler(emailSvc)
	connection := handler.NewConnectionHandler(db)
	community := handler.NewCommunityHandler(db)
	joinRequest := handler.NewJoinRequestHandler(db)
	invitation := handler.NewInvitationHandler(db)
	post := handler.NewPostHandler(db)
	event := handler.NewEventHandler(db)
	follow := handler.NewFollowHandler(db)

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token 相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 连接相关接口
	connectionGroup := r.Group("/api/connection")
	connectionGroup.Use(middleware.AuthMiddleware())
	{
		connectionGroup.POST("/request", connection.Request)
		connectionGroup.POST("/:id/respond", connection.Respond)
		connectionGroup.DELETE("/user/:user_id", connection.Remove)
		connectionGroup.GET("/status", connection.Status)
		connectionGroup.GET("/list", connection.List)
		connectionGroup.GET("/pending", connection.ListPending)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/community")
	communityGroup.Use(middleware.AuthMiddleware())
	{
		communityGroup.POST("/create", community.Create)
		communityGroup.GET("/list", community.List)
		communityGroup.GET("/:id", community.Get)
		communityGroup.PATCH("/:id", community.Update)
		communityGroup.DELETE("/:id", community.Delete)
		communityGroup.POST("/:id/join", community.Join)
		communityGroup.POST("/:id/leave", community.Leave)
		communityGroup.GET("/:id/members", community.ListMembers)
		communityGroup.DELETE("/:id/members/:member_id", community.RemoveMember)
		communityGroup.PATCH("/:id/members/:member_id/role", community.UpdateMemberRole)
		communityGroup.GET("/:id/join-requests", joinRequest.ListPending)
		communityGroup.GET("/:id/events", event.ListByCommunity)
	}

	// 加入申请相关接口
	joinRequestGroup := r.Group("/api/join-request")
	joinRequestGroup.Use(middleware.AuthMiddleware())
	{
		joinRequestGroup.POST("/", joinRequest.Submit)
		joinRequestGroup.POST("/:id/review", joinRequest.Review)
		joinRequestGroup.DELETE("/:id", joinRequest.Cancel)
	}

	// 邀请相关接口
	invitationGroup := r.Group("/api/invitation")
	invitationGroup.Use(middleware.AuthMiddleware())
	{
		invitationGroup.POST("/", invitation.Invite)
		invitationGroup.POST("/:id/respond", invitation.Respond)
		invitationGroup.DELETE("/:id", invitation.Revoke)
		invitationGroup.GET("/mine", invitation.ListMine)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/create", post.Create)
		postGroup.GET("/list", post.List)
		postGroup.GET("/:id", post.Get)
		postGroup.DELETE("/:id", post.Delete)
	}

	// 活动相关接口
	eventGroup := r.Group("/api/event")
	eventGroup.Use(middleware.AuthMiddleware())
	{
		eventGroup.POST("/create", event.Create)
		eventGroup.PATCH("/:id", event.Update)
		eventGroup.DELETE("/:id", event.Delete)
	}

	// 用户关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(middleware.AuthMiddleware())
	{
		followGroup.POST("/", follow.Follow)
		followGroup.GET("/followings", follow.ListFollowings)
		followGroup.GET("/followers", follow.ListFollowers)
		followGroup.GET("/relation", follow.Relation)
	}

	return r
}

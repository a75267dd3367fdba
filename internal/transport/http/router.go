package http

import (
	"net/http"
	"time"

	"student-link/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Services bundles the use cases the router exposes.
type Services struct {
	Auth          *app.AuthService
	Quiz          *app.QuizService
	Social        *app.SocialService
	Network       *app.NetworkService
	Events        *app.EventService
	Notifications *app.NotificationService
	Admin         *app.AdminService
}

// Handler holds the HTTP adapters for every route.
type Handler struct {
	svc      Services
	loc      *time.Location
	upgrader websocket.Upgrader
}

func NewHandler(svc Services, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		svc: svc,
		loc: loc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// NewRouter wires every route onto a gin engine.
func NewRouter(svc Services, loc *time.Location) *gin.Engine {
	h := NewHandler(svc, loc)

	router := gin.New()
	router.Use(requestID(), gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	user := router.Group("/")
	user.Use(h.requireUser())
	{
		user.POST("/logout", h.Logout)

		user.GET("/dashboard", h.Dashboard)
		user.GET("/quiz/instructions/:id", h.Instructions)
		user.GET("/quiz/start/:id", h.StartQuiz)
		user.POST("/quiz/submit/:id", h.SubmitQuiz)
		user.GET("/leaderboard", h.Leaderboard)

		user.GET("/timeline", h.Timeline)
		user.POST("/post", h.CreatePost)
		user.POST("/like/:postId", h.ToggleLike)
		user.POST("/comment/:postId", h.Comment)
		user.GET("/comments/:postId", h.Comments)
		user.GET("/profile/:id", h.Profile)
		user.POST("/update-profile", h.UpdateProfile)
		user.POST("/profile/update-academic", h.UpdateAcademic)
		user.GET("/resources", h.Resources)
		user.POST("/upload-resource", h.UploadResource)

		user.GET("/friends", h.Network)
		user.POST("/friend-request/send/:id", h.SendFriendRequest)
		user.POST("/friends/accept/:id", h.AcceptFriendRequest)
		user.POST("/friends/reject/:id", h.RejectFriendRequest)
		user.GET("/chat/:id", h.OpenChat)
		user.POST("/chat/send/:id", h.SendMessage)
		user.GET("/ws/chat", h.ChatSocket)

		user.GET("/notifications", h.Notifications)
		user.POST("/notifications/mark-all-read", h.MarkNotificationsRead)

		user.GET("/events", h.Events)
		user.POST("/events/add", h.SubmitEvent)
	}

	admin := router.Group("/admin")
	admin.Use(h.requireUser(), h.requireAdmin())
	{
		admin.GET("/dashboard", h.AdminStats)
		admin.GET("/quizzes", h.AdminQuizzes)
		admin.POST("/create-session", h.CreateSession)
		admin.GET("/quiz/:id/questions", h.ListQuestions)
		admin.POST("/quiz/:id/import-text", h.ImportQuestions)
		admin.POST("/delete-session/:id", h.DeleteSession)
		admin.GET("/manage-events", h.ManageEvents)
		admin.POST("/approve-event/:id", h.ApproveEvent)
		admin.POST("/delete-event/:id", h.DeleteEvent)
		admin.POST("/broadcast", h.Broadcast)
		admin.GET("/verify-users", h.VerifyUsers)
		admin.POST("/toggle-verify/:id", h.ToggleVerify)
	}

	return router
}

package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sangha/internal/auth"
	"sangha/internal/chanting"
	"sangha/internal/cloudinary"
	"sangha/internal/content"
	"sangha/internal/dashboard"
	"sangha/internal/homework"
	"sangha/internal/mentorship"
	"sangha/internal/notification"
	"sangha/internal/profile"
	"sangha/internal/quiz"
	"sangha/internal/resource"
	"sangha/internal/roles"
	"sangha/internal/session"
)

// Uploader stores files and returns their public location.
type Uploader interface {
	UploadBytes(ctx context.Context, kind cloudinary.Kind, data []byte, filename string) (*cloudinary.UploadResult, error)
	UploadBase64(ctx context.Context, kind cloudinary.Kind, data string) (*cloudinary.UploadResult, error)
}

// HealthCheck reports dependency health by name.
type HealthCheck func(ctx context.Context) map[string]bool

// Deps are the services behind the HTTP surface. Uploader and Health may be nil.
type Deps struct {
	Auth          *auth.Service
	Blacklist     auth.Blacklist
	Resolver      *roles.Resolver
	Profiles      *profile.Service
	Sessions      *session.Service
	Homework      *homework.Service
	Quizzes       *quiz.Service
	Resources     *resource.Service
	Mentorship    *mentorship.Service
	Notifications *notification.Service
	Chanting      *chanting.Service
	Content       *content.Service
	Dashboard     *dashboard.Service
	Uploader      Uploader
	Health        HealthCheck

	SigningKey string
	Issuer     string
	WebDir     string
	Log        *zap.Logger
}

// API holds the handlers.
type API struct {
	Deps
	log *zap.Logger
}

// New creates the handler set.
func New(d Deps) *API {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &API{Deps: d, log: log}
}

// Register mounts every route on r.
func (a *API) Register(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", a.healthz)

	v1 := r.Group("/v1")

	pub := v1.Group("/auth")
	pub.POST("/signup", a.signUp)
	pub.POST("/signin", a.signIn)
	pub.POST("/google", a.signInWithGoogle)
	pub.POST("/refresh", a.refresh)

	// Signed in, profile optional.
	authed := v1.Group("", auth.UserAuth(a.SigningKey, a.Issuer, a.Blacklist), a.Resolver.Gate())
	authed.POST("/auth/signout", a.signOut)
	authed.GET("/auth/session", a.currentSession)
	authed.POST("/onboarding", a.onboard)

	// Registered members (user shell).
	member := authed.Group("", roles.Require())
	member.GET("/me/profile", a.myProfile)
	member.PUT("/me/profile", a.updateMyProfile)
	member.GET("/me/sessions", a.mySessions)
	member.GET("/me/submissions", a.mySubmissions)
	member.GET("/me/quiz-results", a.myQuizResults)

	member.GET("/content/quote", a.dailyQuote)
	member.POST("/content/ask", a.ask)

	member.GET("/sessions", a.listSessions)
	member.GET("/sessions/:id", a.getSession)

	member.GET("/homework", a.listHomework)
	member.GET("/homework/:id", a.getHomework)
	member.POST("/homework/:id/submissions", a.submitHomework)

	member.GET("/quizzes/pending", a.pendingQuizzes)
	member.GET("/quizzes/:id", a.getQuiz)
	member.POST("/quizzes/:id/results", a.submitQuiz)

	member.GET("/resources", a.listResources)
	member.GET("/resources/:id", a.getResource)

	member.GET("/mentors", a.listMentors)
	member.GET("/mentorship/requests", a.listMentorshipRequests)
	member.POST("/mentorship/requests", a.requestMentorship)

	member.GET("/notifications", a.listNotifications)
	member.POST("/notifications/:id/read", a.markNotificationRead)
	member.POST("/notifications/read-all", a.markAllNotificationsRead)

	member.GET("/chanting/today", a.chantingToday)
	member.PUT("/chanting/today", a.setRounds)
	member.POST("/chanting/beads", a.addBeads)
	member.GET("/chanting/history", a.chantingHistory)

	member.POST("/uploads", a.upload)

	// Mentors and admins.
	guide := member.Group("", roles.Require(profile.RoleMentor, profile.RoleAdmin))
	guide.GET("/homework/:id/submissions", a.listSubmissions)
	guide.PUT("/submissions/:id/grade", a.gradeSubmission)
	guide.PUT("/mentorship/requests/:id", a.decideMentorship)

	// Admin shell.
	admin := authed.Group("/admin", roles.Require(profile.RoleAdmin))
	admin.GET("/dashboard", a.dashboard)

	admin.GET("/profiles", a.listProfiles)
	admin.POST("/profiles", a.createProfile)
	admin.GET("/profiles/:id", a.getProfile)
	admin.PUT("/profiles/:id", a.updateProfile)
	admin.DELETE("/profiles/:id", a.deleteProfile)

	admin.POST("/sessions", a.createSession)
	admin.PUT("/sessions/:id", a.updateSession)
	admin.DELETE("/sessions/:id", a.deleteSession)
	admin.POST("/sessions/:id/attendance/:studentId", a.toggleAttendance)

	admin.POST("/homework", a.createHomework)
	admin.PUT("/homework/:id", a.updateHomework)
	admin.DELETE("/homework/:id", a.deleteHomework)

	admin.GET("/quizzes", a.listQuizzes)
	admin.POST("/quizzes", a.createQuiz)
	admin.POST("/quizzes/generate", a.generateQuiz)
	admin.PUT("/quizzes/:id", a.updateQuiz)
	admin.DELETE("/quizzes/:id", a.deleteQuiz)
	admin.GET("/quizzes/:id/results", a.quizResults)

	admin.POST("/resources", a.createResource)
	admin.PUT("/resources/:id", a.updateResource)
	admin.DELETE("/resources/:id", a.deleteResource)

	admin.POST("/notifications", a.createNotification)
	admin.DELETE("/notifications/:id", a.deleteNotification)

	a.registerSPA(r)
}

func (a *API) healthz(c *gin.Context) {
	checks := map[string]bool{}
	if a.Health != nil {
		checks = a.Health(c.Request.Context())
	}
	status := http.StatusOK
	for _, ok := range checks {
		if !ok {
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}

// me returns the caller's registered profile; Require() guarantees it exists.
func me(c *gin.Context) profile.Profile {
	res := roles.From(c)
	if res.Profile == nil {
		return profile.Profile{Role: res.Role}
	}
	return *res.Profile
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

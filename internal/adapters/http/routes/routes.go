package routes

import (
	"crewshift/internal/adapters/http/handlers"
	"crewshift/internal/adapters/persistence/repositories"
	"crewshift/internal/config"
	"crewshift/internal/core/services"
	"crewshift/internal/pkg/shiftlock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and wires the
// dependency graph
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Repositories
	masterRepo := repositories.NewMasterRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	assignRepo := repositories.NewAssignmentRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)

	// One lock per shift serializes every capacity check-then-act
	locks := shiftlock.New()

	// Services
	notifyService := services.NewNotificationService(notifRepo, assignRepo, shiftRepo)
	memberService := services.NewMemberService(memberRepo, masterRepo)
	shiftService := services.NewShiftService(db, shiftRepo, masterRepo)
	assignService := services.NewAssignmentService(db, shiftRepo, memberRepo, assignRepo,
		notifyService, locks, cfg.Scheduling)
	leaveService := services.NewLeaveService(db, leaveRepo, shiftRepo, memberRepo, assignRepo,
		assignService, notifyService, locks)
	dashboardService := services.NewDashboardService(db, shiftRepo, assignRepo)
	cronService := services.NewCronService(shiftRepo, assignRepo, notifyService)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	masterHandler := handlers.NewMasterHandler(masterRepo)
	memberHandler := handlers.NewMemberHandler(memberService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	assignHandler := handlers.NewAssignmentHandler(assignService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	notifHandler := handlers.NewNotificationHandler(notifyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Masters
	masters := apiV1.Group("/masters")
	masters.Get("/roles", masterHandler.GetRoles)
	masters.Get("/locations", masterHandler.GetLocations)

	// Member directory
	members := apiV1.Group("/members")
	members.Post("/", memberHandler.Create)
	members.Get("/", memberHandler.List)
	members.Get("/:id", memberHandler.Get)
	members.Put("/:id", memberHandler.Update)
	members.Delete("/:id", memberHandler.Delete)

	// Shift catalog + assignment engine
	shifts := apiV1.Group("/shifts")
	shifts.Post("/", shiftHandler.Create)
	shifts.Post("/weekly", shiftHandler.CreateWeekly)
	shifts.Get("/", shiftHandler.List)
	shifts.Get("/:id", shiftHandler.Get)
	shifts.Post("/:id/auto", assignHandler.AutoAssign)
	shifts.Post("/:id/manual", assignHandler.ManualAssign)

	// Assignment state
	assignments := apiV1.Group("/shift_assignments")
	assignments.Get("/:shiftId", assignHandler.ListByShift)
	assignments.Patch("/:shiftId/attendance", assignHandler.MarkAttendance)

	// Leave engine
	leaves := apiV1.Group("/leaves")
	leaves.Post("/request", leaveHandler.Submit)
	leaves.Post("/handle", leaveHandler.Handle)
	leaves.Get("/pending/manager/:locationId", leaveHandler.PendingForManager)
	leaves.Get("/member/:memberId", leaveHandler.ListForMember)

	// Notifications
	notifications := apiV1.Group("/notifications")
	notifications.Get("/member/:memberId", notifHandler.ListForMember)
	notifications.Post("/member/:memberId/:seq/view", notifHandler.MarkViewed)
	notifications.Post("/shift/:shiftId/notify-assignments", notifHandler.NotifyShiftAssignments)

	// Dashboard
	dashboard := apiV1.Group("/dashboard")
	dashboard.Get("/coverage", dashboardHandler.Coverage)
	dashboard.Get("/summary", dashboardHandler.Summary)

	return cronService
}

package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	"github.com/BruksfildServices01/barbearia-agenda/internal/config"
	"github.com/BruksfildServices01/barbearia-agenda/internal/handlers"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/barbearia-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barbearia-agenda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/appointment"
	ucDirectory "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/directory"
	ucTenant "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/tenant"
	"github.com/BruksfildServices01/barbearia-agenda/internal/validators"
)

// Deps are the process-wide singletons the routes are built from. Now is
// optional and defaults to time.Now.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Locker  lock.Locker
	Auditor audit.Auditor
	Now     func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}

	// ======================================================
	// ✅ VALIDATION (same rules as the use cases)
	// ======================================================
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validators.Register(v); err != nil {
			log.Fatal().Err(err).Msg("failed to register validators")
		}
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins...))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	tenantRepo := infraRepo.NewTenantGormRepository(d.DB)
	directoryRepo := infraRepo.NewDirectoryGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	auditLogger := audit.New(d.DB)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	provisionUC := ucTenant.NewProvisionTenant(tenantRepo, d.Auditor, d.Now)
	existsUC := ucTenant.NewExistsTenant(tenantRepo)
	manageUC := ucTenant.NewManage(tenantRepo, d.Auditor, d.Now)

	dir := ucDirectory.New(directoryRepo, d.Auditor, d.Now)

	proposeUC := ucAppointment.NewProposeAppointment(appointmentRepo, d.Locker, d.Auditor, d.Now)
	updateUC := ucAppointment.NewUpdateAppointment(appointmentRepo, d.Locker, d.Auditor, d.Now)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Now)
	calendar := ucAppointment.NewCalendar(appointmentRepo, directoryRepo, d.Now)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	tenantHandler := handlers.NewTenantHandler(provisionUC, existsUC, manageUC)
	employeeHandler := handlers.NewEmployeeHandler(dir)
	workingHoursHandler := handlers.NewWorkingHoursHandler(dir)
	clientHandler := handlers.NewClientHandler(dir)
	serviceHandler := handlers.NewServiceHandler(dir)
	appointmentHandler := handlers.NewAppointmentHandler(proposeUC, updateUC, calendar)
	calendarHandler := handlers.NewCalendarHandler(calendar, availabilityUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)

	// ======================================================
	// 🩺 HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/tenants", tenantHandler.Provision)

		// ------------------------------
		// 🔐 API POR BARBEARIA
		// ------------------------------
		tenant := api.Group("/tenants/:contribuinte")
		tenant.Use(middleware.TenantGuard(d.Config.JWTSecret))
		{
			tenant.GET("", tenantHandler.Get)
			tenant.PATCH("", tenantHandler.Update)
			tenant.DELETE("", tenantHandler.Deactivate)
			tenant.GET("/exists", tenantHandler.Exists)

			tenant.GET("/employees", employeeHandler.List)
			tenant.POST("/employees", employeeHandler.Create)
			tenant.PATCH("/employees/:id", employeeHandler.Update)
			tenant.DELETE("/employees/:id", employeeHandler.Deactivate)
			tenant.GET("/employees/:id/working-hours", workingHoursHandler.Get)
			tenant.PUT("/employees/:id/working-hours", workingHoursHandler.Update)

			tenant.GET("/clients", clientHandler.List)
			tenant.POST("/clients", clientHandler.Create)
			tenant.PATCH("/clients/:id", clientHandler.Update)
			tenant.DELETE("/clients/:id", clientHandler.Deactivate)

			tenant.GET("/services", serviceHandler.List)
			tenant.POST("/services", serviceHandler.Create)
			tenant.PATCH("/services/:id", serviceHandler.Update)
			tenant.DELETE("/services/:id", serviceHandler.Deactivate)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			tenant.POST("/appointments", appointmentHandler.Create)
			tenant.GET("/appointments/:id", appointmentHandler.Get)
			tenant.PATCH("/appointments/:id", appointmentHandler.Update)

			tenant.GET("/calendar/day", calendarHandler.Day)
			tenant.GET("/calendar/counts", calendarHandler.Counts)
			tenant.GET("/calendar/upcoming", calendarHandler.Upcoming)
			tenant.GET("/calendar/summary", calendarHandler.Summary)
			tenant.GET("/availability", calendarHandler.Availability)

			tenant.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

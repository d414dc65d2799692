package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/docs"
	v1 "github.com/vietanh2810/mesas-api/internal/api/handler/v1"
	"github.com/vietanh2810/mesas-api/internal/api/middleware"
	"github.com/vietanh2810/mesas-api/internal/config"
	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
	"github.com/vietanh2810/mesas-api/internal/repository"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
	"github.com/vietanh2810/mesas-api/internal/service"
)

type Server struct {
	Config  *config.AppConfig
	Router  *gin.Engine
	Metrics *metrics.Metrics
}

type handlers struct {
	assignments *v1.AssignmentHandler
	reports     *v1.ReportHandler
	dashboard   *v1.DashboardHandler
	catalog     *v1.CatalogHandler
	delegates   *v1.DelegateHandler
}

// NewServer wires every handler against db. caps describes the optional
// parts of the schema and m may be nil to disable metrics.
func NewServer(conf *config.AppConfig, db *gorm.DB, caps domain.Capabilities, m *metrics.Metrics) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		Metrics: m,
	}

	s.MountMiddlewares()

	h, err := s.initHandlers(db, caps)
	if err != nil {
		return nil, err
	}
	s.MountHandlers(h)

	return s, nil
}

func (s *Server) initHandlers(db *gorm.DB, caps domain.Capabilities) (handlers, error) {
	policy, err := domain.ParseResolutionPolicy(s.Config.Resolution.Order)
	if err != nil {
		return handlers{}, fmt.Errorf("domain.ParseResolutionPolicy -> %w", err)
	}

	catalogRepo := repository.NewCatalogRepository(dao.NewLocationDAO(db), dao.NewCandidateDAO(db), s.Config.Cache.CatalogTTL)
	statsRepo := repository.NewStatsRepository(dao.NewStatsDAO(db, caps.ReportPhotos), caps)

	allocator := service.NewAllocatorService(repository.NewAssignmentRepository(db, caps), caps, s.Metrics)
	reports := service.NewReportService(repository.NewReportRepository(db, caps), policy, s.Metrics)
	compliance := service.NewComplianceService(statsRepo)
	coverage := service.NewCoverageService(statsRepo, catalogRepo, service.CoverageOptions{
		FeedSize: s.Config.Dashboard.FeedSize,
		Alerts: domain.AlertLimits{
			PerSeverity: s.Config.Dashboard.AlertsPerSeverity,
			Total:       s.Config.Dashboard.AlertsTotal,
		},
		RequirePhoto: s.Config.Dashboard.RequirePhoto && caps.ReportPhotos,
	}, s.Metrics)
	delegates := service.NewDelegateService(repository.NewDelegateRepository(dao.NewDelegateDAO(db, caps.RosterCount)))

	return handlers{
		assignments: v1.NewAssignmentHandler(allocator),
		reports:     v1.NewReportHandler(reports),
		dashboard:   v1.NewDashboardHandler(compliance, coverage),
		catalog:     v1.NewCatalogHandler(service.NewCatalogService(catalogRepo)),
		delegates:   v1.NewDelegateHandler(delegates),
	}, nil
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.AccessLog(s.Metrics))
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	api := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		api.POST("/delegates", h.delegates.HandleRegisterDelegate)
		api.GET("/delegates/:delegateID", h.delegates.HandleGetDelegate)
		api.PUT("/delegates/:delegateID/assignments", h.assignments.HandleAllocateTables)
		api.GET("/delegates/:delegateID/assignments", h.assignments.HandleListAssignments)
		api.GET("/me/assignments", h.assignments.HandleListMyAssignments)

		api.PUT("/assignments/:assignmentID/report", h.reports.HandleSubmitReport)
		api.GET("/assignments/:assignmentID/report", h.reports.HandleGetReport)

		api.GET("/compliance", h.dashboard.HandleGetCompliance)
		api.GET("/dashboard/coverage", h.dashboard.HandleGetCoverage)

		api.GET("/catalog/candidates", h.catalog.HandleListCandidates)
		api.GET("/catalog/locations", h.catalog.HandleListLocations)
		api.GET("/catalog/locations/:locationID", h.catalog.HandleGetLocation)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	if reg := s.Metrics.Registry(); reg != nil {
		s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	} else {
		s.Router.GET("/metrics", func(ctx *gin.Context) { ctx.Status(http.StatusNotFound) })
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Mesas API"
	docs.SwaggerInfo.Description = "Table allocation, vote reporting and coverage dashboards for election delegates."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

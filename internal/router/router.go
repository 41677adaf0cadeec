package router

import (
	"github.com/HarryYanarico/my-proyect/internal/config"
	"github.com/HarryYanarico/my-proyect/internal/handler"
	"github.com/HarryYanarico/my-proyect/internal/infra"
	"github.com/HarryYanarico/my-proyect/internal/middleware"
	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/repository"
	"github.com/HarryYanarico/my-proyect/internal/service"
	"github.com/HarryYanarico/my-proyect/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter, err := middleware.NewLimiter(cfg.RateLimit, rdb)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(limiter))

	// ── Repositories ─────────────────────────────────────────────────────────
	txRunner := repository.NewTxRunner(db, cfg.LockTimeout())
	ventaRepo := repository.NewVentaRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	planRepo := repository.NewPlanPagoRepository(db)
	cuotaRepo := repository.NewCuotaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	reloj := service.NewReloj(cfg.Location())
	dispatcher := worker.NewDispatcher(rdb)
	cache := infra.NewDashboardCache(rdb, cfg.DashboardCacheTTL())

	ventaSvc := service.NewVentaService(txRunner, ventaRepo, loteRepo, clienteRepo, empleadoRepo,
		service.NewPlanBuilder(planRepo), dispatcher, cache, reloj)
	pagoSvc := service.NewPagoService(txRunner, pagoRepo, cuotaRepo, planRepo, ventaRepo, empleadoRepo,
		dispatcher, cache, reloj)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cache, reloj, service.DashboardConfig{
		Ventana:      cfg.DashboardVentana,
		CuotasPorMes: cfg.CuotasVencidasPorMes,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	ventasH := handler.NewVentasHandler(ventaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	staff := middleware.RequireRole(model.RolVendedor, model.RolAdministrador)
	admin := middleware.RequireRole(model.RolAdministrador)

	ventas := v1.Group("/ventas", staff)
	{
		ventas.POST("", ventasH.CrearVenta)
		ventas.GET("/:id", ventasH.ObtenerVenta)
		ventas.GET("/:id/pagos", pagosH.ListarPorVenta)
	}

	pagos := v1.Group("/pagos", staff)
	{
		pagos.POST("", pagosH.RegistrarPago)
		pagos.GET("", pagosH.ListarRecientes)
		pagos.GET("/:id", pagosH.ObtenerPago)
		pagos.PATCH("/:id", pagosH.ActualizarPago)
		// Reversal rewrites ledger history; administrador only.
		pagos.DELETE("/:id", admin, pagosH.RevertirPago)
	}

	v1.GET("/cuotas/:id/pagos", staff, pagosH.ListarPorCuota)
	v1.GET("/lotes/:id/cuotas", staff, pagosH.CuotasPorLote)

	dashboard := v1.Group("/dashboard", staff)
	{
		dashboard.GET("", dashboardH.Resumen)
		dashboard.GET("/ventas-mensuales", dashboardH.VentasMensuales)
		dashboard.GET("/cuotas-vencidas", dashboardH.CuotasVencidas)
		dashboard.GET("/ventas-recientes", dashboardH.VentasRecientes)
	}

	// Swagger UI outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}

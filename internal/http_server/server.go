// Package http_server
package http_server

import (
	"context"
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/http_server/controller"
	mid "github.com/half-nothing/smallcraft-designer/internal/http_server/middleware"
	impl "github.com/half-nothing/smallcraft-designer/internal/http_server/service"
	"github.com/half-nothing/smallcraft-designer/internal/http_server/service/store"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	ilog "github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/samber/slog-echo"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type HttpServerShutdownCallback struct {
	serverHandler *echo.Echo
	stopCleanup   context.CancelFunc
}

func NewHttpServerShutdownCallback(serverHandler *echo.Echo, stopCleanup context.CancelFunc) *HttpServerShutdownCallback {
	return &HttpServerShutdownCallback{
		serverHandler: serverHandler,
		stopCleanup:   stopCleanup,
	}
}

func (hc *HttpServerShutdownCallback) Invoke(ctx context.Context) error {
	hc.stopCleanup()
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return hc.serverHandler.Shutdown(timeoutCtx)
}

// NewStoreService 按store_type选择快照存储, 远程存储包装本地存储
func NewStoreService(logger ilog.LoggerInterface, storeConfig *config.ExportStoreConfig) service.StoreServiceInterface {
	var storeService service.StoreServiceInterface
	storeService = store.NewLocalStoreService(logger, storeConfig)
	switch storeConfig.StoreType {
	case config.ALiYunOssStore:
		storeService = store.NewALiYunOssStoreService(logger, storeConfig, storeService)
	case config.TencentCosStore:
		storeService = store.NewTencentCosStoreService(logger, storeConfig, storeService)
	}
	return storeService
}

// NewHttpServer 创建echo实例并注册全部中间件和路由, 返回的cancel用于停止限流器清理
func NewHttpServer(applicationContent *ApplicationContent) (*echo.Echo, context.CancelFunc) {
	cfg := applicationContent.ConfigManager().Config()
	logger := applicationContent.Logger()
	httpConfig := cfg.Server.HttpServer

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(io.Discard)
	e.Logger.SetLevel(log.OFF)

	switch httpConfig.ProxyType {
	case 1:
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	case 2:
		e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	default:
		e.IPExtractor = echo.ExtractIPDirect()
	}

	if httpConfig.SSL.ForceSSL {
		e.Use(middleware.HTTPSRedirect())
	}

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: httpConfig.RequestDuration}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(ctx echo.Context, err error, stack []byte) error {
			logger.ErrorF("Recovered from a fatal error: %v, stack: %s", err, string(stack))
			return err
		},
	}))

	loggerConfig := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}
	e.Use(slogecho.NewWithConfig(slog.Default(), loggerConfig))
	secureConfig := middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
	}
	if httpConfig.SSL.EnableHSTS {
		secureConfig.HSTSMaxAge = httpConfig.SSL.HstsExpiredTime
		secureConfig.HSTSExcludeSubdomains = !httpConfig.SSL.IncludeDomain
	}
	e.Use(middleware.SecureWithConfig(secureConfig))
	e.Use(middleware.CORS())
	if httpConfig.BodyLimit != "" {
		e.Use(middleware.BodyLimit(httpConfig.BodyLimit))
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	limits := httpConfig.Limits
	limiter := mid.NewSlidingWindowLimiter(limits.RateLimitDuration, limits.RateLimit)
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	if limits.RateLimit > 0 {
		cleanupInterval := min(limits.RateLimitDuration*2, time.Hour)
		limiter.StartCleanup(cleanupCtx, cleanupInterval)
		e.Use(mid.RateLimitMiddleware(limiter, mid.CombinedKeyFunc))
	} else {
		logger.Warn("Rate limit disabled")
	}

	designOperation := applicationContent.DesignOperation()
	storeService := NewStoreService(logger, httpConfig.Store)

	designService := impl.NewDesignService(logger, cfg.Server.General, limits, designOperation)
	rulesService := impl.NewRulesService(logger, cfg.Server.General)
	exchangeService := impl.NewExchangeService(logger, limits, httpConfig.Store, storeService, designOperation)

	designController := controller.NewDesignController(logger, designService)
	rulesController := controller.NewRulesController(logger, rulesService)
	exchangeController := controller.NewExchangeController(logger, exchangeService)

	apiGroup := e.Group("/api")

	designGroup := apiGroup.Group("/designs")
	designGroup.GET("", designController.GetDesigns)
	designGroup.POST("", designController.CreateDesign)
	designGroup.GET("/availability", designController.CheckNameAvailability)
	designGroup.POST("/evaluate", designController.EvaluateDesign)
	designGroup.GET("/export", exchangeController.ExportDesigns)
	designGroup.POST("/import", exchangeController.ImportDesigns)
	designGroup.POST("/import/csv", exchangeController.ImportDesignCSV)
	designGroup.GET("/:id", designController.GetDesignInfo)
	designGroup.PUT("/:id", designController.UpdateDesign)
	designGroup.DELETE("/:id", designController.DeleteDesign)
	designGroup.GET("/:id/csv", exchangeController.ExportDesignCSV)

	rulesGroup := apiGroup.Group("/rules")
	rulesGroup.GET("/tech-levels", rulesController.GetTechLevels)
	rulesGroup.GET("/hull", rulesController.ResolveHull)
	rulesGroup.GET("/armor", rulesController.GetArmorOptions)
	rulesGroup.POST("/armor", rulesController.BuildArmor)
	rulesGroup.GET("/drives", rulesController.GetDriveOptions)
	rulesGroup.POST("/fuel", rulesController.CalculateFuel)
	rulesGroup.GET("/weapons", rulesController.GetWeaponOptions)
	rulesGroup.POST("/weapons/check", rulesController.CheckWeapon)
	rulesGroup.GET("/electronics", rulesController.GetElectronics)
	rulesGroup.POST("/staff", rulesController.GetStaffOptions)

	apiGroup.POST("/exports", exchangeController.SaveSnapshot)

	apiGroup.Use(middleware.Static(httpConfig.Store.LocalStorePath))

	return e, stopCleanup
}

// StartHttpServer 阻塞直到服务器关闭, 正常关闭时返回nil
func StartHttpServer(applicationContent *ApplicationContent) error {
	logger := applicationContent.Logger()
	httpConfig := applicationContent.ConfigManager().Config().Server.HttpServer

	e, stopCleanup := NewHttpServer(applicationContent)
	applicationContent.Cleaner().Add(NewHttpServerShutdownCallback(e, stopCleanup))

	protocol := "http"
	if httpConfig.SSL.Enable {
		protocol = "https"
	}
	logger.InfoF("Starting %s server on %s", protocol, httpConfig.Address)
	logger.InfoF("Rate limit: %d requests per %v", httpConfig.Limits.RateLimit, httpConfig.Limits.RateLimitDuration)

	var err error
	if httpConfig.SSL.Enable {
		err = e.StartTLS(httpConfig.Address, httpConfig.SSL.CertFile, httpConfig.SSL.KeyFile)
	} else {
		err = e.Start(httpConfig.Address)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.FatalF("Http server error: %v", err)
		return err
	}
	return nil
}

// Пакет richblocks предоставляет HTTP сервис редактора блоков rich-text: обработку документов без состояния, хранение значений полей и сессии редактирования с командами редактора.
//
// Основные возможности:
//   - Нормализация, очистка, отрисовка и импорт документов.
//   - Проверка и разрешение пресетов поля.
//   - Сессии редактирования: выделение, клавиши, вставка, конвертация, перемещение, форматирование, стили и ссылки.
//   - Сохранение значений полей и снимков сессий в базе данных.
//   - Фоновые задачи очистки и сохранения сессий, метрики Prometheus.
package richblocks

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/blocks"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/config"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/cronmanager"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	store "github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/memory-store"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/settings"
)

type Services struct {
	db       *gorm.DB
	cfg      *config.Config
	registry *editor.Registry
	presets  *settings.Config
	sessions *store.SessionStore
	metrics  *Metrics
	version  string
}

type Server struct {
	*Services

	api     *echo.Echo
	monitor *echo.Echo
	cron    *cronmanager.CronManager
}

// ServerHeader middleware adds a `Server` header to the response.
func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "RichBlocks")
		return next(c)
	}
}

func NewServer(db *gorm.DB, cfg *config.Config, version string) (*Server, error) {
	s := &Services{
		db:       db,
		cfg:      cfg,
		registry: blocks.NewRegistry(),
		presets:  cfg.FieldOptions.Resolve(),
		version:  version,
	}
	s.sessions = store.NewSessionStore(cfg.SessionTTL, cfg.SessionLimit, s.newEditor)

	metrics, err := NewMetrics(s.sessions.Len)
	if err != nil {
		return nil, err
	}
	s.metrics = metrics

	jobRegistry := cronmanager.JobRegistry{
		"sessions_flush": cronmanager.Job{
			Func:     s.flushSessions,
			Schedule: cfg.SessionSweepSchedule,
		},
		"sessions_sweep": cronmanager.Job{
			Func:     s.sweepSessions,
			Schedule: cfg.SessionSweepSchedule,
		},
	}
	cron := cronmanager.NewCronManager(jobRegistry)
	if err := cron.LoadJobs(); err != nil {
		return nil, err
	}

	srv := &Server{
		Services: s,
		api:      s.newAPI(),
		monitor:  echo.New(),
		cron:     cron,
	}
	srv.monitor.HideBanner = true
	srv.monitor.HidePort = true
	srv.monitor.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: metrics.Registry(),
	}))
	return srv, nil
}

// newEditor открывает документ сессии с настройками поля и плагином метрик.
func (s *Services) newEditor(doc *edtypes.Document, opts ...editor.Option) *editor.Editor {
	base := []editor.Option{
		editor.WithRegistry(s.registry),
		editor.WithConfig(s.presets),
		editor.WithSnippetConversion(s.cfg.SnippetConversion),
		editor.WithPlugins(append(editor.DefaultPlugins(), s.metrics.Plugin())...),
	}
	return editor.New(doc, append(base, opts...)...)
}

func (s *Services) newAPI() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		// Ignore 404
		if code == http.StatusNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		if code != http.StatusRequestEntityTooLarge && code != http.StatusMethodNotAllowed {
			slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
		}
		EErrorMsgStatus(c, nil, code)
	}

	// Global middlewares
	e.Use(ServerHeader)
	corsConfig := middleware.CORSConfig{AllowCredentials: true}
	if s.cfg.WebURL != nil {
		corsConfig.AllowOrigins = []string{s.cfg.WebURL.Scheme + "://" + s.cfg.WebURL.Host}
	}
	e.Use(middleware.CORSWithConfig(corsConfig))
	bodyLimit := s.cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "2M"
	}
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: bodyLimit,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     5,
		MinLength: 2048,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metricsNamespace,
		Registerer: s.metrics.Registry(),
	}))
	e.Pre(middleware.RemoveTrailingSlash())

	e.Validator = NewRequestValidator(s.registry)

	apiGroup := e.Group("/api")

	// Version endpoint
	apiGroup.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"version":            s.version,
			"snippet_conversion": s.cfg.SnippetConversion,
		})
	})

	// Health endpoint
	apiGroup.GET("/_health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.AddDocumentServices(apiGroup)
	s.AddPresetServices(apiGroup)
	s.AddFieldServices(apiGroup)
	s.AddSessionServices(apiGroup)
	return e
}

// Handler returns the API handler.
func (srv *Server) Handler() http.Handler {
	return srv.api
}

// MetricsHandler returns the handler of the metrics server.
func (srv *Server) MetricsHandler() http.Handler {
	return srv.monitor
}

// Run запускает API, сервер метрик и фоновые задачи. После отмены ctx серверы
// останавливаются, измененные сессии сохраняются в базу.
func (srv *Server) Run(ctx context.Context) error {
	srv.cron.Start()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("API server start", "addr", srv.cfg.ListenAddr)
		if err := srv.api.Start(srv.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := srv.monitor.Start(srv.cfg.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := errors.Join(
			srv.api.Shutdown(shutdownCtx),
			srv.monitor.Shutdown(shutdownCtx),
		)
		srv.cron.Stop()
		srv.flushSessions()
		return err
	})
	return g.Wait()
}

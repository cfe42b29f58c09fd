//
// BLOG
// ====
// A blog article service: JSON CRUD over /api/articles backed by a
// relational store, plus user signup.
//
// Also pass the -routes flag to print generated route docs:
// `go run . -routes`
//
// Boot the server:
// ----------------
// $ go run .                                   # sqlite file blog.db
// $ BLOG_DB_DRIVER=postgres BLOG_DSN=postgres://... go run .
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"title":"title","content":"content"}' http://localhost:3333/api/articles
// {"id":1,"title":"title","content":"content","createdAt":"...","updatedAt":"..."}
//
// $ curl http://localhost:3333/api/articles
// [{"title":"title","content":"content"}]
//
// $ curl -X PUT -d '{"title":"new Title","content":"new Content"}' http://localhost:3333/api/articles/1
// {"id":1,"title":"new Title","content":"new Content","createdAt":"...","updatedAt":"..."}
//
// $ curl -X DELETE http://localhost:3333/api/articles/1
//
// $ curl http://localhost:3333/api/articles/1
// {"status":"Resource not found.","error":"not found: 1"}
//
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/config"
	"github.com/SergeyParamoshkin/blog/internal/database"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/metrics"
	"github.com/SergeyParamoshkin/blog/internal/user"
)

const ServiceName = "blog"

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      config.Config
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	a := App{
		sugarLogger: sugar,
		config:      cfg,
	}

	db, err := database.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		sugar.Fatalw("failed to open database", "driver", cfg.DBDriver, "error", err)
	}

	m, err := metrics.New(ServiceName)
	if err != nil {
		sugar.Fatalw("failed to initialize metrics", "error", err)
	}

	articles := article.NewAPI(article.NewService(article.NewGormStore(db, nil), sugar), sugar)
	userService := user.NewService(user.NewStore(db))
	users := user.NewAPI(userService, sugar)

	var articleMiddlewares []func(http.Handler) http.Handler
	if cfg.RequireAuth {
		articleMiddlewares = append(articleMiddlewares, user.Authenticated(userService, sugar))
	}

	r := a.router(m, articles.Routes(articleMiddlewares...), users.Routes())

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if cfg.Routes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/blog",
			Intro:       "Routes of the blog article service.",
		}))

		return
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", m.ServeHTTP)

	go func() {
		sugar.Infow("listening", "addr", cfg.Addr)
		if err := http.ListenAndServe(cfg.Addr, r); err != nil {
			sugar.Fatalw("api listener stopped", "error", err)
		}
	}()

	sugar.Infow("diag listening", "addr", cfg.DiagAddr)
	if err := http.ListenAndServe(cfg.DiagAddr, diagRouter); err != nil {
		sugar.Errorw("diag listener stopped", "error", err)
	}
}

func (a *App) router(m *metrics.Metrics, articles, users http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(a.Logger)
	r.Use(middleware.Logger)
	r.Use(m.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("root.")); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logger := loggerFrom(r.Context())
		logger.Debugw("ping", "request_id", middleware.GetReqID(r.Context()))
		if _, err := w.Write([]byte("pong")); err != nil {
			logger.Errorw(err.Error())
		}
	})

	r.Mount("/api/articles", articles)
	r.Mount("/api/users", users)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	})

	return r
}

// Logger places the application logger on the request context.
func (a *App) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, a.sugarLogger)))
	})
}

func loggerFrom(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(CtxKeyLogger).(*zap.SugaredLogger); ok {
		return l
	}

	return zap.NewNop().Sugar()
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

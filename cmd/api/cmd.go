package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/barbatoslupus21/unisync-overview/internal/bootstrap"
	"github.com/barbatoslupus21/unisync-overview/internal/config"
	"github.com/barbatoslupus21/unisync-overview/internal/handlers"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
	"github.com/barbatoslupus21/unisync-overview/internal/router"
	"github.com/barbatoslupus21/unisync-overview/internal/services"
	"github.com/barbatoslupus21/unisync-overview/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	_, err := config.LoadEnv(".env")
	exitOnError("env load failed", err, slog.Default())
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	lstore := store.NewLayoutStore(bs.Firestore)
	nstore := store.NewNoteStore(bs.Firestore)
	estore := store.NewEventStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore)
	lserv := services.NewLayoutService(lstore)
	nserv := services.NewNoteService(nstore)
	eserv := services.NewEventService(estore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.UserSvc = userv
	deps.LayoutSvc = lserv
	deps.NoteSvc = nserv
	deps.EventSvc = eserv

	// router
	mw := middleware.NewMiddleware(bs.Firebase)
	r := router.NewRouter(deps, router.Options{
		Auth:        mw.FirebaseAuth,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server start failed", err, bs.Log)
	}
}

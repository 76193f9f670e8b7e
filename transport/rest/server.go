package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type gameUseCase interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, cell entity.Cell) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	History(ctx context.Context, limit int) ([]*entity.Result, error)
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
	srv    *http.Server
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	handlers := newGameHandlers(logger, games)

	e.GET("/ping", pingHandler)

	e.POST("/games", handlers.CreateGame)
	e.GET("/games/:id", handlers.GetGame)
	e.DELETE("/games/:id", handlers.DeleteGame)
	e.POST("/games/:id/moves", handlers.MakeMove)
	e.POST("/games/:id/reset", handlers.ResetGame)
	e.GET("/results", handlers.History)

	return &Server{
		logger: logger.With("component", "rest"),
		echo:   e,
	}
}

func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - starts HTTP server and blocks until it stops. Shutdown makes it return nil.
func (that *Server) Start(port string) error {
	that.srv = &http.Server{
		Addr:         ":" + port,
		Handler:      that.echo,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if that.srv == nil {
		return nil
	}

	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

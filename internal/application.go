package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/gridgames/tictactoe-rooms/internal/commentary"
	"github.com/gridgames/tictactoe-rooms/internal/config"
	"github.com/gridgames/tictactoe-rooms/internal/gateway"
	"github.com/gridgames/tictactoe-rooms/internal/registry"
	"github.com/gridgames/tictactoe-rooms/internal/scoreboard"
	"github.com/gridgames/tictactoe-rooms/internal/transport/rest"
	"github.com/gridgames/tictactoe-rooms/internal/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	scores, closeScores, err := buildScoreboard(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeScores()

	commentator := buildCommentator(log, conf)

	rooms := registry.New()
	wsServer := websocket.New(logger)

	sessionGateway := gateway.New(logger, rooms, scores, commentator, wsServer)
	wsServer.SetGateway(sessionGateway)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// buildScoreboard picks the Redis-backed tally when an address is configured,
// otherwise the in-process one.
func buildScoreboard(ctx context.Context, log *slog.Logger, conf *config.Config) (scoreboard.Scoreboard, func(), error) {
	addr := conf.Redis.GetRedisAddr()
	if addr == "" {
		log.Info("no redis configured, using in-memory scoreboard")
		return scoreboard.NewMemory(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis client", "error", err)
		}
	}

	return scoreboard.NewRedis(client), closeFn, nil
}

func buildCommentator(log *slog.Logger, conf *config.Config) commentary.Generator {
	if conf.Commentary.URL == "" {
		log.Info("no commentary endpoint configured, using static remarks")
		return commentary.NewStatic()
	}

	return commentary.NewHTTP(conf.Commentary.URL)
}

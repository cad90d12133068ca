package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-sweeper/api"
	gameapi "github.com/beka-birhanu/vinom-sweeper/api/game"
	api_i "github.com/beka-birhanu/vinom-sweeper/api/i"
	"github.com/beka-birhanu/vinom-sweeper/api/identity"
	"github.com/beka-birhanu/vinom-sweeper/config"
	"github.com/beka-birhanu/vinom-sweeper/infrastruture/lock"
	"github.com/beka-birhanu/vinom-sweeper/infrastruture/token"
	"github.com/beka-birhanu/vinom-sweeper/logger"
	"github.com/beka-birhanu/vinom-sweeper/service"
	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const janitorInterval = time.Minute

// Global variables for dependencies
var (
	redisClient        *redis.Client
	sessionLocker      i.Locker
	gameSessionManager *service.GameSessionManager
	jwtTokenizer       i.Tokenizer
	gameController     api_i.Controller
	router             *api.Router
	appLogger          *logrus.Entry
)

func initAppLogger() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating app logger: %v\n", err)
		os.Exit(1)
	}
}

func initLocker(ctx context.Context) {
	lockLogger, err := logger.New("LOCKER", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating locker logger: %v", err))
		os.Exit(1)
	}

	if config.Envs.RedisAddr == "" {
		sessionLocker = lock.NewMemoryLocker()
		appLogger.Info("Using in-process session locks")
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: config.Envs.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	sessionLocker = lock.NewRedisLocker(redisClient, lock.Options{Logger: lockLogger})
	appLogger.Info("Connected to Redis, using distributed session locks")
}

func initSessionManager() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		Locker:       sessionLocker,
		Logger:       sessionLogger,
		MaxBoardSize: config.Envs.MaxBoardSize,
		TTL:          time.Duration(config.Envs.SessionTTLMinutes) * time.Minute,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initGameController() {
	var err error
	gameController, err = gameapi.NewGameController(gameSessionManager, jwtTokenizer, 0)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Game controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{gameController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	initAppLogger()

	if _, err := config.Load(); err != nil {
		appLogger.Error(fmt.Sprintf("Loading configuration: %v", err))
		os.Exit(1)
	}

	initLocker(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	initSessionManager()
	gameSessionManager.StartJanitor(ctx, janitorInterval)
	initJWTTokenizer()
	initGameController()
	initRouter(jwtTokenizer)

	// Run HTTP server until interrupted
	appLogger.Info(fmt.Sprintf("Listening on %s:%d", config.Envs.HostIP, config.Envs.RESTPort))
	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}

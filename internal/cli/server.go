package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-link/internal/app"
	"student-link/internal/auth"
	"student-link/internal/config"
	"student-link/internal/infra/memory"
	"student-link/internal/infra/postgres"
	redissession "student-link/internal/infra/redis"
	transport "student-link/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// repositories is the storage the services run on.
type repositories struct {
	users         app.UserRepository
	quizzes       app.QuizRepository
	posts         app.PostRepository
	notifications app.NotificationRepository
	friends       app.FriendRepository
	messages      app.MessageRepository
	events        app.EventRepository
	sessions      app.SessionRepository
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret not configured (auth.jwt_secret or JWT_SECRET)")
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("quiz timezone: %w", err)
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	sessionTTL := config.TTLDuration(cfg.Redis.SessionTTL, 24*time.Hour)
	tokenTTL := config.TTLDuration(cfg.Auth.TokenTTL, sessionTTL)

	var repos repositories
	if cfg.Postgres.URL != "" {
		if err := RunMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store := postgres.NewStore(pool)
		repos = repositories{store, store, store, store, store, store, store, nil}
		log.Printf("using postgres storage")
	} else {
		store := memory.NewStore()
		repos = repositories{store, store, store, store, store, store, store, nil}
		log.Printf("using in-memory storage; data is lost on restart")
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		repos.sessions = redissession.NewSessionStore(client, sessionTTL)
	} else {
		repos.sessions = memory.NewSessionStore(sessionTTL)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, tokenTTL)
	if err != nil {
		return err
	}
	inbox := app.NewInbox()
	services := transport.Services{
		Auth:          app.NewAuthService(repos.users, repos.sessions, auth.NewPasswordHasher(cfg.Auth.BcryptCost), tokens),
		Quiz:          app.NewQuizService(repos.quizzes),
		Social:        app.NewSocialService(repos.users, repos.posts, repos.events, repos.notifications, repos.friends, repos.messages),
		Network:       app.NewNetworkService(repos.users, repos.friends, repos.messages, repos.notifications, inbox),
		Events:        app.NewEventService(repos.events),
		Notifications: app.NewNotificationService(repos.notifications),
		Admin:         app.NewAdminService(repos.users, repos.quizzes, repos.events),
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(services, loc),
		ReadTimeout:  config.TTLDuration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.TTLDuration(cfg.Server.WriteTimeout, 15*time.Second),
	}

	go func() {
		log.Printf("starting student-link on :%s (schedule times in %s)", finalPort, loc)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

package container

import (
	"context"
	"fmt"

	"library-backend/internal/config"
	cacheinfra "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	authorhandler "library-backend/internal/domains/author/handler"
	authorrepo "library-backend/internal/domains/author/repository"
	authorservice "library-backend/internal/domains/author/service"
	bookhandler "library-backend/internal/domains/book/handler"
	bookrepo "library-backend/internal/domains/book/repository"
	bookservice "library-backend/internal/domains/book/service"
	genrehandler "library-backend/internal/domains/genre/handler"
	genrerepo "library-backend/internal/domains/genre/repository"
	genreservice "library-backend/internal/domains/genre/service"
	loanhandler "library-backend/internal/domains/loan/handler"
	loanrepo "library-backend/internal/domains/loan/repository"
	loanservice "library-backend/internal/domains/loan/service"
	publisherhandler "library-backend/internal/domains/publisher/handler"
	publisherrepo "library-backend/internal/domains/publisher/repository"
	publisherservice "library-backend/internal/domains/publisher/service"
	userhandler "library-backend/internal/domains/user/handler"
	userrepo "library-backend/internal/domains/user/repository"
	userservice "library-backend/internal/domains/user/service"
)

// Container wires config, infrastructure, and the domain layers.
type Container struct {
	Config   *config.Config
	DB       *database.PostgresDB
	Sessions cache.Store
	JWT      *jwt.Manager

	UserHandler      *userhandler.UserHandler
	BookHandler      *bookhandler.BookHandler
	AuthorHandler    *authorhandler.AuthorHandler
	GenreHandler     *genrehandler.GenreHandler
	PublisherHandler *publisherhandler.PublisherHandler
	LoanHandler      *loanhandler.LoanHandler
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sessions := cacheinfra.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := sessions.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	c := &Container{
		Config:   cfg,
		DB:       db,
		Sessions: sessions,
		JWT:      tokens,
	}

	c.UserHandler = userhandler.NewUserHandler(
		userservice.NewUserService(userrepo.NewPostgresRepository(db.Pool), tokens, sessions),
	)
	c.BookHandler = bookhandler.NewBookHandler(
		bookservice.NewBookService(bookrepo.NewPostgresRepository(db.Pool)),
	)
	c.AuthorHandler = authorhandler.NewAuthorHandler(
		authorservice.NewAuthorService(authorrepo.NewPostgresRepository(db.Pool)),
	)
	c.GenreHandler = genrehandler.NewGenreHandler(
		genreservice.NewGenreService(genrerepo.NewPostgresRepository(db.Pool)),
	)
	c.PublisherHandler = publisherhandler.NewPublisherHandler(
		publisherservice.NewPublisherService(publisherrepo.NewPostgresRepository(db.Pool)),
	)
	c.LoanHandler = loanhandler.NewLoanHandler(
		loanservice.NewLoanService(loanrepo.NewPostgresRepository(db.Pool), cfg.Loan.Period, cfg.Loan.DailyFine),
	)

	logger.Info("container initialized", nil)
	return c, nil
}

// Cleanup releases infrastructure connections.
func (c *Container) Cleanup() {
	if closer, ok := c.Sessions.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close session store", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}
}

package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/config"
	repo "github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ddd-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-blog-api/internal/infrastructure/sqlite"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Repositories is the persistence handle shared by the API, the worker and the seeder.
type Repositories struct {
	Users    repo.UserRepository
	Posts    repo.PostRepository
	Comments repo.CommentRepository

	close func()
}

// Close releases the underlying connection.
func (r *Repositories) Close() {
	if r != nil && r.close != nil {
		r.close()
	}
}

// Open connects to the backend named by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Repositories, error) {
	switch cfg.StoreDriver {
	case DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return &Repositories{
			Users:    mongodb.NewUserRepository(db),
			Posts:    mongodb.NewPostRepository(db),
			Comments: mongodb.NewCommentRepository(db),
			close:    func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case DriverPostgres:
		if err := postgres.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Repositories{
			Users:    postgres.NewUserRepository(pool),
			Posts:    postgres.NewPostRepository(pool),
			Comments: postgres.NewCommentRepository(pool),
			close:    pool.Close,
		}, nil

	case DriverSQLite:
		db, err := sqlite.Open(cfg.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Repositories{
			Users:    sqlite.NewUserRepository(db),
			Posts:    sqlite.NewPostRepository(db),
			Comments: sqlite.NewCommentRepository(db),
			close:    func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/config"
	"github.com/oksasatya/go-ddd-blog-api/internal/application"
	repo "github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/upload"
)

// Container holds the components built once at startup. It is passed
// explicitly to the router; nothing in it is package-global.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users    repo.UserRepository
	Posts    repo.PostRepository
	Comments repo.CommentRepository

	JWT *helpers.JWTManager

	// Optional infrastructure; nil disables the feature.
	Redis     *redis.Client
	ES        *elasticsearch.Client
	Publisher application.JobPublisher

	Uploads upload.Storage
}

func (c *Container) AuthService() *application.AuthService {
	return application.NewAuthService(c.Users, c.JWT, c.Logger)
}

func (c *Container) PostService() *application.PostService {
	return application.NewPostService(c.Posts, c.Users, c.Logger, c.ES, c.Config.ESPostsIndex)
}

func (c *Container) CommentService() *application.CommentService {
	return application.NewCommentService(c.Comments, c.Users, c.Logger, c.Publisher)
}

func (c *Container) Uploader() *upload.Uploader {
	return upload.NewUploader(c.Uploads, c.Logger)
}

// RateLimitRedis returns the limiter backend, or nil when rate limiting is off.
func (c *Container) RateLimitRedis() *redis.Client {
	if c.Config != nil && !c.Config.RateLimitEnabled {
		return nil
	}
	return c.Redis
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/config"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog-api/internal/infrastructure/store"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notify", cfg.Env)
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; notify worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotifyQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer repos.Close()

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQNotifyQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQNotifyQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	n := &notifier{
		AppName: cfg.AppName,
		Users:   repos.Users,
		Posts:   repos.Posts,
		Mail:    mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		Logger:  logger,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			err := n.handle(ctx, msg.Body)
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, errDrop):
				logger.WithError(err).Warn("dropping notification")
				_ = msg.Nack(false, false)
			default:
				logger.WithError(err).Error("notification failed, requeueing")
				_ = msg.Nack(false, true)
			}
		}
		close(done)
	}()

	logger.Infof("notify worker listening on queue=%s", cfg.RabbitMQNotifyQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// errDrop marks jobs that will never succeed; they are not requeued.
var errDrop = errors.New("unprocessable job")

type sender interface {
	Send(ctx context.Context, job mailer.EmailJob) error
}

type notifier struct {
	AppName string
	Users   repo.UserRepository
	Posts   repo.PostRepository
	Mail    sender
	Logger  *logrus.Logger
}

// handle emails the post author about a new comment. Comments by the author
// on their own post are acknowledged without sending.
func (n *notifier) handle(ctx context.Context, body []byte) error {
	var job mailer.CommentCreatedJob
	if err := json.Unmarshal(body, &job); err != nil || job.Type != mailer.CommentCreated {
		return errDrop
	}
	post, err := n.Posts.GetByID(ctx, entity.PostID(job.PostID))
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if post.IsOwnedBy(entity.UserID(job.AuthorID)) {
		return nil
	}
	owner, err := n.Users.GetByID(ctx, post.Author.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	commenter := "Someone"
	if names, err := n.Users.NamesByID(ctx, []entity.UserID{entity.UserID(job.AuthorID)}); err == nil && names[entity.UserID(job.AuthorID)] != "" {
		commenter = names[entity.UserID(job.AuthorID)]
	}

	email, err := mailer.RenderComment(owner.Email, mailer.CommentEmailData{
		AppName:       n.AppName,
		RecipientName: owner.Name,
		CommenterName: commenter,
		PostTitle:     post.Title,
		Content:       job.Content,
	})
	if err != nil {
		return errors.Join(errDrop, err)
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := n.Mail.Send(c, email); err != nil {
		return err
	}
	n.Logger.WithFields(logrus.Fields{"post_id": job.PostID, "comment_id": job.CommentID}).Info("comment notification sent")
	return nil
}

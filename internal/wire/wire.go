package wire

import (
	"Journaly/internal/api"
	"Journaly/internal/api/config"
	"Journaly/internal/api/handler"
	"Journaly/internal/job"
	"Journaly/internal/pkg/cron"
	"Journaly/internal/pkg/kafka"
	"Journaly/internal/pkg/mail"
	"Journaly/internal/pkg/minio"
	jmongo "Journaly/internal/pkg/mongo"
	"Journaly/internal/pkg/notify"
	"Journaly/internal/pkg/redis"
	"Journaly/internal/repository"
	"Journaly/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	DB            *gorm.DB
	KafkaManager  *kafka.ConsumerManager
	EmailProducer *kafka.EmailProducer
	CronMgr       *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	postRepo := repository.NewPostRepo(db)
	threadRepo := repository.NewThreadRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	postCommentRepo := repository.NewPostCommentRepo(db)
	subscriptionRepo := repository.NewSubscriptionRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	badgeRepo := repository.NewBadgeRepo(db)
	deliveryLogRepo := jmongo.NewDeliveryLogRepo(mongoDB)

	emailProducer, err := kafka.NewEmailProducer(cfg)
	if err != nil {
		return nil, err
	}

	urlResolver, err := minio.NewURLResolver(cfg.MinIO)
	if err != nil {
		_ = emailProducer.Close()
		return nil, err
	}

	notificationCache := redis.NewNotificationCache(time.Duration(cfg.Notify.UnreadCacheTTL) * time.Second)
	dispatcher := notify.NewDispatcher(emailProducer, notificationRepo, notificationCache, deliveryLogRepo, cfg.Notify.Concurrency)

	notificationService := service.NewNotificationService(
		notificationRepo, commentRepo, postRepo, userRepo, userFollowRepo, subscriptionRepo,
		dispatcher, notificationCache, urlResolver.ObjectURL, cfg.Notify.FeedLimit,
	)
	threadService := service.NewThreadService(threadRepo, postRepo)
	commentService := service.NewCommentService(commentRepo, threadRepo, userRepo, subscriptionRepo, badgeRepo, notificationService)
	postCommentService := service.NewPostCommentService(postCommentRepo, postRepo, userRepo, subscriptionRepo, notificationService)

	handlers := &api.HandlersGroup{
		ThreadHandler:       handler.NewThreadHandler(threadService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		PostCommentHandler:  handler.NewPostCommentHandler(postCommentService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		WSHandler:           handler.NewWsHandler(),
	}
	router := api.SetupRouter(handlers, cfg)

	mailClient := mail.NewClient(cfg.Mail, cfg.Server.SiteURL)
	kafkaMgr, err := kafka.NewConsumerManager(cfg, mailClient, deliveryLogRepo, notificationService)
	if err != nil {
		_ = emailProducer.Close()
		return nil, err
	}

	retryJob := job.NewDeliveryRetryJob(deliveryLogRepo, emailProducer, redis.Locker{}, cfg.Notify.MaxAttempts, cfg.Cron.RetryBatch)
	cronMgr := cron.NewCronManager(cfg.Cron.DeliveryRetry, retryJob)

	return &ApplicationContainer{
		Router:        router,
		DB:            db,
		KafkaManager:  kafkaMgr,
		EmailProducer: emailProducer,
		CronMgr:       cronMgr,
	}, nil
}

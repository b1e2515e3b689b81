package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/config"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/handler"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/notify"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/server"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/service"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/migrations"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/kafka"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/logger"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "circulation")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := newRepository(ctx, cfg, log)
	defer closeRepo()

	opts := []service.Option{service.WithConfig(service.Config{
		IssuePoints:    cfg.Circulation.IssuePoints,
		ReturnPoints:   cfg.Circulation.ReturnPoints,
		PopularWindow:  cfg.Circulation.PopularWindow,
		TrendingWindow: cfg.Circulation.TrendingWindow,
		RecommendLimit: cfg.Circulation.RecommendLimit,
		DiscoverLimit:  cfg.Circulation.DiscoverLimit,
	})}

	var (
		producer sarama.SyncProducer
		group    sarama.ConsumerGroup
		err      error
	)
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		group, err = kafka.NewConsumer(cfg.Kafka, kafka.CirculationConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		opts = append(opts, service.WithPublisher(notify.NewKafkaPublisher(kafka.NewEnqueuer(producer), log)))
	} else {
		log.Warn("kafka disabled, events are only logged")
		opts = append(opts, service.WithPublisher(notify.NewLogPublisher(log)))
	}
	svc := service.NewService(repo, log, opts...)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return srv.Run()
	})
	if group != nil {
		gg.Go(func() error {
			kafka.Consume(gctx, group, handler.NewConsumer(svc.Settle, log), log, kafka.SettleTopic)
			return nil
		})
	}
	gg.Go(func() error {
		<-gctx.Done()
		log.Debug("Graceful shutdown", zap.Error(context.Cause(gctx)))

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := srv.Stop(closeCtx); err != nil {
			log.DPanic("srv.Stop", zap.Error(err))
		}
		if group != nil {
			if err := group.Close(); err != nil {
				log.Error("consumer close", zap.Error(err))
			}
		}
		if producer != nil {
			if err := producer.Close(); err != nil {
				log.Error("producer close", zap.Error(err))
			}
		}
		return nil
	})

	if err = gg.Wait(); err != nil {
		log.Error("circulation stopped", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}

func newRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, func()) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("memory storage, state is lost on exit")
		return seed(repository.NewMemory(log), log), func() {}
	}

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	return repo, db.Close
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/repository"
)

// Publisher delivers events after the state change they describe has
// committed. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, ev model.Event) error
}

type Config struct {
	IssuePoints    int64
	ReturnPoints   int64
	PopularWindow  time.Duration
	TrendingWindow time.Duration
	RecommendLimit int
	DiscoverLimit  int
}

func DefaultConfig() Config {
	return Config{
		IssuePoints:    10,
		ReturnPoints:   5,
		PopularWindow:  30 * 24 * time.Hour,
		TrendingWindow: 14 * 24 * time.Hour,
		RecommendLimit: 10,
		DiscoverLimit:  12,
	}
}

type Service struct {
	log  *zap.Logger
	repo repository.Repository
	pub  Publisher
	cfg  Config
	now  func() time.Time
}

type Option func(s *Service)

func WithPublisher(pub Publisher) Option {
	return func(s *Service) {
		s.pub = pub
	}
}

func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:  log.Named("service"),
		repo: repo,
		pub:  nopPublisher{},
		cfg:  DefaultConfig(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) publish(ctx context.Context, ev model.Event) {
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.log.Warn("publish event",
			zap.String("type", string(ev.Type)),
			zap.Int64("item", ev.ItemID),
			zap.Int64("borrower", ev.BorrowerID),
			zap.Error(err))
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.Event) error { return nil }

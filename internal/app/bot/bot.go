package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallpapermod/internal/broker"
	kafka_impl "wallpapermod/internal/broker/kafka"
	"wallpapermod/internal/config"
	"wallpapermod/internal/domain"
	"wallpapermod/internal/fetcher"
	"wallpapermod/internal/reddit"
	minio_repo "wallpapermod/internal/repository/archive/minio"
	postgres_repo "wallpapermod/internal/repository/submission/db/postgres"
	"wallpapermod/internal/resolver"
	"wallpapermod/internal/resolver/flickr"
	"wallpapermod/internal/resolver/imgur"
	"wallpapermod/internal/responder"
	"wallpapermod/internal/usecase/classifier"
	submission_uc "wallpapermod/internal/usecase/submission"
	"wallpapermod/internal/wiki"

	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
)

const startupTimeout = 30 * time.Second

type postLister interface {
	ListNew(ctx context.Context, after string, limit int) ([]domain.Post, string, error)
	GetPost(ctx context.Context, id string) (domain.Post, error)
}

type postProcessor interface {
	Process(ctx context.Context, post domain.Post) (*domain.Submission, error)
}

// Bot polls the subreddit's new queue, classifies each submission and
// records the verdict. It also serves recheck requests from the queue.
type Bot struct {
	cfg       *config.Config
	logger    *zlog.Zerolog
	db        *dbpg.DB
	reddit    postLister
	usecase   postProcessor
	producer  broker.Producer
	consumer  broker.Consumer
	stopAfter time.Time
}

func NewBot(cfg *config.Config, logger *zlog.Zerolog) (*Bot, error) {
	retries := cfg.DefaultRetryStrategy()

	stopAfter, err := cfg.StopAfterTime()
	if err != nil {
		return nil, err
	}

	dbOpts := &dbpg.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}

	db, err := dbpg.New(cfg.DBDSN(), []string{}, dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redditClient := reddit.NewClient(reddit.Credentials{
		Username:     cfg.Reddit.Username,
		Password:     cfg.Reddit.Password,
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
	}, cfg.Reddit.Subreddit, cfg.Reddit.UserAgent, retries, logger)

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	knownGood, err := wiki.NewSource(redditClient, logger).KnownGood(startupCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resolution table: %w", err)
	}

	moderators, err := redditClient.Moderators(startupCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load moderator list: %w", err)
	}

	linkResolver := resolver.New(
		redditClient,
		imgur.NewClient(cfg.Imgur.ClientID, retries),
		flickr.NewClient(cfg.Flickr.APIKey, retries),
		logger,
	)

	var dimFetcher *fetcher.HTTPFetcher
	if cfg.Minio.Enabled {
		evidence, err := minio_repo.NewEvidenceRepository(startupCtx, minio_repo.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
		}, retries, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create evidence repository: %w", err)
		}
		dimFetcher = fetcher.New(retries, evidence, logger)
	} else {
		dimFetcher = fetcher.New(retries, nil, logger)
	}

	cls := classifier.New(knownGood, moderators, linkResolver, dimFetcher, logger)
	repo := postgres_repo.NewSubmissionsRepository(db, retries)
	resp := responder.New(cfg.Reddit.Subreddit)

	var producer broker.Producer
	var consumer broker.Consumer
	var usecase *submission_uc.SubmissionUsecase
	if cfg.Kafka.Enabled {
		producer = kafka_impl.NewProducerClient(cfg.Kafka.Brokers, cfg.Kafka.ClassifiedTopic, retries)
		consumer = kafka_impl.NewConsumerClient(cfg.Kafka.Brokers, cfg.Kafka.RecheckTopic, cfg.Kafka.GroupID, retries)
		usecase = submission_uc.NewSubmissionUsecase(repo, cls, resp, producer, logger)
	} else {
		usecase = submission_uc.NewSubmissionUsecase(repo, cls, resp, nil, logger)
	}

	return &Bot{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		reddit:    redditClient,
		usecase:   usecase,
		producer:  producer,
		consumer:  consumer,
		stopAfter: stopAfter,
	}, nil
}

func (b *Bot) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go b.handleSignals(cancel)

	if b.consumer != nil {
		messages := make(chan kafka.Message)
		go b.consumer.StartConsuming(ctx, messages)
		go b.consumeRechecks(ctx, messages)
	}

	if len(b.cfg.Bot.Posts) > 0 {
		err := b.processExplicitPosts(ctx)
		b.shutdown()
		return err
	}

	b.logger.Info().
		Str("subreddit", b.cfg.Reddit.Subreddit).
		Dur("poll_interval", b.cfg.Bot.PollInterval).
		Msg("Bot started")

	b.scan(ctx)

	ticker := time.NewTicker(b.cfg.Bot.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Shutting down bot")
			b.shutdown()
			return nil
		case <-ticker.C:
			b.scan(ctx)
		}
	}
}

// scan walks the subreddit's new queue, newest first, until a run limit
// fires or the listing runs out. The stop-after post itself is still
// processed before the scan halts, and the post limit counts every post
// walked, processed or not.
func (b *Bot) scan(ctx context.Context) {
	seen := 0
	after := ""

	for {
		posts, next, err := b.reddit.ListNew(ctx, after, b.cfg.Bot.PageLimit)
		if err != nil {
			b.logger.Error().Err(err).Msg("Failed to list new posts")
			return
		}

		for _, post := range posts {
			if ctx.Err() != nil {
				return
			}
			if !b.stopAfter.IsZero() && post.CreatedAt.Before(b.stopAfter) {
				b.logger.Info().Time("created_at", post.CreatedAt).Msg("Reached stop-after timestamp")
				return
			}

			b.processPost(ctx, post)
			seen++

			if b.cfg.Bot.StopAfterID != "" && post.ID == b.cfg.Bot.StopAfterID {
				b.logger.Info().Str("post_id", post.ID).Msg("Reached stop-after post")
				return
			}
			if b.cfg.Bot.MaxPosts > 0 && seen >= b.cfg.Bot.MaxPosts {
				b.logger.Info().Int("seen", seen).Msg("Reached post limit")
				return
			}
		}

		if next == "" || len(posts) == 0 {
			b.logger.Debug().Int("seen", seen).Msg("Scan complete")
			return
		}
		after = next
	}
}

func (b *Bot) processPost(ctx context.Context, post domain.Post) {
	if _, err := b.usecase.Process(ctx, post); err != nil {
		if errors.Is(err, submission_uc.ErrAlreadyProcessed) {
			return
		}
		b.logger.Error().Err(err).Str("post_id", post.ID).Msg("Failed to process post")
	}
}

func (b *Bot) processExplicitPosts(ctx context.Context) error {
	for _, id := range b.cfg.Bot.Posts {
		post, err := b.reddit.GetPost(ctx, id)
		if err != nil {
			if errors.Is(err, reddit.ErrPostNotFound) {
				b.logger.Warn().Str("post_id", id).Msg("Post not found")
				continue
			}
			return fmt.Errorf("failed to fetch post %s: %w", id, err)
		}
		b.processPost(ctx, post)
	}
	return nil
}

func (b *Bot) consumeRechecks(ctx context.Context, messages <-chan kafka.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-messages:
			b.handleRecheck(ctx, msg)
		}
	}
}

func (b *Bot) handleRecheck(ctx context.Context, msg kafka.Message) {
	var req domain.RecheckRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		b.logger.Error().Err(err).Msg("Failed to unmarshal recheck request")
		return
	}

	post, err := b.reddit.GetPost(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, reddit.ErrPostNotFound) {
			b.logger.Warn().Str("post_id", req.PostID).Msg("Recheck target not found")
			b.commit(ctx, msg, req.PostID)
			return
		}
		b.logger.Error().Err(err).Str("post_id", req.PostID).Msg("Failed to fetch recheck target")
		return
	}

	if _, err := b.usecase.Process(ctx, post); err != nil {
		if errors.Is(err, submission_uc.ErrAlreadyProcessed) {
			b.logger.Debug().Str("post_id", req.PostID).Msg("Recheck target already recorded")
		} else {
			b.logger.Error().Err(err).Str("post_id", req.PostID).Msg("Failed to recheck post")
			return
		}
	}

	b.commit(ctx, msg, req.PostID)
}

func (b *Bot) commit(ctx context.Context, msg kafka.Message, postID string) {
	if err := b.consumer.Commit(ctx, msg); err != nil {
		b.logger.Error().Err(err).Str("post_id", postID).Msg("Failed to commit message")
	}
}

func (b *Bot) shutdown() {
	if b.consumer != nil {
		b.consumer.Close()
	}
	if b.producer != nil {
		b.producer.Close()
	}
	if b.db != nil && b.db.Master != nil {
		b.db.Master.Close()
	}
	b.logger.Info().Msg("Bot stopped gracefully")
}

func (b *Bot) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	b.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}

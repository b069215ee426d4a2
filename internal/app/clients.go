package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/brandcraft-backend/internal/platform/gcp"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/platform/openai"
	"github.com/yungbote/brandcraft-backend/internal/realtime/bus"
)

const redisPingTimeout = 5 * time.Second

type Clients struct {
	Redis  goredis.UniversalClient
	SSEBus bus.Bus
	OpenAI openai.Client
	Bucket gcp.BucketService
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Redis
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		rdb := goredis.NewUniversalClient(&goredis.UniversalOptions{
			Addrs:    []string{addr},
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("ping redis %s: %w", addr, err)
		}
		b, err := bus.NewRedisBus(log, rdb, cfg.RedisChannel)
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		out.Redis = rdb
		out.SSEBus = b
	} else {
		log.Warn("REDIS_ADDR not set; SSE fan-out and carousel positions stay in-process")
		out.SSEBus = bus.NewLocalBus()
	}

	// Object storage
	bucket, err := resolveBucketService(log, cfg)
	if err != nil {
		out.Close()
		return Clients{}, err
	}
	out.Bucket = bucket

	// OpenAI
	llm, err := openai.NewClient(cfg.OpenAI(), log)
	switch {
	case errors.Is(err, openai.ErrMissingAPIKey):
		log.Warn("OPENAI_API_KEY not set; content generation disabled")
	case err != nil:
		out.Close()
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	default:
		out.OpenAI = llm
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

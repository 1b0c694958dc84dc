package app

import (
	"os"
	"strings"

	"github.com/stembot/stembot-backend/internal/clients/openai"
	redisclient "github.com/stembot/stembot-backend/internal/clients/redis"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type Clients struct {
	OpenAI      openai.Client
	RateLimiter redisclient.RateLimiter
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, err
	}

	var limiter redisclient.RateLimiter
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		limiter, err = redisclient.NewRateLimiter(log)
		if err != nil {
			return Clients{}, err
		}
	} else {
		log.Warn("REDIS_ADDR not set, rate limiting disabled")
		limiter = redisclient.NoopRateLimiter{}
	}

	return Clients{OpenAI: ai, RateLimiter: limiter}, nil
}

package otp

import (
	"github.com/fixitworks/fixit/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewStoreFromConfig selects the phone-verification code store. The memory
// store is the default; OTP_STORE=redis keeps codes across restarts.
func NewStoreFromConfig(cfg config.Config, log *zap.Logger) Store {
	if cfg.OTPStore == "redis" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		log.Info("phone otp store using redis", zap.String("addr", cfg.RedisAddr))
		return NewRedisStore(client)
	}
	return NewMemoryStore()
}

var Module = fx.Module("otp",
	fx.Provide(NewStoreFromConfig),
)

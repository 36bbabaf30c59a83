package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkwise/parking-client/internal/core/domain"
)

const (
	credentialKey = "parking:credential"

	fieldAccessToken  = "access_token"
	fieldRefreshToken = "refresh_token"
	fieldUser         = "user"

	redisOpTimeout = 5 * time.Second
)

// Redis is a CredentialStore backed by a single Redis hash, for headless
// deployments where several processes share one session. Fields use the same
// fixed names as the file store.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *Redis) Get() (domain.Credential, error) {
	ctx, cancel := opContext()
	defer cancel()

	fields, err := r.client.HGetAll(ctx, credentialKey).Result()
	if err != nil {
		return domain.Credential{}, fmt.Errorf("read credentials: %w", err)
	}

	cred := domain.Credential{
		AccessToken:  fields[fieldAccessToken],
		RefreshToken: fields[fieldRefreshToken],
	}
	if raw := fields[fieldUser]; raw != "" {
		var user domain.UserSummary
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			cred.User = &user
		} else {
			// Corrupt cached profile: drop it, keep the tokens.
			_, _ = r.client.HDel(ctx, credentialKey, fieldUser).Result()
		}
	}
	return cred, nil
}

func (r *Redis) Set(partial domain.Credential) error {
	ctx, cancel := opContext()
	defer cancel()

	fields := make(map[string]any, 3)
	if partial.AccessToken != "" {
		fields[fieldAccessToken] = partial.AccessToken
	}
	if partial.RefreshToken != "" {
		fields[fieldRefreshToken] = partial.RefreshToken
	}
	if partial.User != nil {
		raw, err := json.Marshal(partial.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		fields[fieldUser] = string(raw)
	}
	if len(fields) == 0 {
		return nil
	}

	if err := r.client.HSet(ctx, credentialKey, fields).Err(); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (r *Redis) Clear() error {
	ctx, cancel := opContext()
	defer cancel()

	if err := r.client.Del(ctx, credentialKey).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// opContext bounds each store operation; the CredentialStore contract is
// synchronous so callers never pass a context in.
func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOpTimeout)
}

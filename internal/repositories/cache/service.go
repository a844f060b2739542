package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartwallet/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService wraps Redis with JSON serialization for domain entities.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

func walletKey(id uuid.UUID) string {
	return fmt.Sprintf("wallet:id:%s", id)
}

func userKey(id uuid.UUID) string {
	return fmt.Sprintf("user:id:%s", id)
}

// Wallet caching

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	if wallet == nil {
		return errors.New("cannot cache nil wallet")
	}
	return s.Set(ctx, walletKey(wallet.ID), wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, id uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	found, err := s.Get(ctx, walletKey(id), &wallet)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("wallet not found in cache")
	}
	return &wallet, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, id uuid.UUID) error {
	return s.Delete(ctx, walletKey(id))
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, userKey(user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, userKey(id), &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id uuid.UUID) error {
	return s.Delete(ctx, userKey(id))
}

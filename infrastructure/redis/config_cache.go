package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/pkg/logger"
)

const configKeyPrefix = "attendance:config:"

// missing rows are cached too, so unconfigured branches do not hit the database on every clock event
const cachedNone = "none"

// CachedAttendanceConfigRepository keeps branch configs in Redis in front of the database.
// Writes go to the database first and then drop the cached entry.
type CachedAttendanceConfigRepository struct {
	next   repositories.AttendanceConfigRepository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedAttendanceConfigRepository(next repositories.AttendanceConfigRepository, client *RedisClient, ttl time.Duration) repositories.AttendanceConfigRepository {
	return &CachedAttendanceConfigRepository{next: next, client: client.Client(), ttl: ttl}
}

func configKey(branchID uuid.UUID) string {
	return configKeyPrefix + branchID.String()
}

func (r *CachedAttendanceConfigRepository) GetByBranch(ctx context.Context, branchID uuid.UUID) (*models.AttendanceConfig, error) {
	key := configKey(branchID)

	cached, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if cached == cachedNone {
			return nil, nil
		}
		var config models.AttendanceConfig
		if jsonErr := json.Unmarshal([]byte(cached), &config); jsonErr == nil {
			return &config, nil
		}
	case !errors.Is(err, redis.Nil):
		logger.Warn(logger.CategoryRedis, "config_cache_read_failed", "Config cache read failed", map[string]interface{}{
			"branch_id": branchID.String(),
			"error":     err.Error(),
		})
	}

	config, err := r.next.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	value := cachedNone
	if config != nil {
		data, err := json.Marshal(config)
		if err != nil {
			return config, nil
		}
		value = string(data)
	}
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		logger.Warn(logger.CategoryRedis, "config_cache_write_failed", "Config cache write failed", map[string]interface{}{
			"branch_id": branchID.String(),
			"error":     err.Error(),
		})
	}

	return config, nil
}

func (r *CachedAttendanceConfigRepository) Create(ctx context.Context, config *models.AttendanceConfig) error {
	if err := r.next.Create(ctx, config); err != nil {
		return err
	}
	r.invalidate(ctx, config.BranchID)
	return nil
}

func (r *CachedAttendanceConfigRepository) Update(ctx context.Context, config *models.AttendanceConfig) error {
	if err := r.next.Update(ctx, config); err != nil {
		return err
	}
	r.invalidate(ctx, config.BranchID)
	return nil
}

func (r *CachedAttendanceConfigRepository) invalidate(ctx context.Context, branchID uuid.UUID) {
	if err := r.client.Del(ctx, configKey(branchID)).Err(); err != nil {
		logger.Warn(logger.CategoryRedis, "config_cache_invalidate_failed", "Config cache invalidation failed", map[string]interface{}{
			"branch_id": branchID.String(),
			"error":     err.Error(),
		})
	}
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

const roleCacheKeyPrefix = "role:name:"

// RoleCache answers role-by-name lookups from Redis so the role gates do not
// hit the store on every request. The role set is small and append-mostly;
// mutations invalidate the affected entries. All cache failures fall through
// to the repository.
type RoleCache struct {
	roles  repository.RoleRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRoleCache constructs the cache. A nil client disables caching.
func NewRoleCache(roles repository.RoleRepository, client *redis.Client, logger *zap.Logger) *RoleCache {
	return &RoleCache{
		roles:  roles,
		client: client,
		ttl:    time.Hour,
		logger: logger,
	}
}

// ResolveByName returns the role record for a name, consulting the cache
// first. Implements the auth.RoleResolver contract.
func (c *RoleCache) ResolveByName(ctx context.Context, name string) (*domain.Role, error) {
	if c.client != nil {
		raw, err := c.client.Get(ctx, roleCacheKeyPrefix+name).Result()
		if err == nil {
			var role domain.Role
			if jsonErr := json.Unmarshal([]byte(raw), &role); jsonErr == nil {
				return &role, nil
			}
		} else if err != redis.Nil {
			c.logger.Debug("role cache read failed", zap.String("role", name), zap.Error(err))
		}
	}

	role, err := c.roles.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	c.store(ctx, role)
	return role, nil
}

// Invalidate drops a cached role entry after a mutation.
func (c *RoleCache) Invalidate(ctx context.Context, name string) {
	if c.client == nil || name == "" {
		return
	}
	if err := c.client.Del(ctx, roleCacheKeyPrefix+name).Err(); err != nil {
		c.logger.Debug("role cache invalidation failed", zap.String("role", name), zap.Error(err))
	}
}

func (c *RoleCache) store(ctx context.Context, role *domain.Role) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(role)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, roleCacheKeyPrefix+role.Name, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("role cache write failed", zap.String("role", role.Name), zap.Error(err))
	}
}

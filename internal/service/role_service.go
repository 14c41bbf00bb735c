package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// RoleService manages the role directory.
type RoleService struct {
	roles  repository.RoleRepository
	cache  *RoleCache
	logger *zap.Logger
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository, cache *RoleCache, logger *zap.Logger) *RoleService {
	return &RoleService{roles: roles, cache: cache, logger: logger}
}

// Create adds a role after a best-effort name uniqueness pre-check; the
// unique index on roles.name remains authoritative and also maps to Conflict.
func (s *RoleService) Create(ctx context.Context, name, description string) (*domain.Role, error) {
	if name == "" {
		return nil, errorutil.NewValidationError("invalid role", map[string]any{
			"name": "Name is required and must be a string.",
		})
	}

	if _, err := s.roles.GetByName(ctx, name); err == nil {
		return nil, errorutil.NewConflict("role with the same name already exists", map[string]any{"name": name})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, errorutil.MapError(err)
	}

	role := &domain.Role{Name: name, Description: description}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, errorutil.MapError(err)
	}
	return role, nil
}

// Update mutates a role and invalidates its cache entries.
func (s *RoleService) Update(ctx context.Context, id string, name, description *string) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("role", map[string]any{"role_id": id})
		}
		return nil, errorutil.MapError(err)
	}

	oldName := role.Name
	if name != nil && *name != "" {
		role.Name = *name
	}
	if description != nil {
		role.Description = *description
	}

	if err := s.roles.Update(ctx, role); err != nil {
		return nil, errorutil.MapError(err)
	}
	s.invalidate(ctx, oldName, role.Name)
	return role, nil
}

// Delete removes a role.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewNotFound("role", map[string]any{"role_id": id})
		}
		return errorutil.MapError(err)
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		return errorutil.MapError(err)
	}
	s.invalidate(ctx, role.Name)
	return nil
}

// Get fetches a role by id.
func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("role", map[string]any{"role_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return role, nil
}

// FindByName fetches a role by its unique name.
func (s *RoleService) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("role", map[string]any{"name": name})
		}
		return nil, errorutil.MapError(err)
	}
	return role, nil
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return roles, nil
}

// Seed creates the well-known roles when absent. Runs at startup.
func (s *RoleService) Seed(ctx context.Context) error {
	seeds := []domain.Role{
		{Name: domain.RoleCustomer, Description: "End-user filing support tickets"},
		{Name: domain.RoleSupportAgent, Description: "Support agent handling tickets"},
		{Name: domain.RoleAdmin, Description: "Administrator"},
	}
	for i := range seeds {
		if _, err := s.roles.GetByName(ctx, seeds[i].Name); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if err := s.roles.Create(ctx, &seeds[i]); err != nil {
			return err
		}
		s.logger.Info("seeded role", zap.String("name", seeds[i].Name))
	}
	return nil
}

func (s *RoleService) invalidate(ctx context.Context, names ...string) {
	if s.cache == nil {
		return
	}
	for _, name := range names {
		s.cache.Invalidate(ctx, name)
	}
}

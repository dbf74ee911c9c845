package rbac

import (
	"sort"
	"sync"

	"go-calypso/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) ([]domain.PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if _, ok := domain.ParseRole(req.Role); !ok {
		return false, nil
	}

	s.mu.RLock()
	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role string) ([]domain.PermissionResponse, error) {
	s.mu.RLock()
	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	out := make([]domain.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		out = append(out, domain.PermissionResponse{Resource: p[1], Action: p[2]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Action < out[j].Action
	})
	return out, nil
}

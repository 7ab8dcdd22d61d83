package rbac

import (
	"github.com/casbin/casbin/v2"
)

// Role names as carried in the JWT `role` claim.
const (
	RoleAdmin   = "admin"
	RoleHR      = "hr"
	RoleFinance = "finance"
)

type Service interface {
	Enforce(role, resource, action string) (bool, error)
	// HasPermission adalah varian Enforce yang menelan error (dipakai guard
	// internal yang tidak berada di jalur HTTP).
	HasPermission(role, resource, action string) bool
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

func (s *service) HasPermission(role, resource, action string) bool {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		return false
	}
	return allowed
}

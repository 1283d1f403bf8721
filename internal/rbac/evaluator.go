package rbac

import (
	"github.com/danindra/workforce-scheduling/internal"
)

// Evaluator answers authorization point queries against the registry
// snapshot. Both queries are total and side-effect free; an absent principal
// or a dangling role reference always evaluates to deny.
type Evaluator struct {
	registry *Registry
}

func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// HasPermission reports whether the principal's role grants the permission.
func (e *Evaluator) HasPermission(p *internal.Principal, permission Permission) bool {
	if p == nil {
		return false
	}
	for _, granted := range e.registry.PermissionsFor(p.RoleID) {
		if granted == permission {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the principal's role grants at least one
// of the permissions.
func (e *Evaluator) HasAnyPermission(p *internal.Principal, permissions ...Permission) bool {
	for _, perm := range permissions {
		if e.HasPermission(p, perm) {
			return true
		}
	}
	return false
}

// RoleClassAllowed reports whether the principal's coarse role class is one
// of the allowed classes.
func (e *Evaluator) RoleClassAllowed(p *internal.Principal, allowed ...RoleClass) bool {
	if p == nil {
		return false
	}
	class := e.registry.ClassFor(p.RoleID)
	for _, c := range allowed {
		if class == c {
			return true
		}
	}
	return false
}

// PermissionsOf returns the principal's effective permission set.
func (e *Evaluator) PermissionsOf(p *internal.Principal) []Permission {
	if p == nil {
		return []Permission{}
	}
	return e.registry.PermissionsFor(p.RoleID)
}

// ClassOf returns the principal's coarse role class, employee when absent.
func (e *Evaluator) ClassOf(p *internal.Principal) RoleClass {
	if p == nil {
		return RoleClassEmployee
	}
	return e.registry.ClassFor(p.RoleID)
}

package rbac

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// RoleDefinition is the registry's view of a role: identity, coarse class and
// the exact permission set. Repositories produce it, the registry snapshots it.
type RoleDefinition struct {
	ID          int64
	CompanyID   int64
	Name        string
	DisplayName string
	Class       RoleClass
	Permissions []Permission
}

// RoleProvider supplies the current role definitions. The postgres role
// repository is the production implementation.
type RoleProvider interface {
	ListRoleDefinitions(ctx context.Context) ([]RoleDefinition, error)
}

type roleEntry struct {
	companyID   int64
	displayName string
	class       RoleClass
	permissions map[Permission]struct{}
}

// Registry resolves a role id to its permission set and role class from an
// in-memory snapshot. Lookups never fail: unknown role ids resolve to the
// empty permission set and the employee class.
type Registry struct {
	mu     sync.RWMutex
	roles  map[int64]roleEntry
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		roles:  make(map[int64]roleEntry),
		logger: logger,
	}
}

// Reload replaces the snapshot with the provider's current definitions.
// Called at startup and after every role mutation.
func (r *Registry) Reload(ctx context.Context, provider RoleProvider) error {
	defs, err := provider.ListRoleDefinitions(ctx)
	if err != nil {
		return err
	}

	roles := make(map[int64]roleEntry, len(defs))
	for _, def := range defs {
		entry := roleEntry{
			companyID:   def.CompanyID,
			displayName: def.DisplayName,
			class:       def.Class,
			permissions: make(map[Permission]struct{}, len(def.Permissions)),
		}
		if !entry.class.Valid() {
			entry.class = RoleClassEmployee
		}
		for _, p := range def.Permissions {
			if !p.Valid() {
				r.logger.Warn("registry: skipping unknown permission token",
					"role_id", def.ID, "permission", p)
				continue
			}
			entry.permissions[p] = struct{}{}
		}
		roles[def.ID] = entry
	}

	r.mu.Lock()
	r.roles = roles
	r.mu.Unlock()

	r.logger.Info("role registry reloaded", "roles", len(roles))
	return nil
}

// ReplaceAll installs definitions directly, bypassing a provider. Used by
// tests and seed tooling.
func (r *Registry) ReplaceAll(defs []RoleDefinition) {
	_ = r.Reload(context.Background(), staticProvider(defs))
}

type staticProvider []RoleDefinition

func (s staticProvider) ListRoleDefinitions(context.Context) ([]RoleDefinition, error) {
	return []RoleDefinition(s), nil
}

// PermissionsFor returns the role's permission set, sorted and deduplicated.
// Unknown role ids yield an empty set, never an error.
func (r *Registry) PermissionsFor(roleID int64) []Permission {
	r.mu.RLock()
	entry, ok := r.roles[roleID]
	r.mu.RUnlock()

	if !ok {
		return []Permission{}
	}

	perms := make([]Permission, 0, len(entry.permissions))
	for p := range entry.permissions {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// ClassFor maps a role id to its coarse class, defaulting to employee for
// unknown role ids.
func (r *Registry) ClassFor(roleID int64) RoleClass {
	r.mu.RLock()
	entry, ok := r.roles[roleID]
	r.mu.RUnlock()

	if !ok {
		return RoleClassEmployee
	}
	return entry.class
}

// DisplayNameFor returns the role's display name for user-facing messages.
// Unknown role ids fall back to the employee class label.
func (r *Registry) DisplayNameFor(roleID int64) string {
	r.mu.RLock()
	entry, ok := r.roles[roleID]
	r.mu.RUnlock()

	if !ok || entry.displayName == "" {
		return "Employee"
	}
	return entry.displayName
}

// Known reports whether the role id is present in the snapshot.
func (r *Registry) Known(roleID int64) bool {
	r.mu.RLock()
	_, ok := r.roles[roleID]
	r.mu.RUnlock()
	return ok
}

// BelongsTo reports whether the role id is present and owned by the company.
// Role assignment must never reach across company boundaries.
func (r *Registry) BelongsTo(roleID, companyID int64) bool {
	r.mu.RLock()
	entry, ok := r.roles[roleID]
	r.mu.RUnlock()
	return ok && entry.companyID == companyID
}

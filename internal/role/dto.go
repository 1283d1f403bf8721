package role

import (
	"fmt"
	"regexp"

	"github.com/danindra/workforce-scheduling/internal"
	"github.com/danindra/workforce-scheduling/internal/rbac"
)

var machineNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type CreateRoleDTO struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Class       string   `json:"class"`
	Permissions []string `json:"permissions"`
}

type UpdateRoleDTO struct {
	DisplayName string   `json:"display_name"`
	Permissions []string `json:"permissions"`
}

type RoleResponse struct {
	*Role
	UserCount int64 `json:"user_count"`
}

func (d CreateRoleDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if !machineNamePattern.MatchString(d.Name) {
		return internal.NewValidationFieldError("name", "name must be snake_case", internal.ErrCodeValidationFailed)
	}
	if d.DisplayName == "" {
		return internal.NewValidationFieldError("display_name", "display name is required", internal.ErrCodeValidationFailed)
	}
	if d.Class != "" && !rbac.RoleClass(d.Class).Valid() {
		return internal.NewValidationFieldError("class", "class must be admin, manager or employee", internal.ErrCodeValidationFailed)
	}
	return validatePermissionTokens(d.Permissions)
}

func (d UpdateRoleDTO) Validate() error {
	if d.DisplayName == "" {
		return internal.NewValidationFieldError("display_name", "display name is required", internal.ErrCodeValidationFailed)
	}
	return validatePermissionTokens(d.Permissions)
}

// validatePermissionTokens rejects tokens outside the closed permission set,
// so a typo is a 400 rather than a permanently-false check.
func validatePermissionTokens(tokens []string) error {
	for _, raw := range tokens {
		if _, ok := rbac.ParsePermission(raw); !ok {
			return internal.NewValidationFieldError("permissions",
				fmt.Sprintf("unknown permission: %s", raw), internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

func parsePermissions(tokens []string) []rbac.Permission {
	out := make([]rbac.Permission, 0, len(tokens))
	seen := make(map[rbac.Permission]struct{}, len(tokens))
	for _, raw := range tokens {
		p, ok := rbac.ParsePermission(raw)
		if !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

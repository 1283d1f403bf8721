package internal

import "context"

// Principal is the authenticated user attached to a request. It is written
// exactly once per request by the auth middleware; everything downstream
// treats it as read-only.
type Principal struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	RoleID       int64  `json:"role_id"`
	CompanyID    int64  `json:"company_id"`
	DepartmentID *int64 `json:"department_id,omitempty"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	IsActive     bool   `json:"is_active"`
}

const ContextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextPrincipalKey).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

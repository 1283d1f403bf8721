package postgres

import (
	"context"
	"errors"
	"time"

	sessionDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/session"
	userDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/user"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetSystemAdmin returns the active holder of the system-defined admin role.
// This is the account the placeholder SSO flow activates.
func (r *Repository) GetSystemAdmin(ctx context.Context) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.is_system_defined = ? AND users.is_active = ?", true, true).
		Order("users.id ASC").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetFirstByRoleClass(ctx context.Context, companyID int64, class string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.class = ? AND users.company_id = ? AND users.is_active = ?", class, companyID, true).
		Order("users.id ASC").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) TouchLastLogin(ctx context.Context, userID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("last_login_at", now).Error
}

func (r *Repository) Create(ctx context.Context, id string, userID int64, principal string, expiresAt time.Time) error {
	sess := sessionDatamodel.Session{
		ID:        id,
		UserID:    userID,
		Principal: principal,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Create(&sess).Error
}

func (r *Repository) GetPayload(ctx context.Context, id string) (string, time.Time, error) {
	var sess sessionDatamodel.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", time.Time{}, ErrNotFound
		}
		return "", time.Time{}, err
	}
	return sess.Principal, sess.ExpiresAt, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&sessionDatamodel.Session{}).Error
}

// DeleteExpired clears sessions past their expiry. Called from the worker.
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&sessionDatamodel.Session{})
	return res.RowsAffected, res.Error
}

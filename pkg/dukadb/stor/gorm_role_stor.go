package stor

import (
	"errors"

	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GormRoleStor struct {
	db *gorm.DB
}

func NewGormRoleStor(db *gorm.DB) *GormRoleStor {
	return &GormRoleStor{db: db}
}

func (s *GormRoleStor) CreateRole(name string, permissions []string) (*dukamodel.Role, error) {
	role := &dukamodel.Role{
		Name:        name,
		Slug:        slug.Make(name),
		Permissions: toRolePermissions(0, permissions),
	}

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(role).Error
	})

	if err != nil {
		return nil, err
	}

	return role, nil
}

func (s *GormRoleStor) GetRoleByID(roleID int) (*dukamodel.Role, error) {
	var role dukamodel.Role
	err := s.db.Preload("Permissions").Where("id = ?", roleID).First(&role).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	return &role, nil
}

func (s *GormRoleStor) ListRoles() ([]dukamodel.Role, error) {
	var roles []dukamodel.Role
	err := s.db.Preload("Permissions").Order("name").Find(&roles).Error
	return roles, err
}

// SetRolePermissions replaces every permission on the role.
func (s *GormRoleStor) SetRolePermissions(roleID int, permissions []string) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := mustFindRole(tx, roleID); err != nil {
			return err
		}

		if err := tx.Where("role_id = ?", roleID).Delete(&dukamodel.RolePermission{}).Error; err != nil {
			return err
		}

		perms := toRolePermissions(roleID, permissions)
		if len(perms) == 0 {
			return nil
		}

		return tx.Create(&perms).Error
	})
}

// AssignRoleToUser gives userID exactly one role, replacing any earlier assignment.
func (s *GormRoleStor) AssignRoleToUser(userID string, roleID int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := mustFindRole(tx, roleID); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&dukamodel.UserRole{}).Error; err != nil {
			return err
		}

		return tx.Create(&dukamodel.UserRole{UserID: userID, RoleID: roleID}).Error
	})
}

// mustFindRole returns ErrNotFound when roleID doesn't exist.
func mustFindRole(tx *gorm.DB, roleID int) error {
	var count int64
	if err := tx.Model(&dukamodel.Role{}).Where("id = ?", roleID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *GormRoleStor) GetPermissionsForUser(userID string) ([]string, error) {
	var permissions []string
	err := s.db.Model(&dukamodel.RolePermission{}).
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("role_permissions.permission").
		Pluck("role_permissions.permission", &permissions).Error

	return permissions, err
}

func toRolePermissions(roleID int, permissions []string) []dukamodel.RolePermission {
	perms := make([]dukamodel.RolePermission, 0, len(permissions))
	for _, p := range permissions {
		perms = append(perms, dukamodel.RolePermission{RoleID: roleID, Permission: p})
	}

	return perms
}

package dukamodel

import "time"

type Role struct {
	ID          int              `json:"id"`
	Name        string           `json:"name" gorm:"uniqueIndex;size:128"`
	Slug        string           `json:"slug"`
	Permissions []RolePermission `json:"permissions" gorm:"foreignKey:RoleID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PermissionStrings flattens the role's permissions.
func (r Role) PermissionStrings() []string {
	perms := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, p.Permission)
	}

	return perms
}

type RolePermission struct {
	ID         int    `json:"id"`
	RoleID     int    `json:"role_id" gorm:"index"`
	Permission string `json:"permission" gorm:"size:128"`
}

type UserRole struct {
	ID     int    `json:"id"`
	UserID string `json:"user_id" gorm:"index;size:64"`
	RoleID int    `json:"role_id"`
	Role   *Role  `json:"role,omitempty" gorm:"foreignKey:RoleID"`
}

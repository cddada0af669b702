package stor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"github.com/gosimple/slug"
)

type InMemoryRoleStor struct {
	mu        sync.Mutex
	nextID    int
	roles     map[int]*dukamodel.Role
	userRoles map[string]int
}

func NewInMemoryRoleStor() *InMemoryRoleStor {
	return &InMemoryRoleStor{
		roles:     make(map[int]*dukamodel.Role),
		userRoles: make(map[string]int),
	}
}

func (s *InMemoryRoleStor) CreateRole(name string, permissions []string) (*dukamodel.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.roles {
		if r.Name == name {
			return nil, fmt.Errorf("role %q already exists", name)
		}
	}

	s.nextID++
	role := &dukamodel.Role{
		ID:          s.nextID,
		Name:        name,
		Slug:        slug.Make(name),
		Permissions: toRolePermissions(s.nextID, permissions),
	}
	s.roles[role.ID] = role

	roleCopy := *role
	return &roleCopy, nil
}

func (s *InMemoryRoleStor) GetRoleByID(roleID int) (*dukamodel.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[roleID]
	if !ok {
		return nil, ErrNotFound
	}

	roleCopy := *role
	return &roleCopy, nil
}

func (s *InMemoryRoleStor) ListRoles() ([]dukamodel.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles := make([]dukamodel.Role, 0, len(s.roles))
	for _, r := range s.roles {
		roles = append(roles, *r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })

	return roles, nil
}

func (s *InMemoryRoleStor) SetRolePermissions(roleID int, permissions []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[roleID]
	if !ok {
		return ErrNotFound
	}

	role.Permissions = toRolePermissions(roleID, permissions)
	return nil
}

func (s *InMemoryRoleStor) AssignRoleToUser(userID string, roleID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[roleID]; !ok {
		return ErrNotFound
	}

	s.userRoles[userID] = roleID
	return nil
}

func (s *InMemoryRoleStor) GetPermissionsForUser(userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roleID, ok := s.userRoles[userID]
	if !ok {
		return nil, nil
	}

	perms := s.roles[roleID].PermissionStrings()
	sort.Strings(perms)

	return perms, nil
}

package stor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dukahub/dukaweb/pkg/dukadb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoErrorf(t, err, "gorm.Open failed: %s", err)

	sqlitedb, err := db.DB()
	require.NoError(t, err)
	sqlitedb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlitedb.Close() })

	require.NoError(t, dukadb.RunMigrations(db))

	return db
}

func storsUnderTest(t *testing.T) map[string]*Stors {
	return map[string]*Stors{
		"gorm":      NewGormStors(newTestDB(t)),
		"in-memory": NewInMemoryStors(),
	}
}

func TestSessionStor(t *testing.T) {
	for name, stors := range storsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			s := stors.SessionStor

			session, err := s.CreateSession("u1", "asha", "english")
			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)

			found, err := s.GetSessionByToken(session.Token)
			require.NoError(t, err)
			assert.Equal(t, "u1", found.UserID)
			assert.Equal(t, "asha", found.Username)

			require.NoError(t, s.SetLanguageForUser("u1", "swahili"))
			found, err = s.GetSessionByToken(session.Token)
			require.NoError(t, err)
			assert.Equal(t, "swahili", found.Language)

			require.NoError(t, s.DeleteSession(session.Token))
			_, err = s.GetSessionByToken(session.Token)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestPreferenceStor(t *testing.T) {
	for name, stors := range storsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			s := stors.PreferenceStor

			lang, err := s.GetLanguage("u1")
			require.NoError(t, err)
			assert.Equal(t, "", lang)

			require.NoError(t, s.SetLanguage("u1", "swahili"))
			require.NoError(t, s.SetLanguage("u1", "english"))

			lang, err = s.GetLanguage("u1")
			require.NoError(t, err)
			assert.Equal(t, "english", lang)
		})
	}
}

func TestRoleStor(t *testing.T) {
	for name, stors := range storsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			s := stors.RoleStor

			cashier, err := s.CreateRole("Shop Cashier", []string{"view_sale", "create_sale"})
			require.NoError(t, err)
			assert.Equal(t, "shop-cashier", cashier.Slug)

			manager, err := s.CreateRole("Manager", []string{"view_debt", "delete_debt"})
			require.NoError(t, err)

			perms, err := s.GetPermissionsForUser("u1")
			require.NoError(t, err)
			assert.Empty(t, perms)

			require.NoError(t, s.AssignRoleToUser("u1", cashier.ID))
			perms, err = s.GetPermissionsForUser("u1")
			require.NoError(t, err)
			assert.Equal(t, []string{"create_sale", "view_sale"}, perms)

			require.NoError(t, s.AssignRoleToUser("u1", manager.ID))
			require.NoError(t, s.SetRolePermissions(manager.ID, []string{"view_debt"}))
			perms, err = s.GetPermissionsForUser("u1")
			require.NoError(t, err)
			assert.Equal(t, []string{"view_debt"}, perms)

			role, err := s.GetRoleByID(manager.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"view_debt"}, role.PermissionStrings())

			roles, err := s.ListRoles()
			require.NoError(t, err)
			require.Len(t, roles, 2)
			assert.Equal(t, "Manager", roles[0].Name)

			_, err = s.GetRoleByID(999)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.SetRolePermissions(999, nil), ErrNotFound)

			// An unknown role leaves the current assignment alone.
			assert.ErrorIs(t, s.AssignRoleToUser("u1", 999), ErrNotFound)
			perms, err = s.GetPermissionsForUser("u1")
			require.NoError(t, err)
			assert.Equal(t, []string{"view_debt"}, perms)
		})
	}
}

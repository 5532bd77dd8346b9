package commands

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alextreichler/carrental/internal/store"
	"github.com/alextreichler/carrental/internal/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSQLiteStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "cli.db"), 1)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStore(t)

	require.NoError(t, createAdmin(ctx, st, "Jane Doe", "jane@example.com", "s3cret"))

	admin, err := st.GetAdminByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", admin.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")))
	assert.False(t, admin.RegisteredAt.IsZero())
}

func TestCreateAdmin_Duplicate(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStore(t)

	require.NoError(t, createAdmin(ctx, st, "Jane Doe", "jane@example.com", "s3cret"))
	err := createAdmin(ctx, st, "Other Jane", "jane@example.com", "different")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Admins)
}

func TestCreateAdmin_PasswordTooLong(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStore(t)

	err := createAdmin(ctx, st, "Jane Doe", "jane@example.com", strings.Repeat("x", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)

	_, err = st.GetAdminByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

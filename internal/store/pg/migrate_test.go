package pg

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "github.com/MixxMasterMike123/b8s-reseller-app-sub004/migrations/postgres"
)

func TestParseMigrations_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_second.sql": {Data: []byte("SELECT 2;")},
		"0001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":       {Data: []byte("ignored")},
		"10_tenth.sql":    {Data: []byte("SELECT 10;")},
	}
	got, err := ParseMigrations(fsys, ".")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{got[0].Version, got[1].Version, got[2].Version})
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "SELECT 10;", got[2].SQL)
}

func TestParseMigrations_Embedded(t *testing.T) {
	got, err := ParseMigrations(migrations.FS, migrations.Dir)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, 1, got[0].Version)
	assert.Contains(t, got[0].SQL, "reseller_account")
	assert.Contains(t, got[0].SQL, "retail_customer")
}

func TestNormalizeID(t *testing.T) {
	id, ok := normalizeID(" 6F9619FF-8B86-D011-B42D-00C04FC964FF ")
	require.True(t, ok)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", id)

	_, ok = normalizeID("user-42")
	assert.False(t, ok)
	_, ok = normalizeID("")
	assert.False(t, ok)
}

func TestStore_NonUUIDIsAbsent(t *testing.T) {
	// A zero Store has no pool; lookups must short-circuit before touching it.
	s := &Store{}
	a, err := s.FindRegisteredAccountByID(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, a)
	c, err := s.FindRetailCustomerByID(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, c)
}

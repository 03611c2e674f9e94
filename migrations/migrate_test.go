package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

func TestLoad_Embedded(t *testing.T) {
	migrations, err := NewMigrator(nil, logger.Nop()).Load()
	require.NoError(t, err)
	require.Len(t, migrations, 4)

	for i, mig := range migrations {
		assert.Equal(t, i+1, mig.Version)
		assert.NotEmpty(t, mig.SQL)
	}
	assert.Equal(t, "001_users.sql", migrations[0].Name)
	assert.Contains(t, migrations[3].SQL, "appointments_one_live_per_slot")
}

func TestLoad_SortsAndSkips(t *testing.T) {
	source := fstest.MapFS{
		"010_late.sql":   {Data: []byte("SELECT 10;")},
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("docs")},
		"seed.sql":       {Data: []byte("SELECT 0;")},
		"draft_x.sql":    {Data: []byte("SELECT -1;")},
	}

	migrations, err := NewMigrator(nil, logger.Nop()).WithSource(source).Load()
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, []int{1, 2, 10}, []int{migrations[0].Version, migrations[1].Version, migrations[2].Version})
	assert.Equal(t, "SELECT 2;", migrations[1].SQL)
}

func TestLoad_DuplicateVersion(t *testing.T) {
	source := fstest.MapFS{
		"001_a.sql":  {Data: []byte("SELECT 1;")},
		"0001_b.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := NewMigrator(nil, logger.Nop()).WithSource(source).Load()
	assert.ErrorIs(t, err, ErrDuplicateNumber)
}

package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/storage/sqlstore"
	"Backend-Attendance/src/storage/storagetest"
)

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		s, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "attendance.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close(context.Background()) })
		return s
	})
}

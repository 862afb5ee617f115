package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miigate/internal/mii/models"
	"miigate/internal/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded user starts with the default guest record", func(t *testing.T) {
		s := NewInMemory()
		s.Seed("alice")

		record, err := s.GetMii(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.DefaultRecord(), record)
	})

	t.Run("set replaces the whole record", func(t *testing.T) {
		s := NewInMemory()
		s.Seed("alice")

		cmoc := models.MiiRecord{
			MiiType:     models.MiiTypeCMOC,
			MiiData:     "abcdef",
			CMOCEntryNo: "123456789012",
		}
		require.NoError(t, s.SetMii(ctx, "alice", cmoc))

		upload := models.MiiRecord{MiiType: models.MiiTypeUpload, MiiData: "cGF5bG9hZA"}
		require.NoError(t, s.SetMii(ctx, "alice", upload))

		record, err := s.GetMii(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, upload, record)
		assert.Empty(t, record.CMOCEntryNo, "type switch must not leave a stale entry number")
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		s := NewInMemory()

		_, err := s.GetMii(ctx, "ghost")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		err = s.SetMii(ctx, "ghost", models.DefaultRecord())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

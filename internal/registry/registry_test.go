package registry

import (
	"testing"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateRoom(t *testing.T) {
	t.Run("Created room is retrievable under its ID", func(t *testing.T) {
		// Given: an empty registry
		reg := New()

		// When: a room is created
		room := reg.CreateRoom()

		// Then: the room has an ID and can be looked up
		require.NotEmpty(t, room.ID())
		assert.Len(t, room.ID(), 7)

		found, err := reg.GetRoom(room.ID())
		require.NoError(t, err)
		assert.Same(t, room, found)
	})

	t.Run("Created rooms get distinct IDs", func(t *testing.T) {
		// Given: an empty registry
		reg := New()

		// When: many rooms are created
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			room := reg.CreateRoom()

			// Then: no ID repeats
			require.False(t, seen[room.ID()], "duplicate room id %s", room.ID())
			seen[room.ID()] = true
		}

		assert.Equal(t, 100, reg.Len())
	})
}

func TestRegistry_GetRoom(t *testing.T) {
	t.Run("Returns ErrRoomNotFound for an unknown ID", func(t *testing.T) {
		// Given: an empty registry
		reg := New()

		// When: looking up a room that was never created
		_, err := reg.GetRoom("missing")

		// Then: ErrRoomNotFound is returned
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRegistry_DeleteRoom(t *testing.T) {
	t.Run("Deleted room is gone", func(t *testing.T) {
		// Given: a registry with one room
		reg := New()
		room := reg.CreateRoom()

		// When: the room is deleted
		reg.DeleteRoom(room.ID())

		// Then: lookups fail and the registry is empty
		_, err := reg.GetRoom(room.ID())
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("Deleting an absent room is idempotent", func(t *testing.T) {
		// Given: an empty registry
		reg := New()

		// When/Then: deleting twice does not panic or error
		reg.DeleteRoom("missing")
		reg.DeleteRoom("missing")
		assert.Equal(t, 0, reg.Len())
	})
}

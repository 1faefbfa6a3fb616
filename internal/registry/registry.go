// Package registry owns the mapping from room ID to live Room instances.
// One instance is created at process start and handed to the gateway; tests
// get their own isolated registry instead of sharing module-level state.
package registry

import (
	"sync"

	"github.com/gridgames/tictactoe-rooms/internal/apperror"
	"github.com/gridgames/tictactoe-rooms/internal/entity"
	"github.com/gridgames/tictactoe-rooms/internal/pkg"
)

type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*entity.Room),
	}
}

// CreateRoom registers a new empty room under a fresh ID. Generated IDs are
// checked against live keys and re-rolled on collision.
func (that *Registry) CreateRoom() *entity.Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	var id string
	for {
		id = pkg.GenerateRoomID()
		if _, taken := that.rooms[id]; !taken {
			break
		}
	}

	room := entity.NewRoom(id)
	that.rooms[id] = room

	return room
}

func (that *Registry) GetRoom(id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// DeleteRoom removes the room; deleting an absent ID is a no-op.
func (that *Registry) DeleteRoom(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, id)
}

// Len reports the number of live rooms.
func (that *Registry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}

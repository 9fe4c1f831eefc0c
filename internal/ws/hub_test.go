package ws

import "testing"

func TestHubAddAndRemoveClient(t *testing.T) {
	hub := NewHub()

	hub.AddClient("room-1", nil, ConnInfo{})
	if len(hub.rooms) != 1 {
		t.Fatalf("expected room to be created")
	}
	if hub.Members("room-1") != 1 {
		t.Fatalf("expected one member")
	}

	hub.RemoveClient("room-1", nil)
	if len(hub.rooms) != 0 {
		t.Fatalf("expected room to be removed")
	}
}

func TestHubRoomsAreIndependent(t *testing.T) {
	hub := NewHub()

	hub.AddClient("room-1", nil, ConnInfo{})
	hub.RemoveClient("room-2", nil)

	if hub.Members("room-1") != 1 {
		t.Fatalf("removing from another room must not touch room-1")
	}
}

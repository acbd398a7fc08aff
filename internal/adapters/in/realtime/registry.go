// Package realtime pushes domain events to connected websocket clients.
//
// A Registry is created once by the composition root and shared by the websocket
// handler, which registers authenticated clients, and the event fanout, which
// broadcasts to them. Delivery is at most once: a client whose send buffer is full is
// dropped and has to reconnect and re-fetch.
package realtime

import (
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
)

type clientSet map[*Client]struct{}

// Registry tracks connected clients by role and by user.
type Registry struct {
	mu     sync.RWMutex
	byRole map[kernel.Role]clientSet
	byUser map[kernel.UUID]clientSet
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		byRole: make(map[kernel.Role]clientSet),
		byUser: make(map[kernel.UUID]clientSet),
		logger: logger.With("component", "realtime_registry"),
	}
}

// Register adds c to the channels of its role and its user.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	add(r.byRole, c.actor.Role, c)
	add(r.byUser, c.actor.ID, c)
	r.logger.Debug("client registered", "userId", c.actor.ID, "role", c.actor.Role)
}

// Unregister removes c and closes its send channel. Unregistering twice is a no-op.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[c.actor.ID][c]; !ok {
		return
	}
	remove(r.byRole, c.actor.Role, c)
	remove(r.byUser, c.actor.ID, c)
	close(c.send)
	r.logger.Debug("client unregistered", "userId", c.actor.ID, "role", c.actor.Role)
}

// BroadcastToRole queues msg for every client of role and returns how many accepted it.
func (r *Registry) BroadcastToRole(role kernel.Role, msg []byte) int {
	return r.broadcast(func() clientSet { return r.byRole[role] }, msg)
}

// BroadcastToUser queues msg for every connection of userID and returns how many accepted it.
func (r *Registry) BroadcastToUser(userID kernel.UUID, msg []byte) int {
	return r.broadcast(func() clientSet { return r.byUser[userID] }, msg)
}

// Connections returns the number of registered clients.
func (r *Registry) Connections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, set := range r.byUser {
		n += len(set)
	}
	return n
}

// CloseAll unregisters every client, which makes their writers send a close frame.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	all := make([]*Client, 0)
	for _, set := range r.byUser {
		for c := range set {
			all = append(all, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range all {
		r.Unregister(c)
	}
}

// broadcast sends under the read lock so that no send races with Unregister closing
// the channel. Slow clients are collected and dropped afterwards.
func (r *Registry) broadcast(targets func() clientSet, msg []byte) int {
	var delivered int
	var slow []*Client

	r.mu.RLock()
	for c := range targets() {
		select {
		case c.send <- msg:
			delivered++
		default:
			slow = append(slow, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range slow {
		r.logger.Warn("dropping slow client", "userId", c.actor.ID, "role", c.actor.Role)
		r.Unregister(c)
	}
	return delivered
}

func add[K comparable](index map[K]clientSet, key K, c *Client) {
	set, ok := index[key]
	if !ok {
		set = make(clientSet)
		index[key] = set
	}
	set[c] = struct{}{}
}

func remove[K comparable](index map[K]clientSet, key K, c *Client) {
	set, ok := index[key]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(index, key)
	}
}

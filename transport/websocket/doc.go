// Package websocket provides the live-view transport for the 2048 server.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - State broadcasting after every move
//   - Optional client input ({"action":"move","direction":"left"})
//   - Optional cross-instance fan-out over Redis pub/sub
//
// Architecture:
//
// A central Hub owns all connections. Each client gets a read pump and a
// write pump goroutine; the hub loop serialises register, unregister and
// broadcast. Clients whose buffer is full are dropped.
//
// Message Protocol:
//
//   - Incoming: {"action": "move", "direction": "up"}
//   - Outgoing: {"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// Session Integration:
//
// Clients pass their session ID as a query parameter (?session=ab12).
// State updates reach only clients of the same session.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	if rdb != nil {
//		relay := websocket.NewRedisRelay(rdb, logger)
//		hub.SetRelay(relay)
//		go relay.Subscribe(ctx, hub.DeliverRemote)
//	}
//	go hub.Run(ctx)
//
// Redis Relay:
//
// With several server instances behind a load balancer, RedisRelay publishes
// each local broadcast on game2048:session:<id> and delivers frames from
// other instances to local clients. Redis holds no game state.
package websocket

// Package api provides the HTTP REST API for the 2048 server.
//
// The api package implements:
//   - Session endpoints backed by service.GameService
//   - Move, bulk move, reset and history endpoints
//   - Configuration listing, lookup and creation
//   - Palette tables for renderers
//   - WebSocket upgrade for live state updates
//   - The embedded browser page
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (sort=created|accessed, order=asc|desc, limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - {"direction": "left", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["left", "up"], "reset": false}
//   - POST /api/sessions/{id}/reset - Start a new game
//   - GET /api/sessions/{id}/history - page, limit, order
//
// Configuration:
//   - GET /api/configs - List configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Save a configuration as JSON
//
// Rendering:
//   - GET /api/palettes - Palette names
//   - GET /api/palettes/{name} - Colour table as #rrggbb keyed by tile value
//
// Live updates:
//   - GET /ws?session={id} - WebSocket. Clients receive state_update frames and may
//     send {"action": "move", "direction": "up"} or {"action": "reset"}.
//
// Errors are returned as JSON with an HTTP status code:
//
//	{"error": "session not found: 3f9a"}
//
// Unknown sessions and configurations map to 404, invalid configurations to 400.
package api

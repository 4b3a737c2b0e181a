// Package mcp exposes the 2048 REST API as Model Context Protocol tools.
//
// The Client is a thin proxy: every tool call becomes one or two HTTP requests
// against the API server, and the JSON response is rendered as text an agent
// can read. Grids are printed row by row with empty cells as dots and the last
// spawned tile marked with *.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - game_state, describe_cell
//   - move, bulk_move, reset_game
//   - move_history
//   - list_configs
//   - game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp

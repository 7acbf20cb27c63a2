// Package mcp exposes the simulation to MCP clients as a set of tools.
//
// The Client is a thin proxy: every tool call is translated into a REST
// request against the API server, and responses are rendered as compact
// text with an ASCII view of the board. Keeping the MCP layer stateless
// means stdio and HTTP transports share one source of truth.
package mcp

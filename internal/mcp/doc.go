// Package mcp exposes a bridge as Model Context Protocol tools.
//
// ToolServer keeps a thread-safe registry of tools that can be called in
// process or served to MCP clients through the official SDK. The bridge
// tools report availability, list the message catalog, and send requests to
// the native app, which lets developer tooling drive native calls through a
// running bridge.
package mcp

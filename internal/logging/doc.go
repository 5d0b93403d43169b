// Package logging sets up structured slog logging to a size-rotated JSON file
// under ~/.amanlaunch/logs/.
//
// CLI commands log to the file (and stderr) only when --debug is set. The
// MCP server always logs to the file and never to stdout or stderr, which
// carry the JSON-RPC stream.
package logging

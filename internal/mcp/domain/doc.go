// Package domain defines the MCP tool, resource, and prompt surface of the
// Planfix server: input/output schemas, handlers bound to narrow API client
// capabilities, and the mapping of client failures to protocol-visible errors.
package domain

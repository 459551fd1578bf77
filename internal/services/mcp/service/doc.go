// Package service exposes console actions as MCP tools over stdio or
// streamable HTTP.
package service

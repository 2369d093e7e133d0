// Package kit provides the endpoint abstraction shared by scribe transports.
//
// Business methods are exposed as Endpoints; the MCP bridge in transport_mcp.go
// adapts them to tool handlers. Middleware composes cross-cutting behavior
// (logging, context enrichment) without the transports knowing about it.
package kit

import "context"

// Endpoint is a single request/response interaction.
type Endpoint func(ctx context.Context, request any) (any, error)

// Middleware wraps an Endpoint with additional behavior.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares left to right: the first middleware is the
// outermost wrapper.
func Chain(outer Middleware, others ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(others) - 1; i >= 0; i-- {
			next = others[i](next)
		}
		return outer(next)
	}
}

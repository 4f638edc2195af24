// Package mall provides an HTTP client for the mall administration API.
//
// # Overview
//
// This package is the only I/O boundary of the application. It defines the
// typed entity records (User, Shop, Product), the create/update payload
// variants with their field constraints, and a Client that translates CRUD
// intents into single HTTP requests against the REST API.
//
// # Architecture
//
// The package is split into four files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Entity records and request payloads mirroring the API schema
//   - errors.go: The RequestError taxonomy for rejected responses
//   - validate.go: Pre-network payload validation
//
// # Client Usage
//
// Create a client using the API base address from configuration:
//
//	client, err := mall.NewClient("127.0.0.1:8080")
//	if err != nil {
//		return err
//	}
//
//	users, err := client.ListUsers(ctx)
//	if err != nil {
//		// "failed to fetch users" (wrapped transport error or RequestError)
//	}
//
// # Endpoints
//
// The client covers the standard CRUD surface per resource:
//
//   - GET/POST /api/users, PUT/DELETE /api/users/{id}
//   - GET/POST /api/shops, PUT/DELETE /api/shops/{id}
//   - GET/POST /api/products (optional ?shopId= filter), PUT/DELETE /api/products/{id}
//   - POST /api/auth/login (opaque session object returned verbatim)
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: mallboard/0.1 headers
//   - Carry a fresh X-Request-ID for server-side correlation
//   - Have a 10-second timeout (via http.Client)
//
// # Error Handling
//
// Any status outside the 2xx range yields a *RequestError carrying a fixed
// per-operation message ("failed to create product", ...); the server's own
// error body is discarded and the status code is recorded but not branched
// on. Transport failures are wrapped with the same fixed message so the UI
// surfaces both identically. Malformed JSON yields a "decode response"
// error.
//
// # Design Rationale
//
// The client is intentionally minimal: no caching, no retries, no
// idempotency keys. Consistency is maintained by the stores refetching
// whole collections after every mutation, so a thin stateless client is
// all that is needed.
package mall

// Package contract exposes the OpenAPI description of the customer endpoint
// and validates request bodies against it. The same document backs the stub
// server and the client-side contract tests.
package contract

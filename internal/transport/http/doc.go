// Package http provides http.RoundTripper decorators used by the outbound clients:
// debug-level request/response dumps and default header injection.
package http

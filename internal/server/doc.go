// Package server exposes the download service over HTTP: a small REST surface for
// starting and cancelling tasks and a Server-Sent Events stream carrying every task event.
package server

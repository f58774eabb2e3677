// Package app wires the configuration, clients and download service together
// and implements the behavior behind every CLI command.
package app

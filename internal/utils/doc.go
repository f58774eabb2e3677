// Package utils holds small helpers shared across packages:
// file name sanitizing, atomic file moves, text-file URL lists and User-Agent providers.
package utils

package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oshokin/spot-grabber/internal/constants"
)

// Ledger is an append-only list of fetched ids stored at <dir>/.downloaded.
type Ledger struct {
	// path is the absolute or relative location of the ledger file.
	path string
	// mu serializes appends to path within the process.
	mu *sync.Mutex
}

// Static error definitions for better error handling.
var (
	// ErrEmptyID indicates an attempt to record an empty id.
	ErrEmptyID = errors.New("ledger id cannot be empty")
	// ErrMultilineID indicates an id that would corrupt the one-entry-per-line format.
	ErrMultilineID = errors.New("ledger id cannot contain line breaks")
)

// locks holds one mutex per ledger path so that every Ledger value for the same file shares it.
//
//nolint:gochecknoglobals // Process-wide registry of per-file locks.
var locks sync.Map

// New returns the ledger stored in dir.
func New(dir string) *Ledger {
	path := filepath.Join(dir, constants.LedgerFilename)

	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	mu, _ := locks.LoadOrStore(key, new(sync.Mutex))

	return &Ledger{
		path: path,
		mu:   mu.(*sync.Mutex), //nolint:forcetypeassert // Only *sync.Mutex is ever stored.
	}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string {
	return l.path
}

// Entry formats a ledger line the way the fetch backend does.
func Entry(extractor, id string) string {
	extractor = strings.ToLower(strings.TrimSpace(extractor))
	if extractor == "" {
		return strings.TrimSpace(id)
	}

	return extractor + " " + strings.TrimSpace(id)
}

// Contains reports whether id is recorded. A line matches when it equals id
// or when its last whitespace-separated field equals id.
func (l *Ledger) Contains(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, nil
	}

	found := false

	err := l.scan(func(line string) bool {
		if line == id || lastField(line) == id {
			found = true

			return false
		}

		return true
	})

	return found, err
}

// IDs returns every recorded entry in file order.
func (l *Ledger) IDs() ([]string, error) {
	var ids []string

	err := l.scan(func(line string) bool {
		ids = append(ids, line)

		return true
	})

	return ids, err
}

// Append records entry as a single line. Each call is one O_APPEND write of the whole line,
// so concurrent writers (including the fetch backend) never interleave within a line.
func (l *Ledger) Append(entry string) error {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return ErrEmptyID
	}

	if strings.ContainsAny(entry, "\r\n") {
		return ErrMultilineID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	file, err := os.OpenFile(filepath.Clean(l.path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	if _, err = file.WriteString(entry + "\n"); err != nil {
		_ = file.Close()

		return fmt.Errorf("failed to append to ledger: %w", err)
	}

	return file.Close()
}

// Record appends entry unless its id is already present.
// It reports whether a new line was written.
func (l *Ledger) Record(extractor, id string) (bool, error) {
	exists, err := l.Contains(id)
	if err != nil || exists {
		return false, err
	}

	if err = l.Append(Entry(extractor, id)); err != nil {
		return false, err
	}

	return true, nil
}

// scan calls visit for every non-blank line until visit returns false.
// A missing file is an empty ledger. A torn final line is still visited as-is.
func (l *Ledger) scan(visit func(line string) bool) error {
	file, err := os.Open(filepath.Clean(l.path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to open ledger: %w", err)
	}

	defer file.Close() //nolint:errcheck // Read-only handle.

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !visit(line) {
			return nil
		}
	}

	if err = scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	return nil
}

func lastField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	return fields[len(fields)-1]
}

// Package importer turns bank-statement CSV exports into bank
// transactions ready for ledger review. Parsers are looked up by
// format name; files land in <workspace>/import/ and move to
// import/processed/ once ingested.
package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Registry holds named parsers. Format names are case-insensitive.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.parsers))
	for key := range r.parsers {
		formats = append(formats, key)
	}
	sort.Strings(formats)
	return formats
}

// DefaultRegistry returns a registry with the built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	return r
}

const (
	importDir    = "import"
	processedDir = "import/processed"
)

// Scan lists the CSV files waiting in <root>/import/. A workspace
// without an import directory simply has nothing waiting.
func Scan(root string) ([]FileInfo, error) {
	entries, err := os.ReadDir(filepath.Join(root, importDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{Name: e.Name(), Size: info.Size()})
	}
	return files, nil
}

// MarkProcessed moves an ingested file from import/ to
// import/processed/ so a rescan no longer offers it.
func MarkProcessed(root, fileName string) error {
	dstDir := filepath.Join(root, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(root, importDir, fileName)
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

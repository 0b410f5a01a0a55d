// Package symbol implements process-wide interning of Skimpy symbols.
//
// Symbols are interned by lowercase name in a single concurrent table
// guarded by a mutex, mirroring senv.py's symbol_dict/symbol_dict_lock
// in the reference implementation. Interning gives `eq?` reference
// equality for free: two symbols with the same name are always the
// same *Symbol pointer.
package symbol

import (
	"strings"
	"sync"
)

// Symbol is an interned identifier. Symbols are compared by pointer
// identity; never construct one directly, use Intern.
type Symbol struct {
	name string
}

// Name returns the symbol's (already-lowercased) name.
func (s *Symbol) Name() string { return s.name }

func (s *Symbol) String() string { return s.name }

var (
	mu    sync.Mutex
	table = make(map[string]*Symbol)
)

// Intern returns the unique *Symbol for name, lowercased first so that
// "Foo", "foo", and "FOO" all intern to the same symbol. Readers and
// writers of the table both acquire the same lock, matching the
// reference implementation's guard.
func Intern(name string) *Symbol {
	lower := strings.ToLower(name)

	mu.Lock()
	defer mu.Unlock()

	if s, ok := table[lower]; ok {
		return s
	}
	s := &Symbol{name: lower}
	table[lower] = s
	return s
}

// Count reports how many distinct symbols have been interned so far.
func Count() int {
	mu.Lock()
	defer mu.Unlock()
	return len(table)
}

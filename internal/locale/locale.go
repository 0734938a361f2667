// Package locale holds the message catalog for on-screen text.
// Catalogs are gettext .po files embedded in the binary.
package locale

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed po/*.po
var catalogs embed.FS

// DefaultLanguage is used when no language is selected.
const DefaultLanguage = "en"

var (
	mu      sync.RWMutex
	lang    string
	current *gotext.Po
)

func init() {
	if err := SetLanguage(DefaultLanguage); err != nil {
		panic(err)
	}
}

// Languages lists the embedded catalogs.
func Languages() []string {
	entries, err := catalogs.ReadDir("po")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	slices.Sort(out)
	return out
}

// SetLanguage switches the active catalog.
func SetLanguage(code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = DefaultLanguage
	}
	data, err := catalogs.ReadFile("po/" + code + ".po")
	if err != nil {
		return fmt.Errorf("locale: unknown language %q", code)
	}
	po := gotext.NewPo()
	po.Parse(data)

	mu.Lock()
	lang = code
	current = po
	mu.Unlock()
	return nil
}

// Language returns the active language code.
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// T translates key and, when args are given, uses the translation as a
// format for them. Keys missing from the catalog are used as is.
func T(key string, args ...any) string {
	mu.RLock()
	po := current
	mu.RUnlock()
	msg := po.Get(key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

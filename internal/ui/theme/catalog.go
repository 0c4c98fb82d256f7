package theme

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog maps normalized theme names to built-in themes.
var Catalog = map[string]Theme{}

func init() {
	register(CatppuccinMocha)
	register(Nord)
	register(Dracula)
}

func register(t Theme) {
	Catalog[normalizeKey(t.Name)] = t
}

// Get returns a built-in theme by name.
func Get(name string) (Theme, bool) {
	t, ok := Catalog[normalizeKey(name)]
	return t, ok
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for _, t := range Catalog {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// Default returns the default theme.
func Default() Theme {
	return CatppuccinMocha
}

// Resolve looks up a theme by name: catalog, then ~/.config/qtrack/themes,
// then the default.
func Resolve(name string) Theme {
	if t, ok := Get(name); ok {
		return t
	}

	if home, err := os.UserHomeDir(); err == nil {
		customs := LoadCustomThemes(filepath.Join(home, ".config", "qtrack", "themes"))
		if t, ok := customs[normalizeKey(name)]; ok {
			return t
		}
	}

	return Default()
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

package source

import (
	"sort"
	"strings"
)

// registry maps the known Schichtplaner5 table names to a short
// description. The CLI rejects unknown names before the engine runs.
var registry = map[string]string{
	"5EMPL":  "employees",
	"5GROUP": "employee groups",
	"5GRASG": "group assignments",
	"5SHIFT": "shift definitions",
	"5SPSHI": "shift plan entries",
	"5MASHI": "master shift plan",
	"5ABSEN": "absence types",
	"5LEAEN": "leave entries",
	"5HOLID": "holidays",
	"5NOTE":  "employee notes",
}

// KnownTable reports whether name is a registered table. Names are
// case-insensitive, matching the rest of the engine.
func KnownTable(name string) bool {
	_, ok := registry[strings.ToUpper(name)]
	return ok
}

// Describe returns the registered description of a table, empty when
// the table is unknown.
func Describe(name string) string {
	return registry[strings.ToUpper(name)]
}

// TableNames returns all registered table names, sorted.
func TableNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

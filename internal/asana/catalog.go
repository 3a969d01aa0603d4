package asana

import (
	"sort"
	"strings"
)

// Catalog is an immutable collection of pose definitions looked up by
// id. It is constructed once at startup and shared by reference across
// sessions; nothing mutates it after NewCatalog returns.
type Catalog struct {
	defs map[string]*Definition
}

// Info is the catalog listing entry for one unique definition.
type Info struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sanskrit string `json:"sanskrit"`
}

// NewCatalog builds the catalog of built-in poses. Sanskrit names are
// registered as aliases for the same definition.
func NewCatalog() *Catalog {
	c := &Catalog{defs: make(map[string]*Definition)}

	mountain := Mountain()
	c.register("mountain", mountain)
	c.register("tadasana", mountain)

	warrior := WarriorII()
	c.register("warrior_2", warrior)
	c.register("warrior_ii", warrior)
	c.register("virabhadrasana_2", warrior)

	treeRight := Tree(SideRight)
	c.register("tree_right", treeRight)
	c.register("vrksasana_right", treeRight)

	treeLeft := Tree(SideLeft)
	c.register("tree_left", treeLeft)
	c.register("vrksasana_left", treeLeft)

	return c
}

func (c *Catalog) register(id string, def *Definition) {
	c.defs[strings.ToLower(id)] = def
}

// Get returns the definition registered under id, case-insensitively.
func (c *Catalog) Get(id string) (*Definition, bool) {
	def, ok := c.defs[strings.ToLower(id)]
	return def, ok
}

// List returns one Info per unique definition, sorted by primary id.
// Aliases are folded into the definition they point at.
func (c *Catalog) List() []Info {
	seen := make(map[*Definition]bool)
	var infos []Info
	for _, def := range c.defs {
		if seen[def] {
			continue
		}
		seen[def] = true
		infos = append(infos, Info{
			ID:       def.ID,
			Name:     def.Name,
			Sanskrit: def.SanskritName,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

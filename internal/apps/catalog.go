package apps

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

// Overrides supplies the user's per-app data.
type Overrides interface {
	Membership() prefs.Membership
	CustomName(id string) (string, bool)
}

// Catalog joins the registry with the user's overrides.
type Catalog struct {
	registry  Registry
	overrides Overrides
	spawner   Spawner
	activator Activator
}

func NewCatalog(registry Registry, overrides Overrides, spawner Spawner) *Catalog {
	if spawner == nil {
		spawner = ProcessSpawner{}
	}
	return &Catalog{
		registry:  registry,
		overrides: overrides,
		spawner:   spawner,
	}
}

// SetActivator enables D-Bus activation for apps that support it.
func (c *Catalog) SetActivator(a Activator) {
	c.activator = a
}

// ListInstalledApps queries the registry on every call and returns records
// with states and custom names applied, sorted case-insensitively by display
// name.
func (c *Catalog) ListInstalledApps() ([]AppRecord, error) {
	entries, err := c.registry.LaunchableApps()
	if err != nil {
		return nil, fmt.Errorf("failed to read app catalog: %w", err)
	}

	membership := c.overrides.Membership()
	records := make([]AppRecord, 0, len(entries))
	for _, e := range entries {
		rec := recordFromEntry(e).WithState(ResolveState(membership, e.ID))
		if name, ok := c.overrides.CustomName(e.ID); ok {
			rec = rec.WithCustomName(name)
		}
		records = append(records, rec)
	}

	SortByDisplayName(records)
	return records, nil
}

// SortByDisplayName orders records case-insensitively, falling back to the
// id so the order is total.
func SortByDisplayName(records []AppRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a := strings.ToLower(records[i].DisplayName())
		b := strings.ToLower(records[j].DisplayName())
		if a != b {
			return a < b
		}
		return records[i].ID < records[j].ID
	})
}

// Launch starts the app. An unknown id is a no-op and reports false.
func (c *Catalog) Launch(id string) (bool, error) {
	action, ok := c.registry.LaunchAction(id)
	if !ok {
		log.Printf("[APPS] No launch action for %s, ignoring", id)
		return false, nil
	}
	if action.DBusName != "" && c.activator != nil {
		err := c.activator.Activate(action.DBusName)
		if err == nil {
			return true, nil
		}
		if len(action.Argv) == 0 {
			return false, fmt.Errorf("failed to launch %s: %w", id, err)
		}
		log.Printf("[APPS] %v, falling back to Exec", err)
	}
	if err := ExecAction(action, c.spawner); err != nil {
		return false, fmt.Errorf("failed to launch %s: %w", id, err)
	}
	return true, nil
}

package domain

// PreferenceKey names a durable flag.
type PreferenceKey string

const (
	// PrefTutorialCompleted is set once the onboarding tutorial is finished or skipped
	PrefTutorialCompleted PreferenceKey = "tutorialCompleted"

	// PrefScannerGuidanceShown is set after the first barcode scanner guidance
	PrefScannerGuidanceShown PreferenceKey = "barcodeScannerUsed"
)

// PreferenceKeys lists every known flag
func PreferenceKeys() []PreferenceKey {
	return []PreferenceKey{PrefTutorialCompleted, PrefScannerGuidanceShown}
}

// Valid reports whether k is a known flag
func (k PreferenceKey) Valid() bool {
	for _, known := range PreferenceKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// PreferenceStore is the durable flag store.
// An absent flag reads as false. Writes are last-write-wins.
type PreferenceStore interface {
	Flag(key PreferenceKey) (bool, error)
	SetFlag(key PreferenceKey) error
	ClearFlag(key PreferenceKey) error
}

// InventoryStore persists items and the shopping list.
type InventoryStore interface {
	GetItems() ([]Item, error)
	SaveItem(item Item) error
	DeleteItems(ids []string) error

	GetShoppingList() ([]ShoppingItem, error)
	SaveShoppingItem(item ShoppingItem) error
	DeleteShoppingItems(ids []string) error
}

// Store is the full local store (bbolt + memory).
type Store interface {
	PreferenceStore
	InventoryStore
	Close() error
}

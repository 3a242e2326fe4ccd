package domain

type ItemKind int

const (
	ItemText ItemKind = iota + 1
	ItemPhoto
)

func (k ItemKind) String() string {
	switch k {
	case ItemText:
		return "text"
	case ItemPhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// Item is one contribution to a user's pending batch.
type Item struct {
	Kind    ItemKind
	Text    string // set for ItemText
	PhotoID string // Telegram file id, set for ItemPhoto
}

func TextItem(text string) Item {
	return Item{Kind: ItemText, Text: text}
}

func PhotoItem(fileID string) Item {
	return Item{Kind: ItemPhoto, PhotoID: fileID}
}

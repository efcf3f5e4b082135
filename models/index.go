package models

// Index is the payload published on the activity channel. Method is
// the mutating verb (POST/PUT/DELETE), EntityType/EntityId name the
// touched document.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

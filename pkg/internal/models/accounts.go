package models

// Account is the local mirror of a user resolved by the identity provider.
// It only carries the fields the engine needs to embed authors into feeds
// and to sample the user pool for suggestions.
type Account struct {
	BaseModel

	Name   string `json:"name" gorm:"uniqueIndex"`
	Nick   string `json:"nick"`
	Avatar string `json:"avatar"`
}

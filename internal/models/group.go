package models

// ExpenseGroup represents a travel party sharing a fund.
type ExpenseGroup struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Vung Tau 2024").
	Name string `json:"name"`

	// Participants is the list of member display names.
	// Names are unique within a group and immutable after creation.
	Participants []string `json:"participants"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// HasParticipant reports whether name is a member of the group.
func (g *ExpenseGroup) HasParticipant(name string) bool {
	for _, p := range g.Participants {
		if p == name {
			return true
		}
	}
	return false
}

package models

// WorkspaceType classifies a bookable resource.
type WorkspaceType string

const (
	TypeMeetingRoom   WorkspaceType = "Meeting Room"
	TypeHotDesk       WorkspaceType = "Hot Desk"
	TypePrivateOffice WorkspaceType = "Private Office"
	TypeEventSpace    WorkspaceType = "Event Space"
)

// Workspace is a bookable resource inside a hub. Instances are immutable for
// the duration of a request; administrative edits surface on the next catalog
// snapshot.
type Workspace struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         WorkspaceType `json:"type"`
	Location     string        `json:"location"`
	Capacity     int           `json:"capacity"`
	PricePerHour int64         `json:"price_per_hour"`
	Description  string        `json:"description,omitempty"`
	Features     []string      `json:"features,omitempty"`
	Enabled      bool          `json:"enabled"`
}

// Actor identifies the caller of a core operation. Identity is supplied
// explicitly on every call, never read from ambient state.
type Actor struct {
	UserID string
	Role   string
}

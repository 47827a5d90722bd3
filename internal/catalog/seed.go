package catalog

import "github.com/Psybah/deskhive/internal/models"

// Seed returns the production workspace catalog used to initialize an empty
// store.
func Seed() []models.Workspace {
	return []models.Workspace{
		{
			ID: "ws-001", Name: "Executive Meeting Room", Type: models.TypeMeetingRoom,
			Location: "Lagos", Capacity: 8, PricePerHour: 5000, Enabled: true,
			Description: "Spacious meeting room with premium amenities, perfect for important client meetings and presentations.",
			Features:    []string{"Projector", "Whiteboard", "Video conferencing", "Refreshments"},
		},
		{
			ID: "ws-002", Name: "Hot Desk Zone A", Type: models.TypeHotDesk,
			Location: "Lagos", Capacity: 1, PricePerHour: 1500, Enabled: true,
			Description: "Comfortable individual workstation in our open-plan area with high-speed internet and power outlets.",
			Features:    []string{"Power outlets", "High-speed internet", "Adjustable chair", "Natural lighting"},
		},
		{
			ID: "ws-003", Name: "Private Office 101", Type: models.TypePrivateOffice,
			Location: "Lagos", Capacity: 4, PricePerHour: 3500, Enabled: true,
			Description: "Fully furnished private office with secure access and dedicated amenities for small teams.",
			Features:    []string{"Secure access", "Dedicated printer", "Storage cabinets", "Coffee machine"},
		},
		{
			ID: "ws-004", Name: "Innovation Hub", Type: models.TypeEventSpace,
			Location: "Lagos", Capacity: 30, PricePerHour: 10000, Enabled: true,
			Description: "Large open space ideal for workshops, training sessions, and team-building activities.",
			Features:    []string{"Modular furniture", "AV equipment", "Catering services", "Stage setup"},
		},
		{
			ID: "ws-005", Name: "Quiet Focus Room", Type: models.TypePrivateOffice,
			Location: "Abuja", Capacity: 1, PricePerHour: 2000, Enabled: true,
			Description: "Soundproofed room for focused work or private calls, with ergonomic furniture.",
			Features:    []string{"Soundproofing", "Ergonomic desk", "Phone booth", "Noise-cancelling headphones"},
		},
		{
			ID: "ws-006", Name: "Boardroom", Type: models.TypeMeetingRoom,
			Location: "Abuja", Capacity: 12, PricePerHour: 7500, Enabled: true,
			Description: "Premium boardroom with elegant furnishings and advanced presentation technology.",
			Features:    []string{"Video wall", "Conference phone", "Executive chairs", "Climate control"},
		},
		{
			ID: "ws-007", Name: "Hot Desk Zone B", Type: models.TypeHotDesk,
			Location: "Abuja", Capacity: 1, PricePerHour: 1200, Enabled: true,
			Description: "Flexible desk space in our collaborative zone, perfect for networking and creativity.",
			Features:    []string{"Standing desk option", "Shared printer", "Lounge area", "Refreshment bar"},
		},
		{
			ID: "ws-008", Name: "Collaboration Studio", Type: models.TypeEventSpace,
			Location: "Port Harcourt", Capacity: 20, PricePerHour: 8000, Enabled: true,
			Description: "Creative space designed for brainstorming and collaborative work with interactive tools.",
			Features:    []string{"Interactive whiteboard", "Brainstorming wall", "Flexible seating", "Design thinking tools"},
		},
		{
			ID: "ws-009", Name: "Team Office Suite", Type: models.TypePrivateOffice,
			Location: "Port Harcourt", Capacity: 8, PricePerHour: 6000, Enabled: true,
			Description: "Spacious office for teams with dedicated meeting corner and relaxation area.",
			Features:    []string{"Meeting corner", "Relaxation area", "Private kitchen", "Dedicated WiFi"},
		},
	}
}

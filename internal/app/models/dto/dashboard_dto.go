package dto

import "github.com/yigit/clubsphere/internal/app/models"

// StudentDashboard is the student landing page data
type StudentDashboard struct {
	Profile        *models.Profile         `json:"profile"`
	JoinedClubs    int                     `json:"joinedClubs"`
	UpcomingEvents int                     `json:"upcomingEvents"`
	MyClubs        []models.ClubMembership `json:"myClubs"`
	DiscoverClubs  []models.Club           `json:"discoverClubs"`
	Events         []models.Event          `json:"events"`
}

// LeadDashboard is the club lead landing page data
type LeadDashboard struct {
	Profile       *models.Profile         `json:"profile"`
	ClubCount     int                     `json:"clubCount"`
	MemberCount   int                     `json:"memberCount"`
	LiveEvents    int                     `json:"liveEvents"`
	PendingEvents int                     `json:"pendingEvents"`
	MyClubs       []models.ClubMembership `json:"myClubs"`
	Events        []models.Event          `json:"events"`
	// ApprovedClubs are the clubs selectable in the create-event form
	ApprovedClubs []models.Club `json:"approvedClubs"`
}

// AdminDashboard is the admin landing page data
type AdminDashboard struct {
	Profile       *models.Profile `json:"profile"`
	Stats         PlatformStats   `json:"stats"`
	PendingClubs  []models.Club   `json:"pendingClubs"`
	EventQueue    []models.Event  `json:"eventQueue"`
	ApprovedClubs []models.Club   `json:"approvedClubs"`
}

// PlatformStats are the admin counters
type PlatformStats struct {
	Users         int `json:"users"`
	Clubs         int `json:"clubs"`
	PendingClubs  int `json:"pendingClubs"`
	Events        int `json:"events"`
	PendingEvents int `json:"pendingEvents"`
}

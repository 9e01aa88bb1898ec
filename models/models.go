package models

import "time"

// Video statuses.
const (
	StatusPending  = "Pending"
	StatusReviewed = "Reviewed"
	StatusFlagged  = "Flagged for Takedown"
)

// Review priorities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Auto-flag rule actions.
const (
	ActionFlag         = "flag"
	ActionHighPriority = "high_priority"
	ActionCritical     = "critical"
)

// Video is a search result under review, persisted once per external video ID.
type Video struct {
	ID             int       `json:"id"`
	VideoID        string    `json:"video_id"`
	Title          string    `json:"title"`
	ChannelName    string    `json:"channel_name"`
	ChannelID      string    `json:"channel_id"`
	Description    string    `json:"description,omitempty"`
	PublishDate    string    `json:"publish_date"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	VideoURL       string    `json:"video_url"`
	MatchedKeyword string    `json:"matched_keyword"`
	DurationSec    int       `json:"duration_sec"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	ArtistID       *int      `json:"artist_id"`
	AutoFlagged    bool      `json:"auto_flagged"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      string    `json:"risk_level,omitempty"`
	RiskReason     string    `json:"risk_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Artist struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

type Keyword struct {
	ID        int       `json:"id"`
	Keyword   string    `json:"keyword"`
	Active    bool      `json:"active"`
	ArtistID  *int      `json:"artist_id"`
	AutoFlag  bool      `json:"auto_flag"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// Song is a (song, artist) pair a song-based search is seeded from.
// DurationMS is zero when the runtime is unknown.
type Song struct {
	ID         int       `json:"id"`
	SongName   string    `json:"song_name"`
	ArtistName string    `json:"artist_name"`
	Active     bool      `json:"active"`
	ArtistID   *int      `json:"artist_id"`
	AutoFlag   bool      `json:"auto_flag"`
	Priority   string    `json:"priority"`
	DurationMS int       `json:"duration_ms,omitempty"`
	Source     string    `json:"source,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AutoFlagRule is a stored, user-authored condition set. Conditions is the
// serialized key/value mapping as persisted; it is decoded by the rules
// package before evaluation.
type AutoFlagRule struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Conditions  string    `json:"conditions"`
	Action      string    `json:"action"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type SearchLog struct {
	ID           int       `json:"id"`
	Keyword      string    `json:"keyword"`
	ResultsCount int       `json:"results_count"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ArtistID     *int      `json:"artist_id"`
	Timestamp    time.Time `json:"timestamp"`
}

type Stats struct {
	TotalVideos      int        `json:"total_videos"`
	Pending          int        `json:"pending"`
	Reviewed         int        `json:"reviewed"`
	Flagged          int        `json:"flagged"`
	PriorityLow      int        `json:"priority_low"`
	PriorityMedium   int        `json:"priority_medium"`
	PriorityHigh     int        `json:"priority_high"`
	PriorityCritical int        `json:"priority_critical"`
	AutoFlagged      int        `json:"auto_flagged"`
	LastSearch       *time.Time `json:"last_search"`
}

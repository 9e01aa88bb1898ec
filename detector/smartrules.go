package detector

import "ugc-monitor/models"

// RecommendedRules returns the pre-built auto-flag rules for music
// copyright monitoring. Conditions are the serialized form the rule store
// persists.
func RecommendedRules() []models.AutoFlagRule {
	return []models.AutoFlagRule{
		{
			Name:        "Full Album Uploads",
			Description: "Auto-detect full album uploads (very high piracy indicator)",
			Conditions:  `{"title_contains":"full album"}`,
			Action:      models.ActionCritical,
			Active:      true,
		},
		{
			Name:        "Download Links in Description",
			Description: "Detect videos offering MP3/FLAC downloads",
			Conditions:  `{"title_contains":"download"}`,
			Action:      models.ActionCritical,
			Active:      true,
		},
		{
			Name:        "Bootleg Concert Recordings",
			Description: "Unauthorized live concert recordings",
			Conditions:  `{"title_contains":"bootleg"}`,
			Action:      models.ActionFlag,
			Active:      true,
		},
		{
			Name:        "Pirate Music Channels",
			Description: "Channels known for uploading unauthorized music",
			Conditions:  `{"channel_name_contains":"free music"}`,
			Action:      models.ActionCritical,
			Active:      true,
		},
		{
			Name:        "Leaked/Unreleased Content",
			Description: "Pre-release or leaked music",
			Conditions:  `{"title_contains":"leaked"}`,
			Action:      models.ActionCritical,
			Active:      true,
		},
		{
			Name:        "Complete Discography",
			Description: "Full artist discography uploads",
			Conditions:  `{"title_contains":"discography"}`,
			Action:      models.ActionFlag,
			Active:      true,
		},
		{
			Name:        "High Quality Rips",
			Description: "Videos advertising HQ audio rips (320kbps, FLAC)",
			Conditions:  `{"title_contains":"320kbps"}`,
			Action:      models.ActionFlag,
			Active:      true,
		},
		{
			Name:        "Unofficial Music Archives",
			Description: "Channels acting as unauthorized music libraries",
			Conditions:  `{"channel_name_contains":"music archive"}`,
			Action:      models.ActionHighPriority,
			Active:      true,
		},
	}
}

package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ugc-monitor/models"
)

const maxSearchResults = 50

// YouTubeService is the video search collaborator. It only fetches raw
// candidates; filtering and scoring happen in the scan pipeline.
type YouTubeService struct {
	yt *youtube.Service
}

func NewYouTubeService(ctx context.Context, apiKey string) (*YouTubeService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is not configured")
	}
	yt, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize YouTube service: %w", err)
	}
	return &YouTubeService{yt: yt}, nil
}

// SearchKeyword returns the newest videos matching a free-text keyword.
func (s *YouTubeService) SearchKeyword(ctx context.Context, keyword string) ([]models.Video, error) {
	resp, err := s.yt.Search.List([]string{"id", "snippet"}).
		Q(keyword).
		MaxResults(maxSearchResults).
		Type("video").
		Order("date").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapYouTubeError(err)
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		sn := item.Snippet
		videos = append(videos, newCandidate(item.Id.VideoId, sn.Title, sn.ChannelTitle, sn.ChannelId, sn.Description, sn.PublishedAt, sn.Thumbnails, keyword))
	}
	return videos, nil
}

// SearchSong searches for a song+artist pair. Both names are quoted so the
// provider requires their presence, and the provider's duration class is
// biased toward full tracks (no shorts). durationMS of zero means the
// reference runtime is unknown.
func (s *YouTubeService) SearchSong(ctx context.Context, songName, artistName string, durationMS int) ([]models.Video, error) {
	query := fmt.Sprintf("%q %q", songName, artistName)
	matched := songName + " - " + artistName

	resp, err := s.yt.Search.List([]string{"id", "snippet"}).
		Q(query).
		MaxResults(maxSearchResults).
		Type("video").
		Order("relevance").
		VideoDuration("medium").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapYouTubeError(err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Durations are only available from the videos endpoint, fetched in one
	// batch for the whole result page.
	details, err := s.yt.Videos.List([]string{"snippet", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapYouTubeError(err)
	}

	videos := make([]models.Video, 0, len(details.Items))
	for _, item := range details.Items {
		if item.Snippet == nil {
			continue
		}
		sn := item.Snippet
		v := newCandidate(item.Id, sn.Title, sn.ChannelTitle, sn.ChannelId, sn.Description, sn.PublishedAt, sn.Thumbnails, matched)
		if item.ContentDetails != nil {
			v.DurationSec = ParseISODuration(item.ContentDetails.Duration)
		}
		videos = append(videos, v)
	}
	return videos, nil
}

func newCandidate(videoID, title, channelTitle, channelID, description, publishedAt string, thumbs *youtube.ThumbnailDetails, matched string) models.Video {
	thumb := ""
	if thumbs != nil && thumbs.Medium != nil {
		thumb = thumbs.Medium.Url
	}
	return models.Video{
		VideoID:        videoID,
		Title:          title,
		ChannelName:    channelTitle,
		ChannelID:      channelID,
		Description:    description,
		PublishDate:    publishedAt,
		ThumbnailURL:   thumb,
		VideoURL:       "https://www.youtube.com/watch?v=" + videoID,
		MatchedKeyword: matched,
		Status:         models.StatusPending,
		Priority:       models.PriorityMedium,
		CreatedAt:      time.Now(),
	}
}

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration converts an ISO 8601 duration (PT#H#M#S) to seconds.
// Unparseable input yields zero, which downstream treats as unknown.
func ParseISODuration(s string) int {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}

func wrapYouTubeError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "quotaExceeded"):
		return fmt.Errorf("YouTube API quota exceeded: %w", err)
	case strings.Contains(msg, "keyInvalid"):
		return fmt.Errorf("invalid YouTube API key: %w", err)
	default:
		return fmt.Errorf("YouTube API error: %w", err)
	}
}

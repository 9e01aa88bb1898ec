package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ugc-monitor/models"
	"ugc-monitor/rules"
)

type fakeSearcher struct {
	keywordResults map[string][]models.Video
	songResults    map[string][]models.Video
	err            error
}

func (f *fakeSearcher) SearchKeyword(_ context.Context, keyword string) ([]models.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.keywordResults[keyword], nil
}

func (f *fakeSearcher) SearchSong(_ context.Context, songName, _ string, _ int) ([]models.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.songResults[songName], nil
}

type fakeSink struct {
	added  []models.Video
	known  map[string]bool
	nextID int
}

func (f *fakeSink) AddVideo(_ context.Context, v *models.Video) (int, error) {
	if f.known[v.VideoID] {
		return 0, nil
	}
	f.nextID++
	v.ID = f.nextID
	f.added = append(f.added, *v)
	return f.nextID, nil
}

type fakeRuleSource struct {
	rules []rules.Rule
}

func (f *fakeRuleSource) ActiveRules(context.Context) ([]rules.Rule, error) {
	return f.rules, nil
}

type fakeLogger struct {
	entries []models.SearchLog
}

func (f *fakeLogger) AddLog(_ context.Context, l *models.SearchLog) error {
	f.entries = append(f.entries, *l)
	return nil
}

type fakeAlerter struct {
	alerts []string
}

func (f *fakeAlerter) CriticalFinding(v *models.Video) {
	f.alerts = append(f.alerts, v.VideoID)
}

func songCandidate(videoID, title, channel string, durationSec int) models.Video {
	return models.Video{
		VideoID:     videoID,
		Title:       title,
		ChannelName: channel,
		DurationSec: durationSec,
		Status:      models.StatusPending,
		Priority:    models.PriorityMedium,
	}
}

func TestScanSongsPipeline(t *testing.T) {
	searcher := &fakeSearcher{songResults: map[string][]models.Video{
		"Midnight Sky": {
			songCandidate("good1", "Target Artist - Midnight Sky", "randomuploader", 200),
			songCandidate("dup1", "Midnight Sky - Target Artist", "someguy", 198),
			songCandidate("vevo1", "Target Artist - Midnight Sky", "TargetVEVO", 200),
			songCandidate("low1", "Midnight Sky - Target Artist (Official Audio)", "someguy", 500),
		},
	}}
	sink := &fakeSink{known: map[string]bool{"dup1": true}}
	logger := &fakeLogger{}
	alerter := &fakeAlerter{}
	scan := NewScanService(searcher, sink, &fakeRuleSource{}, logger, alerter)

	artistID := 9
	summary := scan.ScanSongs(context.Background(), []models.Song{{
		SongName:   "Midnight Sky",
		ArtistName: "Target Artist",
		DurationMS: 200000,
		ArtistID:   &artistID,
	}})

	// Four fetched; the vevo channel is filtered, the official-audio upload
	// scores below the quality floor, and dup1 is already known.
	assert.Equal(t, 4, summary.TotalFound)
	assert.Equal(t, 1, summary.TotalNew)
	require.Len(t, summary.Queries, 1)
	assert.Equal(t, "Midnight Sky - Target Artist", summary.Queries[0].Query)
	assert.Empty(t, summary.Queries[0].Error)

	require.Len(t, sink.added, 1)
	stored := sink.added[0]
	assert.Equal(t, "good1", stored.VideoID)
	assert.Equal(t, models.PriorityCritical, stored.Priority)
	assert.Equal(t, &artistID, stored.ArtistID)

	// A perfect match is critical priority, so the alerters fire.
	assert.Equal(t, []string{"good1"}, alerter.alerts)

	require.Len(t, logger.entries, 1)
	assert.True(t, logger.entries[0].Success)
	assert.Equal(t, 4, logger.entries[0].ResultsCount)
	assert.Equal(t, &artistID, logger.entries[0].ArtistID)
}

func TestScanKeywordsAppliesRulesAndDetector(t *testing.T) {
	searcher := &fakeSearcher{keywordResults: map[string][]models.Video{
		"target artist leak": {
			songCandidate("risky1", "Full Album Download Free", "randomguy", 7200),
		},
	}}
	sink := &fakeSink{}
	ruleSource := &fakeRuleSource{rules: []rules.Rule{{
		Name:       "escalate album dumps",
		Action:     models.ActionCritical,
		Predicates: []rules.Predicate{{Kind: rules.KindTitleContains, Value: "full album"}},
	}}}
	alerter := &fakeAlerter{}
	scan := NewScanService(searcher, sink, ruleSource, &fakeLogger{}, alerter)

	summary := scan.ScanKeywords(context.Background(), []string{"target artist leak"})
	assert.Equal(t, 1, summary.TotalNew)

	require.Len(t, sink.added, 1)
	stored := sink.added[0]
	assert.True(t, stored.AutoFlagged)
	assert.Equal(t, models.PriorityCritical, stored.Priority)
	assert.Equal(t, models.StatusFlagged, stored.Status)
	assert.NotZero(t, stored.RiskScore)
	assert.NotEmpty(t, stored.RiskLevel)
	assert.Equal(t, []string{"risky1"}, alerter.alerts)
}

func TestScanKeywordsQueryFailureDoesNotAbortBatch(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("quota exceeded")}
	logger := &fakeLogger{}
	scan := NewScanService(searcher, &fakeSink{}, &fakeRuleSource{}, logger)

	summary := scan.ScanKeywords(context.Background(), []string{"kw1", "kw2"})

	require.Len(t, summary.Queries, 2)
	for _, q := range summary.Queries {
		assert.Equal(t, "quota exceeded", q.Error)
	}
	require.Len(t, logger.entries, 2)
	assert.False(t, logger.entries[0].Success)
	assert.Equal(t, "quota exceeded", logger.entries[0].ErrorMessage)
}

func TestScanSongsOrdersBestMatchesFirst(t *testing.T) {
	// Both candidates survive; the better match should be stored first.
	searcher := &fakeSearcher{songResults: map[string][]models.Video{
		"Midnight Sky": {
			songCandidate("far", "Midnight Sky - Target Artist", "someguy", 230),
			songCandidate("near", "Midnight Sky - Target Artist", "otherguy", 201),
		},
	}}
	sink := &fakeSink{}
	scan := NewScanService(searcher, sink, &fakeRuleSource{}, &fakeLogger{})

	scan.ScanSongs(context.Background(), []models.Song{{
		SongName:   "Midnight Sky",
		ArtistName: "Target Artist",
		DurationMS: 200000,
	}})

	require.Len(t, sink.added, 2)
	assert.Equal(t, "near", sink.added[0].VideoID)
	assert.Equal(t, "far", sink.added[1].VideoID)
}

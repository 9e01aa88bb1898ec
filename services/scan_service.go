package services

import (
	"context"
	"log"
	"sort"

	"ugc-monitor/detector"
	"ugc-monitor/matching"
	"ugc-monitor/models"
	"ugc-monitor/rules"
)

// Searcher fetches raw candidates from the video platform.
type Searcher interface {
	SearchKeyword(ctx context.Context, keyword string) ([]models.Video, error)
	SearchSong(ctx context.Context, songName, artistName string, durationMS int) ([]models.Video, error)
}

// VideoSink persists accepted candidates. AddVideo returns (0, nil) for an
// already-known video ID.
type VideoSink interface {
	AddVideo(ctx context.Context, v *models.Video) (int, error)
}

// RuleSource supplies the active auto-flag rules.
type RuleSource interface {
	ActiveRules(ctx context.Context) ([]rules.Rule, error)
}

// SearchLogger records the outcome of each query.
type SearchLogger interface {
	AddLog(ctx context.Context, l *models.SearchLog) error
}

// Alerter is notified of newly stored critical findings.
type Alerter interface {
	CriticalFinding(v *models.Video)
}

// QueryResult is the per-query breakdown of a scan.
type QueryResult struct {
	Query string `json:"query"`
	Found int    `json:"found"`
	New   int    `json:"new"`
	Error string `json:"error,omitempty"`
}

// ScanSummary aggregates a whole scan invocation.
type ScanSummary struct {
	TotalFound int           `json:"total_found"`
	TotalNew   int           `json:"total_new"`
	Queries    []QueryResult `json:"queries"`
}

// ScanService runs the full pipeline: search, filter, score, classify,
// apply rules, resolve, store, alert.
type ScanService struct {
	Search Searcher
	Videos VideoSink
	Rules  RuleSource
	Logs   SearchLogger
	Alerts []Alerter
}

func NewScanService(search Searcher, videos VideoSink, ruleSource RuleSource, logs SearchLogger, alerts ...Alerter) *ScanService {
	return &ScanService{Search: search, Videos: videos, Rules: ruleSource, Logs: logs, Alerts: alerts}
}

// ScanKeywords scans each keyword independently. A failing query is logged
// and reported in its QueryResult; it never aborts the rest of the batch.
func (s *ScanService) ScanKeywords(ctx context.Context, keywords []string) ScanSummary {
	active := s.activeRules(ctx)

	var summary ScanSummary
	for _, kw := range keywords {
		res := QueryResult{Query: kw}
		candidates, err := s.Search.SearchKeyword(ctx, kw)
		if err != nil {
			log.Printf("[ScanService] keyword %q search failed: %v", kw, err)
			res.Error = err.Error()
			s.logQuery(ctx, kw, 0, err, nil)
			summary.Queries = append(summary.Queries, res)
			continue
		}
		res.Found = len(candidates)
		res.New = s.ingest(ctx, candidates, nil, nil, active)
		s.logQuery(ctx, kw, len(candidates), nil, nil)
		summary.TotalFound += res.Found
		summary.TotalNew += res.New
		summary.Queries = append(summary.Queries, res)
	}
	return summary
}

// ScanSongs scans the reference catalog. Candidates are filtered and scored
// against the (song, artist, duration) reference before ingestion.
func (s *ScanService) ScanSongs(ctx context.Context, songs []models.Song) ScanSummary {
	active := s.activeRules(ctx)

	var summary ScanSummary
	for _, song := range songs {
		label := song.SongName + " - " + song.ArtistName
		res := QueryResult{Query: label}
		candidates, err := s.Search.SearchSong(ctx, song.SongName, song.ArtistName, song.DurationMS)
		if err != nil {
			log.Printf("[ScanService] song %q search failed: %v", label, err)
			res.Error = err.Error()
			s.logQuery(ctx, label, 0, err, song.ArtistID)
			summary.Queries = append(summary.Queries, res)
			continue
		}
		ref := &matching.Reference{
			SongName:    song.SongName,
			ArtistName:  song.ArtistName,
			DurationSec: song.DurationMS / 1000,
		}
		res.Found = len(candidates)
		res.New = s.ingest(ctx, candidates, ref, song.ArtistID, active)
		s.logQuery(ctx, label, len(candidates), nil, song.ArtistID)
		summary.TotalFound += res.Found
		summary.TotalNew += res.New
		summary.Queries = append(summary.Queries, res)
	}
	return summary
}

// scored pairs a surviving candidate with its match quality for ordering.
type scored struct {
	video models.Video
	score int
}

// ingest runs one query's candidates through the pipeline and returns how
// many were stored as new.
func (s *ScanService) ingest(ctx context.Context, candidates []models.Video, ref *matching.Reference, artistID *int, active []rules.Rule) int {
	survivors := make([]scored, 0, len(candidates))
	for _, v := range candidates {
		if reason, rejected := matching.Reject(&v, ref); rejected {
			log.Printf("[ScanService] rejected %q: %s", v.Title, reason)
			continue
		}
		sc := scored{video: v}
		if ref != nil {
			sc.score = matching.Score(v.Title, ref.SongName, ref.ArtistName, v.DurationSec, ref.DurationSec)
			if sc.score < matching.MinMatchScore {
				log.Printf("[ScanService] rejected %q: match score %d below threshold", v.Title, sc.score)
				continue
			}
			sc.video.Priority = matching.PriorityForScore(sc.score)
		}
		survivors = append(survivors, sc)
	}

	// Best matches first: priority rank, then score, then closest duration.
	sort.SliceStable(survivors, func(i, j int) bool {
		ri, rj := rules.Rank(survivors[i].video.Priority), rules.Rank(survivors[j].video.Priority)
		if ri != rj {
			return ri > rj
		}
		if survivors[i].score != survivors[j].score {
			return survivors[i].score > survivors[j].score
		}
		if ref != nil && ref.DurationSec > 0 {
			return absDelta(survivors[i].video.DurationSec, ref.DurationSec) <
				absDelta(survivors[j].video.DurationSec, ref.DurationSec)
		}
		return false
	})

	added := 0
	for i := range survivors {
		v := &survivors[i].video
		v.ArtistID = artistID

		assessment := detector.Assess(v.Title, v.ChannelName, v.Description, v.DurationSec)
		ruleFlag, rulePriority := rules.Evaluate(v, active)
		decision := rules.Resolve(ruleFlag, rulePriority, assessment)

		v.Priority = decision.Priority
		v.AutoFlagged = decision.AutoFlagged
		v.RiskScore = assessment.RiskScore
		v.RiskLevel = assessment.RiskLevel
		v.RiskReason = assessment.Reason
		if decision.AutoFlagged {
			v.Status = models.StatusFlagged
		}

		id, err := s.Videos.AddVideo(ctx, v)
		if err != nil {
			log.Printf("[ScanService] failed to store %q: %v", v.VideoID, err)
			continue
		}
		if id == 0 {
			continue // already known
		}
		added++
		if v.Priority == models.PriorityCritical {
			for _, a := range s.Alerts {
				a.CriticalFinding(v)
			}
		}
	}
	return added
}

// activeRules snapshots the rule set once per scan invocation.
func (s *ScanService) activeRules(ctx context.Context) []rules.Rule {
	if s.Rules == nil {
		return nil
	}
	active, err := s.Rules.ActiveRules(ctx)
	if err != nil {
		log.Printf("[ScanService] failed to load auto-flag rules: %v", err)
		return nil
	}
	return active
}

func (s *ScanService) logQuery(ctx context.Context, query string, count int, qerr error, artistID *int) {
	if s.Logs == nil {
		return
	}
	entry := models.SearchLog{Keyword: query, ResultsCount: count, Success: qerr == nil, ArtistID: artistID}
	if qerr != nil {
		entry.ErrorMessage = qerr.Error()
	}
	if err := s.Logs.AddLog(ctx, &entry); err != nil {
		log.Printf("[ScanService] failed to write search log for %q: %v", query, err)
	}
}

func absDelta(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

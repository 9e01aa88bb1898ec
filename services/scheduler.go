package services

import (
	"context"
	"log"
	"sync"
	"time"

	"ugc-monitor/models"
)

// KeywordSource supplies the keywords enabled for scheduled scans.
type KeywordSource interface {
	ActiveKeywords(ctx context.Context) ([]string, error)
}

// SongSource supplies the catalog entries enabled for scheduled scans.
type SongSource interface {
	ActiveSongs(ctx context.Context) ([]models.Song, error)
}

// Scheduler runs the full scan on a fixed interval when enabled.
type Scheduler struct {
	Scan     *ScanService
	Keywords KeywordSource
	Songs    SongSource

	mu       sync.Mutex
	cancel   context.CancelFunc
	interval time.Duration
}

func NewScheduler(scan *ScanService, keywords KeywordSource, songs SongSource) *Scheduler {
	return &Scheduler{Scan: scan, Keywords: keywords, Songs: songs}
}

// Enable starts periodic scanning every intervalHours, replacing any
// previously running schedule.
func (s *Scheduler) Enable(intervalHours int) {
	if intervalHours <= 0 {
		intervalHours = 24
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.interval = time.Duration(intervalHours) * time.Hour
	log.Printf("[Scheduler] automatic scans enabled every %dh", intervalHours)
	go s.loop(ctx, s.interval)
}

// Disable stops periodic scanning.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		log.Println("[Scheduler] automatic scans disabled")
	}
}

// Status returns whether the schedule is active and its interval in hours.
func (s *Scheduler) Status() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil, int(s.interval / time.Hour)
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	log.Println("[Scheduler] starting scheduled scan")
	if keywords, err := s.Keywords.ActiveKeywords(ctx); err != nil {
		log.Printf("[Scheduler] failed to load keywords: %v", err)
	} else if len(keywords) > 0 {
		sum := s.Scan.ScanKeywords(ctx, keywords)
		log.Printf("[Scheduler] keyword scan: %d found, %d new", sum.TotalFound, sum.TotalNew)
	}
	if songs, err := s.Songs.ActiveSongs(ctx); err != nil {
		log.Printf("[Scheduler] failed to load songs: %v", err)
	} else if len(songs) > 0 {
		sum := s.Scan.ScanSongs(ctx, songs)
		log.Printf("[Scheduler] song scan: %d found, %d new", sum.TotalFound, sum.TotalNew)
	}
	log.Println("[Scheduler] scheduled scan finished")
}

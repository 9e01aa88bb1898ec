package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	musicBrainzBase      = "https://musicbrainz.org/ws/2"
	musicBrainzUserAgent = "UGC-Monitor/1.0 (music.copyright.monitor@example.com)"
	recordingPageSize    = 100
)

// MusicBrainzService fetches artist discographies. MusicBrainz is free and
// keyless but enforces one request per second, so requests are spaced out
// and discographies are cached.
type MusicBrainzService struct {
	base   string
	client *http.Client
	cache  *cache.Cache

	mu   sync.Mutex
	last time.Time
}

type MBArtist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Country        string `json:"country,omitempty"`
	Type           string `json:"type,omitempty"`
	Disambiguation string `json:"disambiguation,omitempty"`
	Score          int    `json:"score"`
}

// Discography is an artist's known recordings.
type Discography struct {
	Artist     MBArtist `json:"artist_info"`
	Songs      []string `json:"songs"`
	TotalSongs int      `json:"total_songs"`
	Source     string   `json:"source"`
}

func NewMusicBrainzService() *MusicBrainzService {
	return &MusicBrainzService{
		base:   musicBrainzBase,
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  cache.New(24*time.Hour, time.Hour),
	}
}

// throttle keeps at least one second between requests.
func (m *MusicBrainzService) throttle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if wait := time.Second - time.Since(m.last); wait > 0 {
		time.Sleep(wait)
	}
	m.last = time.Now()
}

func (m *MusicBrainzService) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	m.throttle()

	params.Set("fmt", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.base+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", musicBrainzUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("musicbrainz: %s returned %d", endpoint, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchArtist returns the best-scoring artist for a name, or nil when the
// artist is unknown to MusicBrainz.
func (m *MusicBrainzService) SearchArtist(ctx context.Context, artistName string) (*MBArtist, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("artist:%q", artistName))
	params.Set("limit", "1")

	var body struct {
		Artists []MBArtist `json:"artists"`
	}
	if err := m.get(ctx, "artist", params, &body); err != nil {
		return nil, err
	}
	if len(body.Artists) == 0 {
		return nil, nil
	}
	return &body.Artists[0], nil
}

// ArtistRecordings returns up to limit unique recording titles, sorted.
func (m *MusicBrainzService) ArtistRecordings(ctx context.Context, artistID string, limit int) ([]string, error) {
	seen := map[string]bool{}

	for offset := 0; offset < limit; {
		params := url.Values{}
		params.Set("query", "arid:"+artistID)
		pageSize := recordingPageSize
		if remaining := limit - offset; remaining < pageSize {
			pageSize = remaining
		}
		params.Set("limit", fmt.Sprint(pageSize))
		params.Set("offset", fmt.Sprint(offset))

		var body struct {
			Recordings []struct {
				Title string `json:"title"`
			} `json:"recordings"`
		}
		if err := m.get(ctx, "recording", params, &body); err != nil {
			return nil, err
		}
		if len(body.Recordings) == 0 {
			break
		}
		for _, rec := range body.Recordings {
			if rec.Title != "" {
				seen[rec.Title] = true
			}
		}
		if len(body.Recordings) < pageSize {
			break
		}
		offset += pageSize
	}

	titles := make([]string, 0, len(seen))
	for t := range seen {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles, nil
}

// ArtistDiscography fetches the complete discography for an artist name,
// serving repeated lookups from cache.
func (m *MusicBrainzService) ArtistDiscography(ctx context.Context, artistName string) (*Discography, error) {
	if cached, ok := m.cache.Get(artistName); ok {
		return cached.(*Discography), nil
	}

	artist, err := m.SearchArtist(ctx, artistName)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, fmt.Errorf("artist %q not found on MusicBrainz", artistName)
	}

	songs, err := m.ArtistRecordings(ctx, artist.ID, 500)
	if err != nil {
		return nil, err
	}

	d := &Discography{
		Artist:     *artist,
		Songs:      songs,
		TotalSongs: len(songs),
		Source:     "musicbrainz",
	}
	m.cache.Set(artistName, d, cache.DefaultExpiration)
	return d, nil
}

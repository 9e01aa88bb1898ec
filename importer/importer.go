// Package importer parses CSV bulk-import payloads for keywords, artists
// and songs.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ugc-monitor/models"
)

// readRows parses a CSV stream into header-keyed maps. Header names are
// lower-cased; blank lines are skipped.
func readRows(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		empty := true
		for i, field := range record {
			if i >= len(header) {
				break
			}
			field = strings.TrimSpace(field)
			if field != "" {
				empty = false
			}
			row[header[i]] = field
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ParseKeywordsCSV expects a "keyword" column and optional "auto_flag" and
// "priority" columns.
func ParseKeywordsCSV(r io.Reader) ([]models.Keyword, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	var keywords []models.Keyword
	for _, row := range rows {
		kw := row["keyword"]
		if kw == "" {
			continue
		}
		autoFlag, _ := strconv.ParseBool(row["auto_flag"])
		priority := normalizePriority(row["priority"])
		keywords = append(keywords, models.Keyword{
			Keyword:  kw,
			Active:   true,
			AutoFlag: autoFlag,
			Priority: priority,
		})
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords found in CSV (expected a %q column)", "keyword")
	}
	return keywords, nil
}

// ParseArtistsCSV expects a "name" column and optional "email",
// "contact_person" and "notes" columns.
func ParseArtistsCSV(r io.Reader) ([]models.Artist, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	var artists []models.Artist
	for _, row := range rows {
		name := row["name"]
		if name == "" {
			continue
		}
		artists = append(artists, models.Artist{
			Name:          name,
			Email:         row["email"],
			ContactPerson: row["contact_person"],
			Notes:         row["notes"],
			Active:        true,
		})
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("no artists found in CSV (expected a %q column)", "name")
	}
	return artists, nil
}

// ParseSongsCSV expects "song_name" and "artist_name" columns and an
// optional "duration_ms" column.
func ParseSongsCSV(r io.Reader) ([]models.Song, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	var songs []models.Song
	for _, row := range rows {
		songName, artistName := row["song_name"], row["artist_name"]
		if songName == "" || artistName == "" {
			continue
		}
		durationMS, _ := strconv.Atoi(row["duration_ms"])
		songs = append(songs, models.Song{
			SongName:   songName,
			ArtistName: artistName,
			DurationMS: durationMS,
			Active:     true,
			Priority:   models.PriorityMedium,
			Source:     "csv_import",
		})
	}
	if len(songs) == 0 {
		return nil, fmt.Errorf("no songs found in CSV (expected %q and %q columns)", "song_name", "artist_name")
	}
	return songs, nil
}

// KeywordTemplate is a downloadable example payload for the keyword import.
func KeywordTemplate() string {
	return "keyword,auto_flag,priority\n" +
		"artist name song name,false,Medium\n" +
		"artist name album leak,true,High\n"
}

func normalizePriority(p string) string {
	switch strings.ToLower(p) {
	case "critical":
		return models.PriorityCritical
	case "high":
		return models.PriorityHigh
	case "low":
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ugc-monitor/models"
)

func TestParseKeywordsCSV(t *testing.T) {
	csvData := "keyword,auto_flag,priority\n" +
		"artist song leak,true,High\n" +
		"artist full album,,\n" +
		",,\n"

	keywords, err := ParseKeywordsCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, keywords, 2)

	assert.Equal(t, "artist song leak", keywords[0].Keyword)
	assert.True(t, keywords[0].AutoFlag)
	assert.Equal(t, models.PriorityHigh, keywords[0].Priority)

	assert.False(t, keywords[1].AutoFlag)
	assert.Equal(t, models.PriorityMedium, keywords[1].Priority)
	assert.True(t, keywords[1].Active)
}

func TestParseKeywordsCSVMissingColumn(t *testing.T) {
	_, err := ParseKeywordsCSV(strings.NewReader("name\nsomething\n"))
	assert.Error(t, err)
}

func TestParseArtistsCSV(t *testing.T) {
	csvData := "name,email,contact_person,notes\n" +
		"Target Artist,label@example.com,Jo Manager,priority client\n"

	artists, err := ParseArtistsCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Target Artist", artists[0].Name)
	assert.Equal(t, "label@example.com", artists[0].Email)
	assert.Equal(t, "Jo Manager", artists[0].ContactPerson)
	assert.True(t, artists[0].Active)
}

func TestParseSongsCSV(t *testing.T) {
	csvData := "song_name,artist_name,duration_ms\n" +
		"Midnight Sky,Target Artist,200000\n" +
		"No Duration,Target Artist,\n"

	songs, err := ParseSongsCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, 200000, songs[0].DurationMS)
	assert.Equal(t, 0, songs[1].DurationMS)
	assert.Equal(t, "csv_import", songs[0].Source)
}

func TestParseSongsCSVRowsMissingNamesSkipped(t *testing.T) {
	csvData := "song_name,artist_name\n" +
		"Only Song,\n" +
		"Midnight Sky,Target Artist\n"

	songs, err := ParseSongsCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Midnight Sky", songs[0].SongName)
}

func TestKeywordTemplateParsesBack(t *testing.T) {
	keywords, err := ParseKeywordsCSV(strings.NewReader(KeywordTemplate()))
	require.NoError(t, err)
	assert.Len(t, keywords, 2)
}

package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ugc-monitor/importer"
	"ugc-monitor/models"
	"ugc-monitor/services"
)

type SongController struct {
	Songs       *services.SongService
	Artists     *services.ArtistService
	MusicBrainz *services.MusicBrainzService
}

func NewSongController(songs *services.SongService, artists *services.ArtistService, mb *services.MusicBrainzService) *SongController {
	return &SongController{Songs: songs, Artists: artists, MusicBrainz: mb}
}

func (sc *SongController) List(c *fiber.Ctx) error {
	var artistID *int
	if raw := c.Query("artist_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist_id"})
		}
		artistID = &id
	}
	songs, err := sc.Songs.ListSongs(c.Context(), artistID)
	if err != nil {
		log.Printf("[Songs] list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(songs)
}

func (sc *SongController) Create(c *fiber.Ctx) error {
	var s models.Song
	if err := c.BodyParser(&s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if s.SongName == "" || s.ArtistName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "song_name and artist_name are required"})
	}
	if s.Source == "" {
		s.Source = "manual"
	}
	id, err := sc.Songs.AddSong(c.Context(), &s)
	if err != nil {
		log.Printf("[Songs] create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if id == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "song already exists"})
	}
	log.Printf("[Songs] added song %q by %q (id %d)", s.SongName, s.ArtistName, id)
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (sc *SongController) SetActive(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid song id"})
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	ok, err := sc.Songs.SetSongActive(c.Context(), id, body.Active)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "song not found"})
	}
	return c.JSON(fiber.Map{"updated": true})
}

func (sc *SongController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid song id"})
	}
	ok, err := sc.Songs.DeleteSong(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "song not found"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// BulkImport accepts a CSV upload with song_name/artist_name/duration_ms columns.
func (sc *SongController) BulkImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing CSV file upload"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	songs, err := importer.ParseSongsCSV(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	res := sc.Songs.BulkAddSongs(c.Context(), songs)
	log.Printf("[Songs] bulk import: %d added, %d skipped, %d errors", res.Added, res.Skipped, len(res.Errors))
	return c.JSON(res)
}

// FetchDiscography imports an artist's known recordings from MusicBrainz
// into the song catalog.
func (sc *SongController) FetchDiscography(c *fiber.Ctx) error {
	artistID, err := strconv.Atoi(c.Params("artistID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist id"})
	}
	artist, err := sc.Artists.GetArtist(c.Context(), artistID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if artist == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
	}

	log.Printf("[Songs] fetching discography for %q", artist.Name)
	disco, err := sc.MusicBrainz.ArtistDiscography(c.Context(), artist.Name)
	if err != nil {
		log.Printf("[Songs] discography fetch failed for %q: %v", artist.Name, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	songs := make([]models.Song, 0, len(disco.Songs))
	for _, name := range disco.Songs {
		songs = append(songs, models.Song{
			SongName:   name,
			ArtistName: artist.Name,
			ArtistID:   &artist.ID,
			Active:     true,
			Priority:   models.PriorityMedium,
			Source:     disco.Source,
		})
	}
	res := sc.Songs.BulkAddSongs(c.Context(), songs)
	log.Printf("[Songs] discography import for %q: %d added, %d skipped", artist.Name, res.Added, res.Skipped)
	return c.JSON(fiber.Map{
		"artist":      disco.Artist,
		"total_songs": disco.TotalSongs,
		"added":       res.Added,
		"skipped":     res.Skipped,
		"errors":      res.Errors,
	})
}

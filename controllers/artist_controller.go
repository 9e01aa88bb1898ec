package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ugc-monitor/importer"
	"ugc-monitor/models"
	"ugc-monitor/services"
)

type ArtistController struct {
	Artists *services.ArtistService
}

func NewArtistController(artists *services.ArtistService) *ArtistController {
	return &ArtistController{Artists: artists}
}

func (ac *ArtistController) List(c *fiber.Ctx) error {
	artists, err := ac.Artists.ListArtists(c.Context())
	if err != nil {
		log.Printf("[Artists] list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(artists)
}

func (ac *ArtistController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist id"})
	}
	artist, err := ac.Artists.GetArtist(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if artist == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
	}
	return c.JSON(artist)
}

func (ac *ArtistController) Create(c *fiber.Ctx) error {
	var a models.Artist
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if a.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "artist name is required"})
	}
	id, err := ac.Artists.AddArtist(c.Context(), &a)
	if err != nil {
		log.Printf("[Artists] create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if id == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "artist already exists"})
	}
	log.Printf("[Artists] added artist %q (id %d)", a.Name, id)
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (ac *ArtistController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist id"})
	}
	var u services.ArtistUpdate
	if err := c.BodyParser(&u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	ok, err := ac.Artists.UpdateArtist(c.Context(), id, u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
	}
	return c.JSON(fiber.Map{"updated": true})
}

func (ac *ArtistController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist id"})
	}
	ok, err := ac.Artists.DeleteArtist(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "artist not found"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// BulkImport accepts a CSV upload with name/email/contact_person/notes columns.
func (ac *ArtistController) BulkImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing CSV file upload"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	artists, err := importer.ParseArtistsCSV(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var res services.BulkResult
	for i := range artists {
		id, err := ac.Artists.AddArtist(c.Context(), &artists[i])
		switch {
		case err != nil:
			res.Errors = append(res.Errors, artists[i].Name+": "+err.Error())
		case id == 0:
			res.Skipped++
		default:
			res.Added++
		}
	}
	log.Printf("[Artists] bulk import: %d added, %d skipped, %d errors", res.Added, res.Skipped, len(res.Errors))
	return c.JSON(res)
}

// Package upload stores dashboard image uploads on disk and serves their
// public URLs. Files live under a configurable directory that main exposes
// via app.Static("/uploads", ...).
package upload

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jaevor/go-nanoid"
)

type Handler struct {
	dir   string
	newID func() string
}

func NewHandler(dir string) *Handler {
	newID, err := nanoid.Standard(21)
	if err != nil {
		panic(err)
	}
	return &Handler{dir: dir, newID: newID}
}

// RegisterProtectedRoutes mounts the dashboard file endpoints. All of them
// require a session; public access goes through the static route instead.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/upload", h.uploadFile)
	app.Get("/api/upload", h.listFiles)
	app.Delete("/api/upload", h.deleteFile)
}

func (h *Handler) uploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		log.Printf("create upload dir failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}

	// prefix with a fresh id so repeated uploads of the same filename never
	// overwrite each other
	name := h.newID() + "-" + sanitizeFilename(file.Filename)
	if err := c.SaveFile(file, filepath.Join(h.dir, name)); err != nil {
		log.Printf("save upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": "/uploads/" + name})
}

func (h *Handler) listFiles(c *fiber.Ctx) error {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON([]string{})
		}
		log.Printf("list uploads failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list files"})
	}

	urls := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		urls = append(urls, "/uploads/"+e.Name())
	}
	sort.Strings(urls)
	return c.JSON(urls)
}

func (h *Handler) deleteFile(c *fiber.Ctx) error {
	name := c.Query("file")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file query parameter is required"})
	}
	// accept either the bare name or the public /uploads/ URL
	name = strings.TrimPrefix(name, "/uploads/")
	if name != sanitizeFilename(name) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid file name"})
	}

	if err := os.Remove(filepath.Join(h.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
		}
		log.Printf("delete upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete file"})
	}
	return c.JSON(fiber.Map{"deleted": name})
}

// sanitizeFilename strips any path components so a crafted name cannot
// escape the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}

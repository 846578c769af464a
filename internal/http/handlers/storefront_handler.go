package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	applog "bookstore/internal/log"
	"bookstore/internal/repos"
	"bookstore/internal/services"
)

//go:embed views/*.html
var viewFiles embed.FS

// Views loads the page templates compiled into the binary.
func Views() *html.Engine {
	sub, err := fs.Sub(viewFiles, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

type StorefrontHandler struct {
	Catalog *services.CatalogService
}

// Index renders the in-stock catalogue, optionally filtered by ?q=.
func (h *StorefrontHandler) Index(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))

	var (
		rows []repos.BookRow
		err  error
	)
	if q == "" {
		rows, err = h.Catalog.Storefront(c.UserContext())
	} else {
		rows, err = h.Catalog.Search(c.UserContext(), q)
	}
	if services.IsValidation(err) {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": q})
		return render(c.Status(fiber.StatusBadRequest), "storefront", fiber.Map{
			"Title": "Bookstore",
			"Books": []bookResponse{},
			"Err":   err.Error(),
		})
	}
	if err != nil {
		return err
	}
	return render(c, "storefront", fiber.Map{
		"Title": "Bookstore",
		"Q":     q,
		"Books": toBookRows(rows),
	})
}

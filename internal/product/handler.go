package product

import (
	"log"
	"os"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.getProducts)
	// must be registered before /api/products/:id so "by-ids" is not
	// captured as a product id
	app.Get("/api/products/by-ids", h.getProductsByIDs)
	app.Get("/api/products/:id", h.getProduct)
	app.Post("/api/products/:id/view", h.incrementView)
	app.Post("/api/products/:id/like", h.toggleLike)

	// dev-only endpoint to reset products — enabled when ALLOW_SEED=1
	app.Post("/dev/seed-products", h.seedProducts)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products", h.createProduct)
	app.Put("/api/products/:id", h.updateProduct)
	app.Delete("/api/products/:id", h.deleteProduct)
	app.Post("/api/products/:id/toggle", h.toggleActive)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	adminMode := c.Query("admin") == "true"
	products, err := h.service.List(adminMode)
	if err != nil {
		log.Printf("product list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load products"})
	}
	return c.JSON(products)
}

func (h *Handler) getProductsByIDs(c *fiber.Ctx) error {
	raw := strings.Split(c.Query("ids"), ",")
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	products, err := h.service.ListByIDs(ids)
	if err != nil {
		log.Printf("product lookup by ids failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load products"})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Printf("product get failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load product"})
	}
	return c.JSON(p)
}

// validateProductPayload collects all missing required fields at once so the
// admin form can show every problem in a single round-trip.
func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(p.NameEn) == "" {
		errs["nameEn"] = "nameEn is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		errs["description"] = "description is required"
	}
	if strings.TrimSpace(p.DescriptionEn) == "" {
		errs["descriptionEn"] = "descriptionEn is required"
	}
	return errs
}

func validationMessage(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "missing required fields: " + strings.Join(fields, ", ")
}

// createProductRequest shadows the model's active flag with a pointer so an
// omitted field is distinguishable from an explicit false. New products are
// visible unless the payload says otherwise.
type createProductRequest struct {
	Product
	Active *bool `json:"active"`
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	req := new(createProductRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	p := req.Product
	p.Active = true
	if req.Active != nil {
		p.Active = *req.Active
	}

	if ves := validateProductPayload(&p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(ves)})
	}

	created, err := h.service.Create(p)
	if err != nil {
		log.Printf("product create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create product"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	patch := new(Patch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Update(c.Params("id"), *patch)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Printf("product update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update product"})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Printf("product delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete product"})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}

func (h *Handler) toggleActive(c *fiber.Ctx) error {
	p, err := h.service.ToggleActive(c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Printf("product toggle failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to toggle product"})
	}
	return c.JSON(p)
}

func (h *Handler) incrementView(c *fiber.Ctx) error {
	views, err := h.service.IncrementViews(c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Printf("view increment failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record view"})
	}
	return c.JSON(fiber.Map{"views": views})
}

type likeRequest struct {
	Action string `json:"action"`
}

// toggleLike moves the like counter in the direction the client asks for. The
// client tracks its own liked-state locally; the server only applies the delta.
func (h *Handler) toggleLike(c *fiber.Ctx) error {
	payload := new(likeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var delta int
	switch payload.Action {
	case "add":
		delta = 1
	case "remove":
		delta = -1
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action must be \"add\" or \"remove\""})
	}

	likes, err := h.service.AddLikes(c.Params("id"), delta)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Printf("like update failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update likes"})
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// seedProducts clears the product table and inserts the provided list (or a
// default sample list when the body is not a product array). Gated by the
// ALLOW_SEED environment variable.
func (h *Handler) seedProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_SEED") != "1" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "seeding not allowed"})
	}

	var products []Product
	if err := c.BodyParser(&products); err != nil {
		products = sampleProducts()
	}

	// an explicit empty array clears the table without re-seeding
	if err := h.service.ResetProducts(products); err != nil {
		log.Printf("product seed failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to seed products"})
	}
	return c.JSON(products)
}

func sampleProducts() []Product {
	return []Product{
		{
			Name:          "قفطان ملكي",
			NameEn:        "Royal Caftan",
			Description:   "قفطان حرير مطرز يدويا",
			DescriptionEn: "Hand-embroidered silk caftan",
			Price:         "150 د.ك",
			PriceEn:       "490 USD",
			Details:       []string{"حرير طبيعي", "تطريز يدوي"},
			DetailsEn:     []string{"Pure silk", "Hand embroidery"},
			Images:        []string{"/uploads/royal-caftan.jpg"},
			Tags:          []string{"حرير"},
			TagsEn:        []string{"Silk"},
			Featured:      true,
			Active:        true,
		},
		{
			Name:          "قفطان قطني",
			NameEn:        "Cotton Caftan",
			Description:   "قفطان قطني خفيف للصيف",
			DescriptionEn: "Light cotton caftan for summer",
			Price:         "80 د.ك",
			PriceEn:       "260 USD",
			Details:       []string{"قطن مصري"},
			DetailsEn:     []string{"Egyptian cotton"},
			Images:        []string{"/uploads/cotton-caftan.jpg"},
			Tags:          []string{"قطن"},
			TagsEn:        []string{"Cotton"},
			Active:        true,
		},
		{
			Name:          "قفطان مخمل",
			NameEn:        "Velvet Caftan",
			Description:   "قفطان مخمل شتوي بأزرار ذهبية",
			DescriptionEn: "Winter velvet caftan with golden buttons",
			Price:         "",
			PriceEn:       "",
			Details:       []string{"مخمل", "أزرار ذهبية"},
			DetailsEn:     []string{"Velvet", "Golden buttons"},
			Images:        []string{"/uploads/velvet-caftan.jpg"},
			Tags:          []string{"مخمل"},
			TagsEn:        []string{"Velvet"},
			Active:        true,
		},
	}
}

package admin

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	service   *Service
	jwtSecret []byte
}

// NewHandler takes the signing secret explicitly; main validates it once at
// startup and the same value feeds the verification middleware.
func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: []byte(jwtSecret)}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/admin/sign-in", h.signIn)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/admin/me", h.getMe)
	app.Get("/api/admins", h.getAdmins)
	app.Post("/api/admins", h.createAdmin)
	app.Put("/api/admins/:id", h.updateAdmin)
	app.Delete("/api/admins/:id", h.deleteAdmin)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	a, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	claims := jwt.MapClaims{
		"admin_id": a.ID,
		"email":    a.Email,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		log.Printf("token signing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"admin": sanitizeAdmin(a),
		"token": signed,
	})
}

func (h *Handler) getMe(c *fiber.Ctx) error {
	adminID, err := GetAdminIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	a, err := h.service.GetByID(adminID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "admin not found"})
	}
	return c.JSON(sanitizeAdmin(a))
}

func (h *Handler) getAdmins(c *fiber.Ctx) error {
	admins, err := h.service.List()
	if err != nil {
		log.Printf("admin list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load admins"})
	}
	out := make([]Admin, 0, len(admins))
	for _, a := range admins {
		out = append(out, sanitizeAdmin(a))
	}
	return c.JSON(out)
}

func (h *Handler) createAdmin(c *fiber.Ctx) error {
	payload := new(Admin)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if strings.TrimSpace(payload.Name) == "" ||
		strings.TrimSpace(payload.Email) == "" ||
		strings.TrimSpace(payload.Password) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, email and password are required"})
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already exists"})
		}
		log.Printf("admin create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create admin"})
	}
	return c.Status(fiber.StatusCreated).JSON(sanitizeAdmin(created))
}

func (h *Handler) updateAdmin(c *fiber.Ctx) error {
	patch := new(Patch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Update(c.Params("id"), *patch)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "admin not found"})
		case ErrEmailExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already exists"})
		default:
			log.Printf("admin update failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update admin"})
		}
	}
	return c.JSON(sanitizeAdmin(updated))
}

func (h *Handler) deleteAdmin(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "admin not found"})
		}
		log.Printf("admin delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete admin"})
	}
	return c.JSON(fiber.Map{"message": "admin deleted"})
}

func sanitizeAdmin(a Admin) Admin {
	a.Password = ""
	return a
}

// GetAdminIDFromCtx extracts the authenticated admin id from the JWT the
// middleware stored on the request.
func GetAdminIDFromCtx(c *fiber.Ctx) (string, error) {
	u := c.Locals("user")
	if u == nil {
		return "", fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := claims["admin_id"].(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

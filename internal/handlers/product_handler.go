package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
// The static /categories and /user/:userId routes must come before /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/categories", h.HandleListCategories)
	productRoutes.Get("/user/:userId", h.HandleListByUser)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// ratingRequest mirrors the rating composite with pointer fields so an
// absent rate or count is distinguishable from a legal zero.
type ratingRequest struct {
	Rate  *float64 `json:"rate" validate:"required"`
	Count *int     `json:"count" validate:"required"`
}

// CreateProductRequest is the request body for product creation. Numeric
// fields are pointers for the same reason as ratingRequest: quantity 0 and
// rate 0 are valid values, only a missing field is a validation error.
type CreateProductRequest struct {
	Name        string        `json:"name" validate:"required"`
	Price       *float64      `json:"price" validate:"required"`
	Quantity    *int          `json:"quantity" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Image       string        `json:"image" validate:"required"`
	Category    string        `json:"category" validate:"required"`
	Rating      ratingRequest `json:"rating"`
	User        string        `json:"user" validate:"required"`
}

// updateProductRequest is the request body for product updates. The user
// field identifies the caller for the ownership check; it never changes the
// stored owner.
type updateProductRequest struct {
	services.ProductUpdate
	User string `json:"user"`
}

// HandleCreateProduct creates a new product.
// A missing required field surfaces as 500 with the validation message,
// matching the contract the storefront client was written against.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			missing := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				missing = append(missing, strings.ToLower(e.Field()))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": fmt.Sprintf("Product validation failed: %s required", strings.Join(missing, ", ")),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	product := models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Rating:      models.Rating{Rate: *req.Rating.Rate, Count: *req.Rating.Count},
		UserID:      req.User,
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleListProducts retrieves all products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProduct(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces the named fields on a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	product, err := h.service.UpdateProduct(productID, req.User, req.ProductUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to edit this product",
			})
		default:
			log.Printf("Error updating product %s: %v", productID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product. The optional user query parameter
// identifies the caller for the ownership check.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	callerID := c.Query("user")

	if err := h.service.DeleteProduct(productID, callerID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to delete this product",
			})
		default:
			log.Printf("Error deleting product %s: %v", productID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleListByUser retrieves all products owned by the given user.
func (h *ProductHandler) HandleListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	products, err := h.service.ListByUser(userID)
	if err != nil {
		log.Printf("Error getting products for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleListCategories retrieves the distinct category values.
func (h *ProductHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(categories)
}

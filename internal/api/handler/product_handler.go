package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstack/catalog-api/internal/api/metrics"
	"github.com/shopstack/catalog-api/internal/core/domain"
	"github.com/shopstack/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
	logger  zerolog.Logger
}

func NewProductHandler(service ports.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  productResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	metrics.ProductOpsTotal.WithLabelValues("create").Inc()
	h.logger.Info().Str("subject", subject).Int64("product_id", created.ID).Msg("product created")
	return c.JSON(http.StatusCreated, toProductResponse(created))
}

// List handles GET /products.
//
// @Summary      List products with filtering, sorting, and pagination
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        min_price   query     number  false  "Minimum price"
// @Param        max_price   query     number  false  "Maximum price"
// @Param        sort_by     query     string  false  "Sort field"  Enums(price, quantity, name)
// @Param        sort_order  query     string  false  "Sort order"  Enums(asc, desc)
// @Param        skip        query     int     false  "Results to skip"
// @Param        limit       query     int     false  "Maximum results (1-100)"
// @Success      200  {array}   productResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	if _, err := ctxSubject(c); err != nil {
		return err
	}

	var req listProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	products, err := h.service.List(c.Request().Context(), req.toQuery())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by identifier
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Product identifier"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	if _, err := ctxSubject(c); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Update handles PUT /products/:id. Full replace: every field of the
// record is overwritten from the validated input.
//
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product identifier"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if _, err := h.service.Update(c.Request().Context(), id, req.toInput()); err != nil {
		return err
	}

	metrics.ProductOpsTotal.WithLabelValues("update").Inc()
	h.logger.Info().Str("subject", subject).Int64("product_id", id).Msg("product updated")
	return c.JSON(http.StatusOK, messageResponse{Message: "product updated"})
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Product identifier"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.ProductOpsTotal.WithLabelValues("delete").Inc()
	h.logger.Info().Str("subject", subject).Int64("product_id", id).Msg("product deleted")
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

// parseID reads the :id path parameter. A non-numeric identifier cannot
// name any product, so it maps to the same not-found outcome.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrProductNotFound
	}
	return id, nil
}

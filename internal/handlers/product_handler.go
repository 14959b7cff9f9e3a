package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"quickbuy/internal/middleware"
	"quickbuy/internal/models"
	"quickbuy/internal/response"
	"quickbuy/internal/services"
)

type ProductHandler struct {
	productService *services.ProductService
	logger         zerolog.Logger
	debug          bool
}

func NewProductHandler(productService *services.ProductService, logger zerolog.Logger, debug bool) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
		debug:          debug,
	}
}

// parseFilter builds the per-request filter from query parameters. Malformed
// numeric parameters fall back to their defaults rather than failing the
// request.
func parseFilter(r *http.Request) models.ProductFilter {
	q := r.URL.Query()
	filter := models.ProductFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
		Sort:     models.SortKey(q.Get("sort")),
		Page:     1,
		PageSize: 10,
	}

	if v := q.Get("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page >= 1 {
			filter.Page = page
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size >= 1 {
			filter.PageSize = size
		}
	}
	return filter
}

func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, meta, err := h.productService.List(r.Context(), parseFilter(r))
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "Products retrieved successfully", products, &meta)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.productService.Get(r.Context(), productID)
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product, nil)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.productService.Create(r.Context(), claims.UserID, input)
	if err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", map[string]int64{"id": id}, nil)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	// Unknown fields are rejected rather than silently dropped, so a typo'd
	// field name cannot read as a successful no-op update.
	var upd models.ProductUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&upd); err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.productService.Update(r.Context(), productID, upd); err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", nil, nil)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.productService.Delete(r.Context(), productID); err != nil {
		response.Error(w, err, h.debug)
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil, nil)
}

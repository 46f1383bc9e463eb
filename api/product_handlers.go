package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"watchstore/domain"
)

// defaultPageSize caps product listings when the client sends no pageSize.
const defaultPageSize = 10

// listProductsHandler returns the catalog page matching the query
// parameters: q (substring on name/description), brand, category, minPrice,
// maxPrice, page, pageSize.
// @Summary List products
// @Produce json
// @Success 200
// @Router /api/products [get]
func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ListFilter{
		Query:    q.Get("q"),
		Brand:    q.Get("brand"),
		Category: q.Get("category"),
	}
	if v := q.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		filter.MinPrice = &d
	}
	if v := q.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		filter.MaxPrice = &d
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PageSize, _ = strconv.Atoi(q.Get("pageSize"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	products, total, err := a.catalog.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not list products")
		return
	}
	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"products":    products,
		"total":       total,
		"currentPage": filter.Page,
		"totalPages":  totalPages,
	})
}

// getProductHandler returns one product by id.
// @Summary Get product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200
// @Router /api/products/{id} [get]
func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := a.catalog.Get(r.Context(), id)
	if err != nil {
		if domain.IsProductNotFoundError(err) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"product": product,
	})
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
}

// validateCreateProduct applies the write-side field rules. The store only
// rejects outright malformed products; clients get the stricter contract.
func validateCreateProduct(req createProductRequest) string {
	if len(req.Name) < 2 {
		return "Product name must be at least 2 characters"
	}
	if req.Price.IsNegative() {
		return "Price must be a non-negative number"
	}
	if len(req.Description) < 10 {
		return "Description must be at least 10 characters"
	}
	if req.Brand == "" {
		return "Brand is required"
	}
	if req.Category == "" {
		return "Category is required"
	}
	if req.Stock < 0 {
		return "Stock must be a non-negative integer"
	}
	return ""
}

// validatePatchProduct applies the same rules as validateCreateProduct but
// only to the fields the patch supplies.
func validatePatchProduct(patch domain.ProductPatch) string {
	if patch.Name != nil && len(*patch.Name) < 2 {
		return "Product name must be at least 2 characters"
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return "Price must be a non-negative number"
	}
	if patch.Description != nil && len(*patch.Description) < 10 {
		return "Description must be at least 10 characters"
	}
	if patch.Brand != nil && *patch.Brand == "" {
		return "Brand is required"
	}
	if patch.Category != nil && *patch.Category == "" {
		return "Category is required"
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return "Stock must be a non-negative integer"
	}
	return ""
}

// createProductHandler adds a product to the catalog. Admin only.
// @Summary Create product
// @Accept json
// @Produce json
// @Param product body createProductRequest true "Product"
// @Success 201
// @Security ApiKeyAuth
// @Router /api/products [post]
func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateCreateProduct(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Images:      req.Images,
		Brand:       req.Brand,
		Category:    req.Category,
		Stock:       req.Stock,
	}
	if err := a.catalog.Create(r.Context(), product); err != nil {
		if domain.IsInvalidProductError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not create product")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"product": product,
	})
}

// updateProductHandler partially updates a product: supplied fields
// overwrite, omitted fields retain their prior value. Admin only.
// @Summary Update product
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param patch body domain.ProductPatch true "Fields to update"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/products/{id} [put]
func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var patch domain.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validatePatchProduct(patch); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	product, err := a.catalog.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case domain.IsProductNotFoundError(err):
			respondError(w, http.StatusNotFound, err.Error())
		case domain.IsInvalidProductError(err):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Could not update product")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"product": product,
	})
}

// deleteProductHandler removes a product from the catalog. Admin only.
// Existing cart lines for the product become dangling references and are
// hidden from cart reads.
// @Summary Delete product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/products/{id} [delete]
func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.catalog.Delete(r.Context(), id); err != nil {
		if domain.IsProductNotFoundError(err) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

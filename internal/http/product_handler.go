package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/supervape/catalog/internal/apperr"
	"github.com/supervape/catalog/internal/service"
	"github.com/supervape/catalog/pkg/validator"
)

type productHandler struct {
	catalogSvc service.CatalogService
	validator  validator.Validator
	responder  *responder
}

func newProductHandler(catalogSvc service.CatalogService, v validator.Validator, re *responder) *productHandler {
	return &productHandler{
		catalogSvc: catalogSvc,
		validator:  v,
		responder:  re,
	}
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.ListProducts(r.Context())
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	items := make([]productResponse, 0, len(products))
	for _, product := range products {
		items = append(items, newProductResponse(product))
	}

	h.responder.respond(w, r, http.StatusOK, items)
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if err := decode(r, h.validator, &req); err != nil {
		h.responder.fail(w, r, err)
		return
	}

	product, err := h.catalogSvc.CreateProduct(r.Context(), req.toParams())
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	h.responder.respond(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	var req productUpdateRequest
	if err := decode(r, h.validator, &req); err != nil {
		h.responder.fail(w, r, err)
		return
	}

	product, err := h.catalogSvc.UpdateProduct(r.Context(), id, req.toParams())
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	h.responder.respond(w, r, http.StatusOK, newProductResponse(product))
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	if err := h.catalogSvc.DeleteProduct(r.Context(), id); err != nil {
		h.responder.fail(w, r, err)
		return
	}

	h.responder.respond(w, r, http.StatusOK, deletedResponse{Deleted: true})
}

// productIDParam parses the product id from the URL. An id that is not a
// valid UUID cannot reference any product, so it reads as not found.
func productIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return uuid.Nil, apperr.ProductNotFoundErr.WrapParent(err)
	}
	return id, nil
}

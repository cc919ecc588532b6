package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/supervape/catalog/internal/apperr"
	"github.com/supervape/catalog/internal/service"
	"github.com/supervape/catalog/pkg/validator"
)

type flavorHandler struct {
	catalogSvc service.CatalogService
	validator  validator.Validator
	responder  *responder
}

func newFlavorHandler(catalogSvc service.CatalogService, v validator.Validator, re *responder) *flavorHandler {
	return &flavorHandler{
		catalogSvc: catalogSvc,
		validator:  v,
		responder:  re,
	}
}

func (h *flavorHandler) add(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	var req flavorCreateRequest
	if err := decode(r, h.validator, &req); err != nil {
		h.responder.fail(w, r, err)
		return
	}

	flavor, err := h.catalogSvc.AddFlavor(r.Context(), productID, service.CreateFlavorParams(req))
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	h.responder.respond(w, r, http.StatusOK, newFlavorResponse(flavor))
}

func (h *flavorHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := flavorIDParam(r)
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	var req flavorUpdateRequest
	if err := decode(r, h.validator, &req); err != nil {
		h.responder.fail(w, r, err)
		return
	}

	flavor, err := h.catalogSvc.UpdateFlavor(r.Context(), id, service.UpdateFlavorParams(req))
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	h.responder.respond(w, r, http.StatusOK, newFlavorResponse(flavor))
}

func (h *flavorHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := flavorIDParam(r)
	if err != nil {
		h.responder.fail(w, r, err)
		return
	}

	if err := h.catalogSvc.DeleteFlavor(r.Context(), id); err != nil {
		h.responder.fail(w, r, err)
		return
	}

	h.responder.respond(w, r, http.StatusOK, deletedResponse{Deleted: true})
}

func flavorIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "flavorID"))
	if err != nil {
		return uuid.Nil, apperr.FlavorNotFoundErr.WrapParent(err)
	}
	return id, nil
}

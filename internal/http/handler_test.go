package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supervape/catalog/internal/apperr"
	"github.com/supervape/catalog/internal/config"
	catalogHTTP "github.com/supervape/catalog/internal/http"
	"github.com/supervape/catalog/internal/model"
	"github.com/supervape/catalog/internal/service"
	"github.com/supervape/catalog/pkg/ptr"
)

type stubCatalog struct {
	listProductsFn  func(ctx context.Context) ([]model.Product, error)
	getProductFn    func(ctx context.Context, id uuid.UUID) (model.Product, error)
	createProductFn func(ctx context.Context, params service.CreateProductParams) (model.Product, error)
	updateProductFn func(ctx context.Context, id uuid.UUID, params service.UpdateProductParams) (model.Product, error)
	deleteProductFn func(ctx context.Context, id uuid.UUID) error
	addFlavorFn     func(ctx context.Context, productID uuid.UUID, params service.CreateFlavorParams) (model.Flavor, error)
	updateFlavorFn  func(ctx context.Context, id uuid.UUID, params service.UpdateFlavorParams) (model.Flavor, error)
	deleteFlavorFn  func(ctx context.Context, id uuid.UUID) error
}

func (s *stubCatalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.listProductsFn(ctx)
}

func (s *stubCatalog) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return s.getProductFn(ctx, id)
}

func (s *stubCatalog) CreateProduct(ctx context.Context, params service.CreateProductParams) (model.Product, error) {
	return s.createProductFn(ctx, params)
}

func (s *stubCatalog) UpdateProduct(ctx context.Context, id uuid.UUID, params service.UpdateProductParams) (model.Product, error) {
	return s.updateProductFn(ctx, id, params)
}

func (s *stubCatalog) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.deleteProductFn(ctx, id)
}

func (s *stubCatalog) AddFlavor(ctx context.Context, productID uuid.UUID, params service.CreateFlavorParams) (model.Flavor, error) {
	return s.addFlavorFn(ctx, productID, params)
}

func (s *stubCatalog) UpdateFlavor(ctx context.Context, id uuid.UUID, params service.UpdateFlavorParams) (model.Flavor, error) {
	return s.updateFlavorFn(ctx, id, params)
}

func (s *stubCatalog) DeleteFlavor(ctx context.Context, id uuid.UUID) error {
	return s.deleteFlavorFn(ctx, id)
}

func newTestRouter(authCfg config.Auth, stub *stubCatalog) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := catalogHTTP.New(config.HTTP{}, authCfg, logger, stub)

	r := chi.NewRouter()
	svc.RegisterHandlers(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(config.Auth{}, &stubCatalog{})

	resp := doJSON(t, r, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true}`, resp.Body.String())
}

func TestListProductsRoute(t *testing.T) {
	t.Run("Should list products with flavors", func(t *testing.T) {
		productID := uuid.New()
		stub := &stubCatalog{
			listProductsFn: func(context.Context) ([]model.Product, error) {
				return []model.Product{{
					ID:   productID,
					Name: ptr.New("Mint Stick"),
					Flavors: []model.Flavor{
						{ID: uuid.New(), ProductID: productID, Name: ptr.New("Ice"), Stock: 5, CreatedAtOrdinal: 0},
					},
				}}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodGet, "/products", "", nil)

		require.Equal(t, http.StatusOK, resp.Code)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Mint Stick", items[0]["name"])

		flavors := items[0]["flavors"].([]any)
		require.Len(t, flavors, 1)
		flavor := flavors[0].(map[string]any)
		assert.Equal(t, productID.String(), flavor["product_id"])
		assert.NotContains(t, flavor, "created_at_ordinal")
	})

	t.Run("Should return empty array without products", func(t *testing.T) {
		stub := &stubCatalog{
			listProductsFn: func(context.Context) ([]model.Product, error) {
				return []model.Product{}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodGet, "/products", "", nil)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, resp.Body.String())
	})
}

func TestCreateProductRoute(t *testing.T) {
	t.Run("Should create product and return it with generated id", func(t *testing.T) {
		productID := uuid.New()
		stub := &stubCatalog{
			createProductFn: func(_ context.Context, params service.CreateProductParams) (model.Product, error) {
				assert.Equal(t, "Mint Stick", *params.Name)
				assert.Equal(t, 9.99, *params.Price)
				assert.Nil(t, params.Category)
				return model.Product{
					ID:      productID,
					Name:    params.Name,
					Price:   params.Price,
					Flavors: []model.Flavor{},
				}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPost, "/products", `{"name":"Mint Stick","price":9.99}`, nil)

		require.Equal(t, http.StatusOK, resp.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, productID.String(), got["id"])
		assert.Equal(t, "Mint Stick", got["name"])
		assert.Equal(t, []any{}, got["flavors"])
	})

	t.Run("Should pass embedded flavors through in order", func(t *testing.T) {
		stub := &stubCatalog{
			createProductFn: func(_ context.Context, params service.CreateProductParams) (model.Product, error) {
				require.Len(t, params.Flavors, 2)
				assert.Equal(t, "Ice", *params.Flavors[0].Name)
				assert.Equal(t, "Berry", *params.Flavors[1].Name)
				assert.Nil(t, params.Flavors[0].Stock)
				return model.Product{ID: uuid.New(), Flavors: []model.Flavor{}}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPost, "/products",
			`{"name":"Mint Stick","flavors":[{"name":"Ice"},{"name":"Berry"}]}`, nil)

		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should reject malformed JSON before any operation", func(t *testing.T) {
		stub := &stubCatalog{
			createProductFn: func(context.Context, service.CreateProductParams) (model.Product, error) {
				t.Fatal("service must not be called on validation failure")
				return model.Product{}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPost, "/products", `{"name":`, nil)

		require.Equal(t, http.StatusBadRequest, resp.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, apperr.ValidationErrorCode, got["code"])
	})

	t.Run("Should reject a wrongly typed field", func(t *testing.T) {
		stub := &stubCatalog{
			createProductFn: func(context.Context, service.CreateProductParams) (model.Product, error) {
				t.Fatal("service must not be called on validation failure")
				return model.Product{}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPost, "/products", `{"price":"cheap"}`, nil)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestUpdateProductRoute(t *testing.T) {
	t.Run("Should update product", func(t *testing.T) {
		productID := uuid.New()
		stub := &stubCatalog{
			updateProductFn: func(_ context.Context, id uuid.UUID, params service.UpdateProductParams) (model.Product, error) {
				assert.Equal(t, productID, id)
				assert.Equal(t, "pod", *params.Category)
				assert.Nil(t, params.Name)
				return model.Product{ID: id, Category: params.Category, Flavors: []model.Flavor{}}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPatch, "/products/"+productID.String(), `{"category":"pod"}`, nil)

		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should return 404 for an id that is not a UUID", func(t *testing.T) {
		stub := &stubCatalog{
			updateProductFn: func(context.Context, uuid.UUID, service.UpdateProductParams) (model.Product, error) {
				t.Fatal("service must not be called for an unparseable id")
				return model.Product{}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPatch, "/products/unknown-id", `{"name":"x"}`, nil)

		require.Equal(t, http.StatusNotFound, resp.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, apperr.ProductNotFoundErrorCode, got["code"])
	})

	t.Run("Should return 404 for an unknown id", func(t *testing.T) {
		stub := &stubCatalog{
			updateProductFn: func(context.Context, uuid.UUID, service.UpdateProductParams) (model.Product, error) {
				return model.Product{}, apperr.ProductNotFoundErr
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPatch, "/products/"+uuid.NewString(), `{"name":"x"}`, nil)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestDeleteProductRoute(t *testing.T) {
	t.Run("Should delete product", func(t *testing.T) {
		stub := &stubCatalog{
			deleteProductFn: func(context.Context, uuid.UUID) error { return nil },
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodDelete, "/products/"+uuid.NewString(), "", nil)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"deleted":true}`, resp.Body.String())
	})

	t.Run("Should return 404 for an unknown id", func(t *testing.T) {
		stub := &stubCatalog{
			deleteProductFn: func(context.Context, uuid.UUID) error { return apperr.ProductNotFoundErr },
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodDelete, "/products/"+uuid.NewString(), "", nil)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestAddFlavorRoute(t *testing.T) {
	t.Run("Should add flavor to product", func(t *testing.T) {
		productID := uuid.New()
		flavorID := uuid.New()
		stub := &stubCatalog{
			addFlavorFn: func(_ context.Context, gotProductID uuid.UUID, params service.CreateFlavorParams) (model.Flavor, error) {
				assert.Equal(t, productID, gotProductID)
				assert.Equal(t, "Ice", *params.Name)
				return model.Flavor{
					ID:               flavorID,
					ProductID:        gotProductID,
					Name:             params.Name,
					CreatedAtOrdinal: 4,
				}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPost, "/products/"+productID.String()+"/flavors", `{"name":"Ice"}`, nil)

		require.Equal(t, http.StatusOK, resp.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, flavorID.String(), got["id"])
		assert.Equal(t, productID.String(), got["product_id"])
		assert.Equal(t, float64(0), got["stock"])
		assert.NotContains(t, got, "created_at_ordinal", "internal ordering field never leaves the API")
	})

	t.Run("Should return 404 for an unknown product", func(t *testing.T) {
		stub := &stubCatalog{
			addFlavorFn: func(context.Context, uuid.UUID, service.CreateFlavorParams) (model.Flavor, error) {
				return model.Flavor{}, apperr.ProductNotFoundErr
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPost, "/products/"+uuid.NewString()+"/flavors", `{"name":"Ice"}`, nil)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestUpdateFlavorRoute(t *testing.T) {
	t.Run("Should update flavor", func(t *testing.T) {
		flavorID := uuid.New()
		stub := &stubCatalog{
			updateFlavorFn: func(_ context.Context, id uuid.UUID, params service.UpdateFlavorParams) (model.Flavor, error) {
				assert.Equal(t, flavorID, id)
				assert.Equal(t, int32(3), *params.Stock)
				assert.Nil(t, params.Name)
				return model.Flavor{ID: id, ProductID: uuid.New(), Stock: 3}, nil
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPatch, "/flavors/"+flavorID.String(), `{"stock":3}`, nil)

		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should return 404 for an unknown id", func(t *testing.T) {
		stub := &stubCatalog{
			updateFlavorFn: func(context.Context, uuid.UUID, service.UpdateFlavorParams) (model.Flavor, error) {
				return model.Flavor{}, apperr.FlavorNotFoundErr
			},
		}
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodPatch, "/flavors/"+uuid.NewString(), `{}`, nil)

		require.Equal(t, http.StatusNotFound, resp.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, apperr.FlavorNotFoundErrorCode, got["code"])
	})
}

func TestDeleteFlavorRoute(t *testing.T) {
	stub := &stubCatalog{
		deleteFlavorFn: func(context.Context, uuid.UUID) error { return nil },
	}
	r := newTestRouter(config.Auth{}, stub)

	resp := doJSON(t, r, http.MethodDelete, "/flavors/"+uuid.NewString(), "", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"deleted":true}`, resp.Body.String())
}

func TestAPIKeyGate(t *testing.T) {
	stub := &stubCatalog{
		listProductsFn: func(context.Context) ([]model.Product, error) {
			return []model.Product{}, nil
		},
	}

	t.Run("Should pass everything through when no key is configured", func(t *testing.T) {
		r := newTestRouter(config.Auth{}, stub)

		resp := doJSON(t, r, http.MethodGet, "/products", "", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should reject gated request without the header", func(t *testing.T) {
		r := newTestRouter(config.Auth{APIKey: "sekret"}, stub)

		resp := doJSON(t, r, http.MethodGet, "/products", "", nil)

		require.Equal(t, http.StatusUnauthorized, resp.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, apperr.UnauthorizedErrorCode, got["code"])
	})

	t.Run("Should reject gated request with a wrong key", func(t *testing.T) {
		r := newTestRouter(config.Auth{APIKey: "sekret"}, stub)

		resp := doJSON(t, r, http.MethodGet, "/products", "", map[string]string{"x-api-key": "nope"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("Should route normally with the right key", func(t *testing.T) {
		r := newTestRouter(config.Auth{APIKey: "sekret"}, stub)

		resp := doJSON(t, r, http.MethodGet, "/products", "", map[string]string{"x-api-key": "sekret"})
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should leave health ungated", func(t *testing.T) {
		r := newTestRouter(config.Auth{APIKey: "sekret"}, stub)

		resp := doJSON(t, r, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

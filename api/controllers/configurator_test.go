package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/internal/configurator"
	"github.com/printforge/configurator-backend/pkg/enums"
	pkgerrors "github.com/printforge/configurator-backend/pkg/errors"
)

type stubConfiguratorService struct {
	product    *configurator.ConfiguratorProduct
	quote      *configurator.QuoteResult
	err        error
	selections *configurator.Selections
}

func (s *stubConfiguratorService) Describe(ctx context.Context, productID uuid.UUID) (*configurator.ConfiguratorProduct, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubConfiguratorService) Quote(ctx context.Context, productID uuid.UUID, selections *configurator.Selections) (*configurator.QuoteResult, error) {
	s.selections = selections
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func productRequest(method, target string, productID string, body []byte) *http.Request {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestConfiguratorProductDetailSuccess(t *testing.T) {
	productID := uuid.New()
	svc := &stubConfiguratorService{
		product: &configurator.ConfiguratorProduct{
			ID:   productID,
			Slug: "business-cards",
			Name: "Business Cards",
			Type: enums.ProductTypeConfigurable,
		},
	}
	handler := ConfiguratorProductDetail(svc, nil)

	req := productRequest(http.MethodGet, "/api/v1/configurator/products/"+productID.String(), productID.String(), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data configurator.ConfiguratorProduct `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Slug != "business-cards" {
		t.Fatalf("unexpected product %q", envelope.Data.Slug)
	}
}

func TestConfiguratorProductDetailInvalidID(t *testing.T) {
	handler := ConfiguratorProductDetail(&stubConfiguratorService{}, nil)

	req := productRequest(http.MethodGet, "/api/v1/configurator/products/not-a-uuid", "not-a-uuid", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestConfiguratorProductDetailNotFound(t *testing.T) {
	productID := uuid.New()
	svc := &stubConfiguratorService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product is not active")}
	handler := ConfiguratorProductDetail(svc, nil)

	req := productRequest(http.MethodGet, "/api/v1/configurator/products/"+productID.String(), productID.String(), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestConfiguratorQuoteSuccess(t *testing.T) {
	productID := uuid.New()
	svc := &stubConfiguratorService{
		quote: &configurator.QuoteResult{
			Price: &configurator.PriceSummary{Total: decimal.NewFromInt(88)},
		},
	}
	handler := ConfiguratorQuote(svc, nil)

	body := []byte(`{
		"selections": {
			"quantity": 10,
			"material_id": "mat-1",
			"print_method_id": "offset",
			"options": {"paper-color": "negru", "extras": ["rounded", "varnish"]},
			"dimension": {"width": 200, "height": 100, "unit": "mm"}
		}
	}`)
	req := productRequest(http.MethodPost, "/api/v1/configurator/products/"+productID.String()+"/quote", productID.String(), body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.selections == nil {
		t.Fatal("selections not passed to the service")
	}
	if svc.selections.Quantity != 10 || svc.selections.MaterialID != "mat-1" {
		t.Fatalf("unexpected selections %+v", svc.selections)
	}
	if got := svc.selections.Options["paper-color"].Single(); got != "negru" {
		t.Fatalf("scalar option not decoded, got %q", got)
	}
	if got := svc.selections.Options["extras"]; len(got) != 2 {
		t.Fatalf("multi option not decoded, got %v", got)
	}
	if svc.selections.Dimension == nil || svc.selections.Dimension.Unit != enums.DimensionUnitMillimeter {
		t.Fatalf("dimension not decoded: %+v", svc.selections.Dimension)
	}
}

func TestConfiguratorQuoteInvalidBody(t *testing.T) {
	productID := uuid.New()
	handler := ConfiguratorQuote(&stubConfiguratorService{}, nil)

	req := productRequest(http.MethodPost, "/quote", productID.String(), []byte(`{"selections": {"unexpected": true}}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestConfiguratorQuoteInvalidDimensionUnit(t *testing.T) {
	productID := uuid.New()
	handler := ConfiguratorQuote(&stubConfiguratorService{}, nil)

	body := []byte(`{"selections": {"quantity": 1, "dimension": {"width": 10, "height": 10, "unit": "inches"}}}`)
	req := productRequest(http.MethodPost, "/quote", productID.String(), body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestConfiguratorQuoteUnknownOption(t *testing.T) {
	productID := uuid.New()
	svc := &stubConfiguratorService{err: pkgerrors.New(pkgerrors.CodeValidation, "unknown option in selections")}
	handler := ConfiguratorQuote(svc, nil)

	body := []byte(`{"selections": {"quantity": 1, "options": {"mystery": "x"}}}`)
	req := productRequest(http.MethodPost, "/quote", productID.String(), body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

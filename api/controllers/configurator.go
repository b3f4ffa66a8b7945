package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printforge/configurator-backend/api/responses"
	"github.com/printforge/configurator-backend/api/validators"
	"github.com/printforge/configurator-backend/internal/configurator"
	"github.com/printforge/configurator-backend/pkg/enums"
	pkgerrors "github.com/printforge/configurator-backend/pkg/errors"
	"github.com/printforge/configurator-backend/pkg/logger"
)

// ConfiguratorProductDetail serves the normalized product snapshot.
func ConfiguratorProductDetail(svc configurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.Describe(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ConfiguratorQuote evaluates the posted selections against the product.
func ConfiguratorQuote(svc configurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		selections, err := payload.Selections.toSelections()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Quote(r.Context(), productID, selections)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type quoteRequest struct {
	Selections selectionsRequest `json:"selections"`
}

// Quantity carries no validate tag on purpose: a missing or non-positive
// quantity surfaces as a validation entry in the quote result, not a 400.
type selectionsRequest struct {
	Quantity      int                                     `json:"quantity"`
	MaterialID    string                                  `json:"material_id,omitempty"`
	PrintMethodID string                                  `json:"print_method_id,omitempty"`
	FinishingIDs  []string                                `json:"finishing_ids,omitempty"`
	Options       map[string]configurator.OptionSelection `json:"options,omitempty"`
	Dimension     *dimensionRequest                       `json:"dimension,omitempty"`
}

type dimensionRequest struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
	Unit   string  `json:"unit" validate:"required"`
}

func (s selectionsRequest) toSelections() (*configurator.Selections, error) {
	selections := &configurator.Selections{
		Quantity:      s.Quantity,
		MaterialID:    strings.TrimSpace(s.MaterialID),
		PrintMethodID: strings.TrimSpace(s.PrintMethodID),
		FinishingIDs:  s.FinishingIDs,
		Options:       s.Options,
	}
	if s.Dimension != nil {
		unit, err := enums.ParseDimensionUnit(strings.TrimSpace(s.Dimension.Unit))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dimension unit")
		}
		selections.Dimension = &configurator.Dimension{
			Width:  s.Dimension.Width,
			Height: s.Dimension.Height,
			Unit:   unit,
		}
	}
	return selections, nil
}

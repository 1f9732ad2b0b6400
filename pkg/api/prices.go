//go:generate oapi-codegen -package api -generate types,gin,spec -o api.gen.go openapi.yaml

package api

import (
	"fmt"
	"net/http"
	"pricescan/pkg/errors"
	"pricescan/pkg/ledger"
	"pricescan/pkg/models"

	ginmiddleware "github.com/deepmap/oapi-codegen/pkg/gin-middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type (
	API struct {
		ServerInterface

		logger *zap.Logger
		prices ledger.Ledger
	}
)

func NewAPI(logger *zap.Logger, prices ledger.Ledger) *API {
	log := logger.Named("PricesAPI")
	api := &API{
		logger: log,
		prices: prices,
	}
	return api
}

// RegisterHandlers - mounts the price routes on e, every request is validated against the embedded OpenAPI document.
func (api *API) RegisterHandlers(e *gin.Engine) error {
	swagger, err := GetSwagger()
	if err != nil {
		return fmt.Errorf("can't load openapi document: %w", err)
	}
	// requests are matched by path only, whatever host serves them
	swagger.Servers = nil

	validator := ginmiddleware.OapiRequestValidator(swagger)
	RegisterHandlersWithOptions(e, api, GinServerOptions{
		Middlewares: []MiddlewareFunc{MiddlewareFunc(validator)},
	})
	return nil
}

func (api *API) mapErrorToStatus(err error) int {
	if errors.ErrorIs(err, errors.ErrInvalidPrice) {
		return http.StatusBadRequest
	}
	if errors.ErrorIs(err, errors.ErrNoScannedCode) {
		return http.StatusBadRequest
	}
	if errors.ErrorIs(err, errors.ErrInternal) {
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func (api *API) recordToResponse(record models.PriceRecord) PriceEntry {
	price, _ := record.Price.Float64()
	return PriceEntry{
		Code:    record.Code,
		Price:   price,
		Display: record.String(),
	}
}

// ListPrices (GET /api/v0/prices)
func (api *API) ListPrices(c *gin.Context) {
	records := api.prices.Load(c)
	resp := make([]PriceEntry, 0, len(records))
	for _, record := range records {
		resp = append(resp, api.recordToResponse(record))
	}
	c.JSON(http.StatusOK, resp)
}

// SavePrice (POST /api/v0/prices)
func (api *API) SavePrice(c *gin.Context) {
	var body SavePriceJSONRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	price, err := ledger.ParsePrice(body.Price)
	if err != nil {
		c.AbortWithStatus(api.mapErrorToStatus(err))
		return
	}

	if err := api.prices.Save(c, body.Code, price); err != nil {
		api.logger.Sugar().Errorf("can't save price for code=%s: (%s)", body.Code, err.Error())
		c.AbortWithStatus(api.mapErrorToStatus(err))
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"pricescan/pkg/errors"
	"pricescan/pkg/ledger"
	"pricescan/pkg/models"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	pricesPath = "/api/v0/prices"
)

func serveHTTP(
	e *gin.Engine,
	method string,
	url *url.URL,
	body io.Reader,
	headers map[string]string,
	cookies []http.Cookie,
) (*httptest.ResponseRecorder, *http.Request) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, url.String(), body)

	if len(headers) > 0 {
		for header, content := range headers {
			r.Header.Set(header, content)
		}
	}

	if len(cookies) > 0 {
		for _, cookie := range cookies {
			r.AddCookie(&cookie)
		}
	}

	e.ServeHTTP(w, r)
	return w, r
}

func createURL(path string, query string) *url.URL {
	return &url.URL{
		Scheme:   "http",
		Path:     path,
		Host:     "localhost",
		RawQuery: query,
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func newTestAPI(t *testing.T) (*API, *gin.Engine) {
	ctrl := gomock.NewController(t)
	prices := ledger.NewMockLedger(ctrl)
	api := &API{
		logger: zap.NewNop(),
		prices: prices,
	}
	gin.SetMode(gin.TestMode)
	e := gin.New()
	err := api.RegisterHandlers(e)
	assert.NoError(t, err)
	return api, e
}

func TestGetSwagger(t *testing.T) {
	swagger, err := GetSwagger()
	assert.NoError(t, err)
	assert.NotNil(t, swagger.Paths.Find(pricesPath))
	assert.Contains(t, swagger.Components.Schemas, "PriceEntry")
	assert.Contains(t, swagger.Components.Schemas, "SavePriceRequest")
}

func TestAPI_ListPrices(t *testing.T) {
	api, e := newTestAPI(t)
	prcs := api.prices.(*ledger.MockLedger)

	prcs.EXPECT().
		Load(gomock.Any()).
		Return([]models.PriceRecord{
			{Code: "012345678905", Price: decimal.RequireFromString("3.99")},
			{Code: "4006381333931", Price: decimal.RequireFromString("2.5")},
		})

	response, _ := serveHTTP(e, http.MethodGet, createURL(pricesPath, ""), nil, nil, nil)

	assert.Equal(t, http.StatusOK, response.Code)

	var respBody []PriceEntry
	err := json.Unmarshal(response.Body.Bytes(), &respBody)
	assert.NoError(t, err)

	assert.Equal(t, []PriceEntry{
		{Code: "012345678905", Price: 3.99, Display: "012345678905 — $3.99"},
		{Code: "4006381333931", Price: 2.5, Display: "4006381333931 — $2.50"},
	}, respBody)
}

func TestAPI_ListPrices_Empty(t *testing.T) {
	api, e := newTestAPI(t)
	prcs := api.prices.(*ledger.MockLedger)

	prcs.EXPECT().
		Load(gomock.Any()).
		Return([]models.PriceRecord{})

	response, _ := serveHTTP(e, http.MethodGet, createURL(pricesPath, ""), nil, nil, nil)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, "[]", response.Body.String())
}

func TestAPI_SavePrice(t *testing.T) {
	api, e := newTestAPI(t)
	prcs := api.prices.(*ledger.MockLedger)

	prcs.EXPECT().
		Save(gomock.Any(), "012345678905", decimal.RequireFromString("3.99")).
		Return(nil)

	response, _ := serveHTTP(
		e,
		http.MethodPost,
		createURL(pricesPath, ""),
		strings.NewReader(`{"code":"012345678905","price":"3.99"}`),
		jsonHeaders(),
		nil,
	)

	assert.Equal(t, http.StatusNoContent, response.Code)
}

func TestAPI_SavePrice_InvalidInput(t *testing.T) {
	bodies := []string{
		`{"code":"012345678905","price":"abc"}`,
		`{"code":"012345678905","price":"-1"}`,
		`{"code":"012345678905","price":""}`,
		`{"code":"","price":"3.99"}`,
		`{"price":"3.99"}`,
		`not json`,
	}
	for i, body := range bodies {
		t.Run(fmt.Sprintf("body_%d", i), func(t *testing.T) {
			// no Save expected, the mock fails the test on any call
			_, e := newTestAPI(t)
			response, _ := serveHTTP(e, http.MethodPost, createURL(pricesPath, ""), strings.NewReader(body), jsonHeaders(), nil)
			assert.Equal(t, http.StatusBadRequest, response.Code)
		})
	}
}

func TestAPI_SavePrice_StorageFailure(t *testing.T) {
	api, e := newTestAPI(t)
	prcs := api.prices.(*ledger.MockLedger)

	prcs.EXPECT().
		Save(gomock.Any(), "012345678905", decimal.RequireFromString("1")).
		Return(fmt.Errorf("%w: can't write prices, key=prices: disk full", errors.ErrInternal))

	response, _ := serveHTTP(
		e,
		http.MethodPost,
		createURL(pricesPath, ""),
		strings.NewReader(`{"code":"012345678905","price":"1"}`),
		jsonHeaders(),
		nil,
	)

	assert.Equal(t, http.StatusInternalServerError, response.Code)
}

// Package openapi binds the HTTP API described in openapi.yaml onto a chi
// router.
package openapi

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var Spec []byte

// GetQuoteParams defines parameters for GetQuote.
type GetQuoteParams struct {
	// Symbol is the ticker to look up.
	Symbol *string `form:"symbol,omitempty" json:"symbol,omitempty"`
	// Realtime asks for the real-time price only. 1/true/yes enable it.
	Realtime *string `form:"realtime,omitempty" json:"realtime,omitempty"`
}

// GetTimeSeriesParams defines parameters for GetTimeSeries.
type GetTimeSeriesParams struct {
	Symbol *string `form:"symbol,omitempty" json:"symbol,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/quote)
	GetQuote(w http.ResponseWriter, r *http.Request, params GetQuoteParams)
	// (GET /api/timeseries)
	GetTimeSeries(w http.ResponseWriter, r *http.Request, params GetTimeSeriesParams)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts requests to typed parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) GetQuote(w http.ResponseWriter, r *http.Request) {
	var params GetQuoteParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "symbol", query, &params.Symbol); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "symbol", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "realtime", query, &params.Realtime); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "realtime", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetQuote(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	var params GetTimeSeriesParams

	if err := runtime.BindQueryParameter("form", true, false, "symbol", r.URL.Query(), &params.Symbol); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "symbol", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetTimeSeries(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	var handler http.Handler = fn
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts si on options.BaseRouter, or on a new router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/quote", wrapper.GetQuote)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/timeseries", wrapper.GetTimeSeries)
	})
	return r
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/triplog/internal/domain"
)

// pathParam binds the chi URL parameter name into dest using the OpenAPI
// "simple" style, the same binding generated servers use.
func pathParam(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return fmt.Errorf("%w: invalid path parameter %s: %v", domain.ErrMalformedInput, name, err)
	}
	return nil
}

// queryParam binds an optional "form" style query parameter into dest.
// dest is left untouched when the parameter is absent.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("%w: invalid query parameter %s: %v", domain.ErrMalformedInput, name, err)
	}
	return nil
}

// bindQuery reads the list filters: from, to, q and sort.
// Returns domain.ErrValidation for an unknown sort mode.
func bindQuery(r *http.Request) (domain.Query, error) {
	var from, to, text, sortParam string
	for name, dest := range map[string]*string{"from": &from, "to": &to, "q": &text, "sort": &sortParam} {
		if err := queryParam(r, name, dest); err != nil {
			return domain.Query{}, err
		}
	}
	mode, err := domain.ParseSortMode(sortParam)
	if err != nil {
		return domain.Query{}, err
	}
	return domain.Query{From: from, To: to, Text: text, Sort: mode}, nil
}

// tripID returns the {id} path parameter.
func tripID(r *http.Request) (string, error) {
	var id string
	if err := pathParam(r, "id", &id); err != nil {
		return "", err
	}
	return id, nil
}

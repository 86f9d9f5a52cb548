/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package stub provides an in-memory stand in for the food API.  It honours
// the HTTP contract the integration suites rely on, and nothing more, so the
// harness can be exercised without a deployed service.
package stub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/unikorn-cloud/food/pkg/openapi"
)

// SessionCookie is the cookie the service uses to identify a session.
const SessionCookie = "JSESSIONID"

// DefaultProducts is the catalogue the service starts with and returns to
// on reset.
func DefaultProducts() []openapi.Product {
	return []openapi.Product{
		{Name: "Апельсин", Type: string(openapi.ProductTypeFruit), Exotic: true},
		{Name: "Капуста", Type: string(openapi.ProductTypeVegetable)},
		{Name: "Помидор", Type: string(openapi.ProductTypeVegetable)},
		{Name: "Яблоко", Type: string(openapi.ProductTypeFruit)},
	}
}

// Service is the stub food service.
type Service struct {
	// sessionID, when set, must be presented on every request.
	sessionID string

	validator *openapi.RequestValidator

	lock     sync.Mutex
	seed     []openapi.Product
	products []openapi.Product
}

// New returns a service with the given seed catalogue, or the default one if
// none is provided.
func New(sessionID string, seed ...openapi.Product) (*Service, error) {
	if len(seed) == 0 {
		seed = DefaultProducts()
	}

	return NewWithCatalogue(sessionID, seed)
}

// NewWithCatalogue returns a service seeded with exactly the given catalogue,
// an empty one included.  The seed is copied.
func NewWithCatalogue(sessionID string, seed []openapi.Product) (*Service, error) {
	validator, err := openapi.NewRequestValidator()
	if err != nil {
		return nil, err
	}

	s := &Service{
		sessionID: sessionID,
		validator: validator,
		seed:      slices.Clone(seed),
		products:  slices.Clone(seed),
	}

	return s, nil
}

// NewServer starts a service on a loopback address.  Callers must Close it.
func NewServer(sessionID string, seed ...openapi.Product) (*httptest.Server, *Service, error) {
	s, err := New(sessionID, seed...)
	if err != nil {
		return nil, nil, err
	}

	return httptest.NewServer(s.Handler()), s, nil
}

// NewServerWithCatalogue is NewServer for an exact, possibly empty, catalogue.
func NewServerWithCatalogue(sessionID string, seed []openapi.Product) (*httptest.Server, *Service, error) {
	s, err := NewWithCatalogue(sessionID, seed)
	if err != nil {
		return nil, nil, err
	}

	return httptest.NewServer(s.Handler()), s, nil
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requireSession)

	r.Get("/", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/food", s.listProducts)
		r.Post("/food", s.createProduct)
		r.Post("/data/reset", s.reset)
	})

	return r
}

// Products returns a snapshot of the current catalogue.
func (s *Service) Products() []openapi.Product {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]openapi.Product{}, s.products...)
}

func (s *Service) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.sessionID != "" {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value != s.sessionID {
				writeError(w, http.StatusUnauthorized, "session is missing or invalid")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Service) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write([]byte("<html><body>food</body></html>"))
}

func (s *Service) listProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Products())
}

func (s *Service) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.validator.Validate(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var request openapi.ProductCreate

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := openapi.Product{
		Name: request.Name,
		Type: string(request.Type),
	}

	if request.Exotic != nil {
		product.Exotic = *request.Exotic
	}

	s.lock.Lock()
	s.products = append(s.products, product)
	s.lock.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Service) reset(w http.ResponseWriter, _ *http.Request) {
	s.lock.Lock()
	s.products = slices.Clone(s.seed)
	s.lock.Unlock()

	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

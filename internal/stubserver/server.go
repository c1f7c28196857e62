// Package stubserver is an in-memory stand-in for the customer collection
// endpoint. It validates bodies against the embedded contract and can be told
// to fail on purpose so every submission outcome can be exercised locally.
package stubserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/contract"
	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
)

// CollectionPath is the route of the customer collection.
const CollectionPath = "/customers"

// ContractPath serves the OpenAPI document the server validates against.
const ContractPath = "/openapi.yaml"

// Customer is a stored submission.
type Customer struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	model.FormRecord
}

// Option configures a Server.
type Option func(*Server)

// WithFailStatus makes every POST answer with status instead of storing the
// record. Zero restores normal behaviour.
func WithFailStatus(status int) Option {
	return func(s *Server) {
		s.failStatus = status
	}
}

// WithLogger routes request logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(next func() uuid.UUID) Option {
	return func(s *Server) {
		if next != nil {
			s.newID = next
		}
	}
}

// Server serves the customer collection.
type Server struct {
	contract   *contract.Document
	failStatus int
	logger     *slog.Logger
	now        func() time.Time
	newID      func() uuid.UUID
	router     chi.Router

	mu        sync.RWMutex
	customers []Customer
}

// New builds a Server validating requests against doc.
func New(doc *contract.Document, options ...Option) (*Server, error) {
	if doc == nil {
		return nil, errors.New("stubserver: contract is required")
	}
	s := &Server{
		contract: doc,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	r := chi.NewRouter()
	r.Route(CollectionPath, func(r chi.Router) {
		r.Post("/", s.createCustomer)
		r.Get("/", s.listCustomers)
		r.Get("/{id}", s.getCustomer)
	})
	r.Get(ContractPath, s.serveContract)
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Customers returns a copy of the stored records in submission order.
func (s *Server) Customers() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Customer, len(s.customers))
	for i, c := range s.customers {
		out[i] = c
		out[i].FormRecord = c.FormRecord.Clone()
	}
	return out
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	if s.failStatus != 0 {
		s.logger.Info("forcing failure", "status", s.failStatus)
		writeText(w, s.failStatus, http.StatusText(s.failStatus))
		return
	}

	raw, err := readBody(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	if err := s.contract.ValidateRequestBody(raw); err != nil {
		s.logger.Info("rejected request", "error", err)
		writeText(w, http.StatusBadRequest, describe(err))
		return
	}

	var record model.FormRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		writeText(w, http.StatusBadRequest, "body is not valid JSON")
		return
	}
	record.TextInput = sanitizeText(record.TextInput)
	if record.TextInput == "" {
		writeText(w, http.StatusBadRequest, "textInput: no text left after removing markup")
		return
	}

	customer := Customer{
		ID:         s.newID().String(),
		CreatedAt:  s.now().UTC(),
		FormRecord: record,
	}
	s.mu.Lock()
	s.customers = append(s.customers, customer)
	s.mu.Unlock()

	s.logger.Info("stored customer", "id", customer.ID)
	writeJSON(w, s.logger, http.StatusCreated, customer)
}

func (s *Server) listCustomers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.Customers())
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeText(w, http.StatusBadRequest, "invalid UUID: "+raw)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id.String() {
			writeJSON(w, s.logger, http.StatusOK, c)
			return
		}
	}
	writeText(w, http.StatusNotFound, "customer not found")
}

func (s *Server) serveContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(s.contract.Raw()); err != nil {
		s.logger.Warn("write contract", "error", err)
	}
}

func describe(err error) string {
	var verr *contract.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	parts := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "; ")
}

// Package service maps the five REST operations onto the contact store and
// wraps every result in the uniform response envelope.
package service

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/contactdesk/contacts-api/internal/store"
	"github.com/contactdesk/contacts-api/pkg/model"
)

// Service holds the dependencies shared by all handlers. There is no other
// state; every request is independent.
type Service struct {
	store  *store.Store
	logger zerolog.Logger
}

// New wires the handlers to a contact store and a logger.
func New(st *store.Store, logger zerolog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// ContactInput is the request body for creating or updating a contact.
// Binding rejects a missing or empty name or phone before any storage call.
type ContactInput struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// contact converts the input into a storage record. Id and CreatedAt stay
// zero; the store assigns them.
func (in ContactInput) contact() model.Contact {
	return model.Contact{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	}
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func (s *Service) SetupHttpRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if !strings.EqualFold(os.Getenv("GIN_LOGGING"), "off") {
		router.Use(requestLogger(s.logger))
	}
	router.GET("/health", s.health)
	router.GET("/contacts", s.findAllContacts)
	router.POST("/contacts", s.createContact)
	router.GET("/contacts/:id", s.findContactByID)
	router.PUT("/contacts/:id", s.updateContactByID)
	router.DELETE("/contacts/:id", s.deleteContactByID)
	return router
}

// requestLogger emits one structured log line per handled request.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	}
}

// health reports whether the service can still reach its database.
//
// Example REST API call:
//
//	> curl http://localhost:3000/health
func (s *Service) health(c *gin.Context) {
	if err := s.store.Ping(); err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusInternalServerError, model.Failure(model.CodeDatabase, "Database error"))
		return
	}
	c.JSON(http.StatusOK, model.Success("ok", nil))
}

// findAllContacts responds with all contacts, most recently created first.
// An empty list is a normal success.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts
func (s *Service) findAllContacts(c *gin.Context) {
	contacts, err := s.store.FindAll()
	if err != nil {
		s.respondStoreError(c, "list contacts", nil, err)
		return
	}
	c.JSON(http.StatusOK, model.OK(contacts))
}

// createContact inserts the contact specified in the request's JSON. It
// responds with the full contact data including the newly assigned id and
// creation timestamp.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Erika Mustermann", "phone": "+49 0815 4711", "email": "erika@example.com"}'
func (s *Service) createContact(c *gin.Context) {
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.Failure(model.CodeValidation, "Name and phone are required"))
		return
	}
	created, err := s.store.Insert(input.contact())
	if err != nil {
		s.respondStoreError(c, "create contact", input, err)
		return
	}
	c.JSON(http.StatusCreated, model.Success("Contact created", created))
}

// findContactByID locates the contact whose ID value matches the id
// parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts/56
func (s *Service) findContactByID(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}
	contact, err := s.store.FindByID(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, model.Failure(model.CodeNotFound, notFoundMsg(id)))
		return
	}
	if err != nil {
		s.respondStoreError(c, "find contact", id, err)
		return
	}
	c.JSON(http.StatusOK, model.OK(contact))
}

// updateContactByID overwrites the contact identified by the id parameter
// with the submitted fields and echoes them back. The response is built
// from the input, not from a fresh read of the row.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"name": "Rudi Völler", "phone": "+49 1234567890"}'
func (s *Service) updateContactByID(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}
	var input ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.Failure(model.CodeValidation, "Name and phone are required"))
		return
	}
	contact := input.contact()
	contact.Id = id
	err := s.store.Update(contact)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, model.Failure(model.CodeNotFound, notFoundMsg(id)))
		return
	}
	if err != nil {
		s.respondStoreError(c, "update contact", input, err)
		return
	}
	c.JSON(http.StatusOK, model.Success("Contact updated", contact))
}

// deleteContactByID removes the contact whose ID value matches the id
// parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:3000/contacts/56 --request "DELETE"
func (s *Service) deleteContactByID(c *gin.Context) {
	id, ok := s.parseID(c)
	if !ok {
		return
	}
	err := s.store.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, model.Failure(model.CodeNotFound, notFoundMsg(id)))
		return
	}
	if err != nil {
		s.respondStoreError(c, "delete contact", id, err)
		return
	}
	c.JSON(http.StatusOK, model.Success("Contact deleted", nil))
}

// parseID extracts the numeric id from the request URL. A missing or
// non-numeric id is a validation failure, answered before any storage call.
func (s *Service) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Failure(model.CodeValidation, "Invalid contact ID"))
		return 0, false
	}
	return id, true
}

// notFoundMsg embeds the requested identifier in the not-found message.
func notFoundMsg(id int64) string {
	return fmt.Sprintf("Contact not found (ID: %d)", id)
}

// respondStoreError is the single translation rule for storage failures: a
// uniqueness violation becomes a validation failure, anything else a
// generic database failure. Full detail is logged before responding; the
// client only ever sees the envelope.
func (s *Service) respondStoreError(c *gin.Context, operation string, input any, err error) {
	if store.IsUniqueViolation(err) {
		s.logger.Warn().
			Err(err).
			Str("operation", operation).
			Interface("input", input).
			Msg("uniqueness constraint violated")
		c.JSON(http.StatusBadRequest, model.Failure(model.CodeValidation, "Email already exists"))
		return
	}
	s.logger.Error().
		Err(err).
		Str("operation", operation).
		Interface("input", input).
		Msg("database operation failed")
	c.JSON(http.StatusInternalServerError, model.Failure(model.CodeDatabase, "Database error"))
}

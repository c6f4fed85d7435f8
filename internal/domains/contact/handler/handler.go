package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"contact-manager/internal/domains/contact/model"
	"contact-manager/internal/domains/contact/service"
	"contact-manager/internal/shared/response"
)

// Response messages
const (
	MsgCreateFailed    = "Error creating contact"
	MsgFetchFailed     = "Error fetching contacts"
	MsgDeleteFailed    = "Error deleting contact"
	MsgContactNotFound = "Contact not found"
	MsgContactDeleted  = "Contact deleted successfully"
)

type ContactHandler struct {
	service service.ServiceInterface
}

func NewContactHandler(service service.ServiceInterface) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// CreateContact handles POST /contacts
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MsgInvalidRequestBody)
		return
	}

	contact, err := h.service.CreateContact(c.Request.Context(), &req)
	if err != nil {
		var ve *model.ValidationError
		switch {
		case errors.As(err, &ve):
			response.ErrorWithDetails(c, http.StatusBadRequest, ve.Error(), toFieldErrors(ve.Fields))
		case errors.Is(err, model.ErrStoreFailure):
			h.logStoreFailure(c, err, "create")
			response.InternalServerError(c, MsgCreateFailed)
		default:
			_ = c.Error(err)
		}
		return
	}

	response.Success(c, http.StatusCreated, contact)
}

// ListContacts handles GET /contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.service.ListContacts(c.Request.Context())
	if err != nil {
		if errors.Is(err, model.ErrStoreFailure) {
			h.logStoreFailure(c, err, "list")
			response.InternalServerError(c, MsgFetchFailed)
			return
		}
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, contacts)
}

// DeleteContact handles DELETE /contacts/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id := c.Param("id")

	result, err := h.service.DeleteContact(c.Request.Context(), id)
	if err != nil {
		h.logStoreFailure(c, err, "delete")
		response.InternalServerError(c, MsgDeleteFailed)
		return
	}

	switch result {
	case model.DeleteResultDeleted:
		response.Message(c, http.StatusOK, MsgContactDeleted)
	case model.DeleteResultNotFound, model.DeleteResultInvalidID:
		log.Debug().
			Str("contact_id", id).
			Str("result", result.String()).
			Msg("Delete target not found")
		response.NotFound(c, MsgContactNotFound)
	default:
		response.InternalServerError(c, MsgDeleteFailed)
	}
}

func toFieldErrors(fields []model.FieldError) []response.FieldError {
	out := make([]response.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, response.FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}

func (h *ContactHandler) logStoreFailure(c *gin.Context, err error, op string) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("operation", op).
		Msg("Contact store failure")
}

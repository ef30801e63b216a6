package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/constants"
	"github.com/osa911/portfolio-api/internal/api/dto/common"
	"github.com/osa911/portfolio-api/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-api/internal/api/mapper"
	"github.com/osa911/portfolio-api/internal/service"
	"github.com/osa911/portfolio-api/internal/utils"
)

type ContactHandler struct {
	submissions  *service.SubmissionService
	auditService *service.AuditService
}

func NewContactHandler(submissions *service.SubmissionService, auditService *service.AuditService) *ContactHandler {
	return &ContactHandler{
		submissions:  submissions,
		auditService: auditService,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	req, ok := fromContext[contact.ContactRequest](c, constants.ContextKeyContactRequest)
	if !ok {
		return
	}

	result, err := h.submissions.SubmitContact(c.Request.Context(), mapper.ContactInputFromRequest(req))
	if err != nil {
		handleSubmissionError(c, h.auditService, err)
		return
	}

	h.auditService.LogEvent(c.Request.Context(), service.AuditEventContactCreated, result.Data.ID, utils.GetRealIP(c), map[string]interface{}{
		"sheets":    result.SheetsIntegration,
		"userAgent": c.Request.UserAgent(),
	})

	// The submission result already is the response envelope
	c.JSON(http.StatusOK, result)
}

func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.submissions.ListContacts(c.Request.Context())
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to list contacts")
		return
	}

	h.auditService.LogEvent(c.Request.Context(), service.AuditEventRecordsListed, "", utils.GetRealIP(c), map[string]interface{}{
		"kind":  "contact",
		"count": len(contacts),
	})
	utils.HandleSuccess(c, contacts)
}

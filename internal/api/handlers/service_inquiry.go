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

type ServiceInquiryHandler struct {
	submissions  *service.SubmissionService
	auditService *service.AuditService
}

func NewServiceInquiryHandler(submissions *service.SubmissionService, auditService *service.AuditService) *ServiceInquiryHandler {
	return &ServiceInquiryHandler{
		submissions:  submissions,
		auditService: auditService,
	}
}

func (h *ServiceInquiryHandler) Submit(c *gin.Context) {
	req, ok := fromContext[contact.ServiceInquiryRequest](c, constants.ContextKeyServiceInquiryRequest)
	if !ok {
		return
	}

	result, err := h.submissions.SubmitServiceInquiry(c.Request.Context(), mapper.ServiceInquiryInputFromRequest(req))
	if err != nil {
		handleSubmissionError(c, h.auditService, err)
		return
	}

	h.auditService.LogEvent(c.Request.Context(), service.AuditEventInquiryCreated, result.Data.ID, utils.GetRealIP(c), map[string]interface{}{
		"service": result.Data.Service,
		"sheets":  result.SheetsIntegration,
	})
	c.JSON(http.StatusOK, result)
}

func (h *ServiceInquiryHandler) List(c *gin.Context) {
	inquiries, err := h.submissions.ListServiceInquiries(c.Request.Context())
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to list service inquiries")
		return
	}

	h.auditService.LogEvent(c.Request.Context(), service.AuditEventRecordsListed, "", utils.GetRealIP(c), map[string]interface{}{
		"kind":  "service_inquiry",
		"count": len(inquiries),
	})
	utils.HandleSuccess(c, inquiries)
}

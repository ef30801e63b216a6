package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/osa911/portfolio-api/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-api/internal/sheets"
	"github.com/osa911/portfolio-api/internal/utils"
)

// SheetsSetupHandler serves the Apps Script used by web-hook mode.
type SheetsSetupHandler struct{}

func NewSheetsSetupHandler() *SheetsSetupHandler {
	return &SheetsSetupHandler{}
}

func (h *SheetsSetupHandler) Get(c *gin.Context) {
	utils.HandleSuccess(c, contact.SheetsSetupResponse{
		ScriptCode:   sheets.AppsScriptCode(),
		Instructions: sheets.SetupInstructions(),
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azizbekh/staffdesk/internal/model"
	"github.com/azizbekh/staffdesk/internal/repository"
)

type SettingsHandler struct {
	Store repository.Store
}

func NewSettingsHandler(store repository.Store) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.Store.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var settings model.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.Store.PutSettings(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

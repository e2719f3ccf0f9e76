package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/asthmaai/asthmaai-backend/internal/services"
)

type EducationHandler struct {
  educationService  services.EducationService
}

func NewEducationHandler(educationService services.EducationService) *EducationHandler {
  return &EducationHandler{educationService: educationService}
}

func (eh *EducationHandler) GetContent(c *gin.Context) {
  c.JSON(http.StatusOK, eh.educationService.GetContent())
}

func Health(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

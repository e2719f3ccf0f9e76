package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/asthmaai/asthmaai-backend/internal/errordata"
  "github.com/asthmaai/asthmaai-backend/internal/repos"
  "github.com/asthmaai/asthmaai-backend/internal/services"
)

type SymptomHandler struct {
  symptomService  services.SymptomService
}

func NewSymptomHandler(symptomService services.SymptomService) *SymptomHandler {
  return &SymptomHandler{symptomService: symptomService}
}

type symptomRequest struct {
  Severity        *int      `json:"severity" binding:"required,min=1,max=5"`
  Description     *string   `json:"description" binding:"required"`
  Triggers        *string   `json:"triggers"`
  MedicationUsed  *string   `json:"medication_used"`
}

func (sh *SymptomHandler) LogSymptom(c *gin.Context) {
  var req symptomRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid symptom data"})
    return
  }
  ctx := c.Request.Context()
  symptom, err := sh.symptomService.LogSymptom(ctx, repos.SymptomInput{
    Severity:       *req.Severity,
    Description:    *req.Description,
    Triggers:       req.Triggers,
    MedicationUsed: req.MedicationUsed,
  })
  if err != nil {
    if isInvalidInput(err) {
      c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid symptom data"})
      return
    }
    errordata.Record(ctx, "Failed to log symptom", err)
    c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to log symptom"})
    return
  }
  c.JSON(http.StatusCreated, symptom)
}

func (sh *SymptomHandler) GetSymptoms(c *gin.Context) {
  ctx := c.Request.Context()
  symptoms, err := sh.symptomService.GetSymptoms(ctx)
  if err != nil {
    errordata.Record(ctx, "Failed to fetch symptoms", err)
    c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch symptoms"})
    return
  }
  c.JSON(http.StatusOK, symptoms)
}

func isInvalidInput(err error) bool {
  return errors.Is(err, services.ErrInvalidInput)
}

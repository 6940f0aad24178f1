package controllers

import (
	"errors"
	"log"
	"net/http"

	"lubripro-backend/config"
	"lubripro-backend/models"
	"lubripro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateLeadInput struct {
	ClientID     *uuid.UUID `json:"clientId"`
	Category     string     `json:"category"`
	Summary      string     `json:"summary"`
	Urgency      string     `json:"urgency"`
	ContactName  string     `json:"contactName"`
	ContactPhone string     `json:"contactPhone"`
}

type LeadIntakeInput struct {
	RawText      string `json:"rawText" binding:"required"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
}

type UpdateLeadInput struct {
	Category *string `json:"category"`
	Status   *string `json:"status"`
	Summary  *string `json:"summary"`
	Urgency  *string `json:"urgency"`
}

type LeadLogInput struct {
	Entry string `json:"entry" binding:"required"`
}

var validLeadStatuses = map[string]bool{
	models.LeadNew:       true,
	models.LeadContacted: true,
	models.LeadScheduled: true,
	models.LeadClosed:    true,
}

var validLeadCategories = map[string]bool{
	models.LeadCategoryOilService: true,
	models.LeadCategoryBattery:    true,
	models.LeadCategoryTyres:      true,
	models.LeadCategoryOther:      true,
}

// CreateLead opens a pipeline case manually
func CreateLead(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := input.Category
	if category == "" {
		category = models.LeadCategoryOther
	}
	if !validLeadCategories[category] {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown lead category")
		return
	}

	lead := models.LeadCase{
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		ClientID:        input.ClientID,
		Category:        category,
		Status:          models.LeadNew,
		Summary:         input.Summary,
		Urgency:         input.Urgency,
		ContactName:     input.ContactName,
		ContactPhone:    input.ContactPhone,
	}

	if err := config.DB.Create(&lead).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create lead case")
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// IntakeLead opens a pipeline case from raw free-text (WhatsApp paste,
// phone-call note). The AI extractor's guesses are advisory; intake never
// fails because extraction did.
func IntakeLead(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input LeadIntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	lead := models.LeadCase{
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		Category:        models.LeadCategoryOther,
		Status:          models.LeadNew,
		Summary:         input.RawText,
		RawText:         input.RawText,
		ContactName:     input.ContactName,
		ContactPhone:    input.ContactPhone,
	}

	if guess, err := Extractor.Extract(input.RawText); err != nil {
		log.Printf("Lead intake extraction failed (continuing): %v", err)
	} else {
		if guess.Summary != "" {
			lead.Summary = guess.Summary
		}
		lead.GuessedModel = guess.VehicleModel
		lead.GuessedPlate = guess.Plate
		lead.Urgency = guess.Urgency
	}

	if err := config.DB.Create(&lead).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create lead case")
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// GetLeads lists pipeline cases, optionally filtered by status or category
func GetLeads(c *gin.Context) {
	query := config.DB.Preload("Logs")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var leads []models.LeadCase
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve lead cases")
		return
	}

	c.JSON(http.StatusOK, leads)
}

// UpdateLead updates a pipeline case
func UpdateLead(c *gin.Context) {
	leadUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	var input UpdateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var lead models.LeadCase
	if err := config.DB.First(&lead, "id = ?", leadUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Lead case not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Category != nil {
		if !validLeadCategories[*input.Category] {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown lead category")
			return
		}
		lead.Category = *input.Category
	}
	if input.Status != nil {
		if !validLeadStatuses[*input.Status] {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown lead status")
			return
		}
		lead.Status = *input.Status
	}
	if input.Summary != nil {
		lead.Summary = *input.Summary
	}
	if input.Urgency != nil {
		lead.Urgency = *input.Urgency
	}

	if err := config.DB.Save(&lead).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update lead case")
		return
	}

	c.JSON(http.StatusOK, lead)
}

// AddLeadLog appends an activity entry to a case
func AddLeadLog(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	leadUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	var input LeadLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var lead models.LeadCase
	if err := config.DB.First(&lead, "id = ?", leadUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Lead case not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	entry := models.LeadLog{
		LeadCaseID: lead.ID,
		UserID:     uuid.Must(uuid.Parse(userID.(string))),
		Entry:      input.Entry,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add log entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

package controllers

import (
	"lubripro-backend/scheduling"
	"lubripro-backend/services"
)

// Shared collaborators, wired in main after the database connects.
var (
	WhatsApp  *services.WhatsAppService
	Leads     *services.LeadService
	Extractor services.TextExtractor = services.NoopExtractor{}

	SchedulingConfig = scheduling.DefaultConfig()
)

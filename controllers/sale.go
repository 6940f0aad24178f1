package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"lubripro-backend/config"
	"lubripro-backend/models"
	"lubripro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleItemInput struct {
	ProductID   *uuid.UUID `json:"productId"`
	ServiceID   *uuid.UUID `json:"serviceId"`
	Description string     `json:"description"`
	Quantity    int        `json:"quantity"`
	UnitPrice   *float64   `json:"unitPrice"`
}

type CreateSaleInput struct {
	ClientID      *uuid.UUID      `json:"clientId"`
	WorkOrderID   *uuid.UUID      `json:"workOrderId"`
	Items         []SaleItemInput `json:"items" binding:"required,min=1"`
	Discount      float64         `json:"discount"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// CreateDraftSale builds a priced draft; nothing is charged or deducted
// until confirmation.
func CreateDraftSale(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var subtotal float64
	var items []models.SaleItem

	for _, in := range input.Items {
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}

		item := models.SaleItem{
			ProductID:   in.ProductID,
			ServiceID:   in.ServiceID,
			Description: in.Description,
			Quantity:    qty,
		}

		switch {
		case in.ProductID != nil:
			var product models.Product
			if err := config.DB.First(&product, "id = ?", *in.ProductID).Error; err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Product not found: "+in.ProductID.String())
				return
			}
			item.UnitPrice = product.Price
			if item.Description == "" {
				item.Description = product.Name
			}
		case in.ServiceID != nil:
			var service models.Service
			if err := config.DB.First(&service, "id = ?", *in.ServiceID).Error; err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+in.ServiceID.String())
				return
			}
			item.UnitPrice = service.Price
			if item.Description == "" {
				item.Description = service.Name
			}
		default:
			if in.UnitPrice == nil || in.Description == "" {
				utils.RespondWithError(c, http.StatusBadRequest, "Free-form items need a description and unit price")
				return
			}
			item.UnitPrice = *in.UnitPrice
		}

		item.TotalPrice = item.UnitPrice * float64(qty)
		subtotal += item.TotalPrice
		items = append(items, item)
	}

	sale := models.Sale{
		CreatedByUserID: uuid.Must(uuid.Parse(userID.(string))),
		ClientID:        input.ClientID,
		WorkOrderID:     input.WorkOrderID,
		SaleDate:        time.Now(),
		Subtotal:        subtotal,
		Discount:        input.Discount,
		Total:           subtotal - input.Discount,
		Status:          models.SaleDraft,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		Items:           items,
	}

	if err := config.DB.Create(&sale).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create sale")
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// ConfirmSale finalizes a draft. The DRAFT -> CONFIRMING transition is an
// atomic conditional update, so only one of two concurrent confirms can win;
// the loser observes zero rows affected and either replays the completed
// result or reports the in-flight conflict. The finalization itself (stock
// deduction, work-order close, completion) is one all-or-nothing
// transaction; if it dies the sale stays CONFIRMING for manual
// reconciliation rather than risking a double charge.
func ConfirmSale(c *gin.Context) {
	saleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	claimed := config.DB.Model(&models.Sale{}).
		Where("id = ? AND status = ?", saleUUID, models.SaleDraft).
		Update("status", models.SaleConfirming)
	if claimed.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if claimed.RowsAffected == 0 {
		// Someone else already moved this sale past DRAFT.
		var sale models.Sale
		if err := config.DB.Preload("Items").First(&sale, "id = ?", saleUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Sale not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		if sale.Status == models.SaleCompleted {
			// Idempotent replay of a double submission.
			c.JSON(http.StatusOK, sale)
			return
		}
		utils.RespondWithError(c, http.StatusConflict, "Sale is not a confirmable draft")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var sale models.Sale
	if err := tx.Preload("Items").First(&sale, "id = ?", saleUUID).Error; err != nil {
		tx.Rollback()
		log.Printf("Sale %s stuck in CONFIRMING: reload failed: %v", saleUUID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm sale")
		return
	}

	// Deduct stock for every product line; going negative aborts the whole
	// confirmation.
	for _, item := range sale.Items {
		if item.ProductID == nil {
			continue
		}
		result := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", *item.ProductID, item.Quantity).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
		if result.Error != nil {
			tx.Rollback()
			log.Printf("Sale %s stuck in CONFIRMING: stock update failed: %v", saleUUID, result.Error)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm sale")
			return
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			// Insufficient stock is a user-fixable state; release the claim.
			if err := config.DB.Model(&models.Sale{}).
				Where("id = ? AND status = ?", saleUUID, models.SaleConfirming).
				Update("status", models.SaleDraft).Error; err != nil {
				log.Printf("Failed to release sale %s back to draft: %v", saleUUID, err)
			}
			utils.RespondWithError(c, http.StatusConflict, "Insufficient stock for "+item.Description)
			return
		}
	}

	// Close the linked work order, if any.
	if sale.WorkOrderID != nil {
		if err := tx.Model(&models.WorkOrder{}).
			Where("id = ? AND status <> ?", *sale.WorkOrderID, models.WorkOrderCancelled).
			Update("status", models.WorkOrderDelivered).Error; err != nil {
			tx.Rollback()
			log.Printf("Sale %s stuck in CONFIRMING: work order close failed: %v", saleUUID, err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm sale")
			return
		}
	}

	if err := tx.Model(&models.Sale{}).Where("id = ?", saleUUID).
		Update("status", models.SaleCompleted).Error; err != nil {
		tx.Rollback()
		log.Printf("Sale %s stuck in CONFIRMING: completion failed: %v", saleUUID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm sale")
		return
	}

	// Client stats are part of the same transaction so totals never drift.
	if sale.ClientID != nil {
		now := time.Now()
		if err := tx.Model(&models.Client{}).Where("id = ?", *sale.ClientID).
			Updates(map[string]interface{}{
				"total_spent": gorm.Expr("total_spent + ?", sale.Total),
				"last_visit":  &now,
			}).Error; err != nil {
			tx.Rollback()
			log.Printf("Sale %s stuck in CONFIRMING: client stats failed: %v", saleUUID, err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm sale")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Sale %s stuck in CONFIRMING: commit failed: %v", saleUUID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm sale")
		return
	}

	// Closing the work order is a mileage-bearing service event, so the
	// vehicle projection recomputes here too. Best effort, logged only.
	if sale.WorkOrderID != nil {
		var order models.WorkOrder
		if err := config.DB.First(&order, "id = ?", *sale.WorkOrderID).Error; err != nil {
			log.Printf("Projection skipped, work order %s lookup failed: %v", *sale.WorkOrderID, err)
		} else if order.Mileage > 0 {
			updateVehicleProjection(order)
		}
	}

	sale.Status = models.SaleCompleted
	c.JSON(http.StatusOK, sale)
}

// GetSales lists sales, optionally filtered by status
func GetSales(c *gin.Context) {
	query := config.DB.Preload("Items")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var sales []models.Sale
	if err := query.Order("sale_date DESC").Find(&sales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sales")
		return
	}

	c.JSON(http.StatusOK, sales)
}

// GetSale retrieves a specific sale
func GetSale(c *gin.Context) {
	saleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	var sale models.Sale
	if err := config.DB.Preload("Items").First(&sale, "id = ?", saleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, sale)
}

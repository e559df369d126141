package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"twinclash-api/models"
	"twinclash-api/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportTimeout = 30 * time.Second

// ExportDuels streams an xlsx dump of all duel rooms
func (h *Handler) ExportDuels(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), exportTimeout)
	defer cancel()

	var rooms []models.DuelRoom
	if err := h.db.WithContext(ctx).Order("created_at DESC").Find(&rooms).Error; err != nil {
		log.Printf("[admin] duel export query failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load duel rooms")
		return
	}

	xlsx := excelize.NewFile()
	sheet := xlsx.GetSheetName(0)

	headers := []string{
		"Room Code", "Status", "World", "Level", "Host", "Guest", "Winner",
		"Host Time (ms)", "Host Moves", "Guest Time (ms)", "Guest Moves",
		"Created At", "Expires At",
	}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(sheet, cell, title)
	}

	for i, room := range rooms {
		row := i + 2
		values := []interface{}{
			room.RoomCode, room.Status, room.WorldID, room.LevelNumber,
			room.HostClientID, derefString(room.GuestClientID), derefString(room.WinnerClientID),
			cellOrBlank(room.HostTimeMs), cellOrBlankInt(room.HostMoves),
			cellOrBlank(room.GuestTimeMs), cellOrBlankInt(room.GuestMoves),
			room.CreatedAt.Format(time.RFC3339), room.ExpiresAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			xlsx.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(c, xlsx, fmt.Sprintf("duels-%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportTransactions streams an xlsx dump of all coin purchases
func (h *Handler) ExportTransactions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), exportTimeout)
	defer cancel()

	var txs []models.Transaction
	if err := h.db.WithContext(ctx).Order("created_at DESC").Find(&txs).Error; err != nil {
		log.Printf("[admin] transaction export query failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	xlsx := excelize.NewFile()
	sheet := xlsx.GetSheetName(0)

	headers := []string{
		"Session ID", "Client", "Package", "Coins", "Amount (cents)",
		"Status", "Stripe Status", "Created At",
	}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(sheet, cell, title)
	}

	for i, tx := range txs {
		row := i + 2
		values := []interface{}{
			tx.SessionID, tx.ClientID, tx.PackageID, tx.Coins, tx.AmountCents,
			tx.Status, tx.StripePaymentStatus, tx.CreatedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			xlsx.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(c, xlsx, fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("2006-01-02")))
}

func writeWorkbook(c *gin.Context, xlsx *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := xlsx.Write(c.Writer); err != nil {
		log.Printf("[admin] workbook write failed: %v", err)
	}
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func cellOrBlank(p *int64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

func cellOrBlankInt(p *int) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"unisched/models"
	"unisched/services/timetable"
	"unisched/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TimetableHandler struct {
	TimetableService timetable.TimetableService
}

func (h *TimetableHandler) CreateTimetableHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.TimetableInput
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.TimetableService.Create(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListTimetableHandler handles GET /api/timetable?course=<id>.
func (h *TimetableHandler) ListTimetableHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.TimetableService.List(c.Request.Context(), id, c.Query("course"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ExportTimetableHandler streams the timetable as an XLSX attachment.
func (h *TimetableHandler) ExportTimetableHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.TimetableService.Export(c.Request.Context(), id, c.Query("course"), &buf); err != nil {
		utils.RespondError(c, err)
		return
	}
	name := fmt.Sprintf("timetable-%s.xlsx", time.Now().UTC().Format("20060102"))
	getLogger(c).Info("Timetable exported", zap.String("userId", id.UserID), zap.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *TimetableHandler) UpdateTimetableHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.TimetableUpdate
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.TimetableService.Update(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *TimetableHandler) DeleteTimetableHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.TimetableService.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Timetable removed"})
}

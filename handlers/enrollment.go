package handlers

import (
	"net/http"

	"unisched/models"
	"unisched/services/enrollment"
	"unisched/utils"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	EnrollmentService enrollment.EnrollmentService
}

func (h *EnrollmentHandler) EnrollHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.EnrollmentInput
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.EnrollmentService.Enroll(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *EnrollmentHandler) MyEnrollmentsHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.EnrollmentService.Mine(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EnrollmentHandler) ListEnrollmentsHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.EnrollmentService.List(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EnrollmentHandler) UpdateEnrollmentHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.EnrollmentUpdate
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.EnrollmentService.Update(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EnrollmentHandler) DeleteEnrollmentHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.EnrollmentService.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Enrollment deleted"})
}

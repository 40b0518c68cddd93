package handlers

import (
	"net/http"

	"unisched/models"
	"unisched/services/course"
	"unisched/utils"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	CourseService course.CourseService
}

func (h *CourseHandler) CreateCourseHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.CourseInput
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.CourseService.Create(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CourseHandler) ListCoursesHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.CourseService.List(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CourseHandler) UpdateCourseHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req models.CourseUpdate
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.CourseService.Update(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CourseHandler) DeleteCourseHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.CourseService.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Course deleted"})
}

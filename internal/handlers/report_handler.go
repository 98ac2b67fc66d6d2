package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/fitlife-app/membership-service/internal/models"
	"github.com/fitlife-app/membership-service/internal/services"
	"github.com/fitlife-app/membership-service/internal/utils"
)

// ReportHandler produces downloadable membership reports.
type ReportHandler struct {
	BaseHandler
	userService    services.UserService
	trainerService services.TrainerService
}

func NewReportHandler(userService services.UserService, trainerService services.TrainerService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:    NewBaseHandler(logger),
		userService:    userService,
		trainerService: trainerService,
	}
}

// ExportRoster exports users and trainer applications as an xlsx workbook
// @Summary Export membership roster
// @Description Download an xlsx workbook with a Users sheet and an Applications sheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Workbook"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /users/export [get]
func (h *ReportHandler) ExportRoster(c *gin.Context) {
	h.LogRequest(c, "Exporting membership roster")

	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to load users for export")
		h.handleServiceError(c, err)
		return
	}

	apps, err := h.trainerService.List(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to load applications for export")
		h.handleServiceError(c, err)
		return
	}

	file, err := h.buildWorkbook(users, apps)
	if err != nil {
		h.LogError(c, err, "Failed to build workbook")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to build export",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("membership-roster-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream workbook")
	}
}

func (h *ReportHandler) buildWorkbook(users []*models.User, apps []*models.TrainerApplication) (*excelize.File, error) {
	file := excelize.NewFile()

	const usersSheet = "Users"
	if err := file.SetSheetName("Sheet1", usersSheet); err != nil {
		return nil, err
	}

	userHeaders := []interface{}{"ID", "Name", "Email", "Role", "Status", "Created At"}
	if err := file.SetSheetRow(usersSheet, "A1", &userHeaders); err != nil {
		return nil, err
	}
	for i, u := range users {
		status := ""
		if u.Status != nil {
			status = string(*u.Status)
		}
		row := []interface{}{u.ID, u.Name, u.Email, string(u.Role), status, u.CreatedAt.Format(time.RFC3339)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(usersSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const appsSheet = "Applications"
	if _, err := file.NewSheet(appsSheet); err != nil {
		return nil, err
	}

	appHeaders := []interface{}{"ID", "Name", "Email", "Role", "Status", "Feedback", "Submitted At"}
	if err := file.SetSheetRow(appsSheet, "A1", &appHeaders); err != nil {
		return nil, err
	}
	for i, a := range apps {
		feedback := ""
		if a.Feedback != nil {
			feedback = *a.Feedback
		}
		row := []interface{}{a.ID, a.Name, a.Email, string(a.Role), string(a.Status), feedback, a.CreatedAt.Format(time.RFC3339)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(appsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return file, nil
}

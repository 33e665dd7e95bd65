package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/contest-api/internal/domain/entity"
	apperrors "github.com/yourusername/contest-api/internal/pkg/errors"
	"github.com/yourusername/contest-api/internal/service"
)

// SubmissionHandler обрабатывает запросы, связанные с конкурсными работами
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler создает новый обработчик конкурсных работ
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// SubmitRequest представляет запрос на подачу работы
type SubmitRequest struct {
	ContestID   string `json:"contestId" binding:"required"`
	TaskURL     string `json:"taskURL" binding:"required,max=500"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// Submit подает работу в конкурс
// POST /submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.submissionService.Submit(c.MustGet("email").(string), service.SubmitInput{
		ContestID:   req.ContestID,
		TaskURL:     req.TaskURL,
		Description: req.Description,
	})
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListByContest возвращает работы конкурса
// GET /submissions?contestId=
func (h *SubmissionHandler) ListByContest(c *gin.Context) {
	contestID := c.Query("contestId")
	if contestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contestId query parameter is required"})
		return
	}

	submissions, err := h.submissionService.ListByContest(contestID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// UserSubmissionStatus проверяет, подал ли пользователь работу в конкурс
// GET /submissions/user-submission-status?userId=&contestId=
func (h *SubmissionHandler) UserSubmissionStatus(c *gin.Context) {
	userID := c.Query("userId")
	contestID := c.Query("contestId")
	if userID == "" || contestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and contestId query parameters are required"})
		return
	}

	submitted, err := h.submissionService.HasSubmitted(userID, contestID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submitted": submitted})
}

// DeclareWinner объявляет работу победителем конкурса
// PATCH /submissions/:id
func (h *SubmissionHandler) DeclareWinner(c *gin.Context) {
	submissionID := c.MustGet("submissionID").(string)

	declaration, err := h.submissionService.DeclareWinner(
		c.Request.Context(),
		submissionID,
		c.MustGet("email").(string),
		c.MustGet("role").(string),
	)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	c.JSON(http.StatusOK, declaration)
}

// Export выгружает работы конкурса в XLSX
// GET /submissions/export?contestId=
func (h *SubmissionHandler) Export(c *gin.Context) {
	contestID := c.Query("contestId")
	if contestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contestId query parameter is required"})
		return
	}

	submissions, err := h.submissionService.ListByContest(contestID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	h.exportXLSX(c, submissions, fmt.Sprintf("submissions_%s", contestID))
}

// exportXLSX пишет работы в Excel через StreamWriter
func (h *SubmissionHandler) exportXLSX(c *gin.Context, submissions []entity.Submission, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Работы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[SubmissionHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Участник", "Email", "Ссылка на работу", "Описание", "Победитель", "Подано"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[SubmissionHandler] Ошибка записи заголовков: %v", err)
	}

	for i, s := range submissions {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		winner := "Нет"
		if s.IsDeclaredWinner() {
			winner = "Да"
		}

		row := []interface{}{
			sanitizeForExcel(s.UserName),
			sanitizeForExcel(s.UserEmail),
			sanitizeForExcel(s.TaskURL),
			sanitizeForExcel(s.Description),
			winner,
			s.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[SubmissionHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[SubmissionHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[SubmissionHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleSubmissionError обрабатывает ошибки от сервиса работ и отправляет соответствующий HTTP ответ
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in SubmissionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"student-link/internal/app"
	"student-link/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Dashboard(c *gin.Context) {
	dash, err := h.svc.Quiz.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *Handler) Instructions(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	view, err := h.svc.Quiz.Instructions(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) StartQuiz(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	paper, err := h.svc.Quiz.Start(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, paper)
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	answers, err := readAnswers(c)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.svc.Quiz.Submit(c.Request.Context(), principal(c), id, answers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// readAnswers accepts {"answers":{"<id>":"A"}} or form fields q<id>=A.
// Keys that are not question ids are dropped.
func readAnswers(c *gin.Context) (map[int64]string, error) {
	answers := make(map[int64]string)
	if c.ContentType() == gin.MIMEJSON {
		var body struct {
			Answers map[string]string `json:"answers"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, bindError(err)
		}
		for key, label := range body.Answers {
			if id, err := strconv.ParseInt(key, 10, 64); err == nil {
				answers[id] = label
			}
		}
		return answers, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, bindError(err)
	}
	for key, values := range c.Request.PostForm {
		if !strings.HasPrefix(key, "q") || len(values) == 0 {
			continue
		}
		if id, err := strconv.ParseInt(strings.TrimPrefix(key, "q"), 10, 64); err == nil {
			answers[id] = values[0]
		}
	}
	return answers, nil
}

func (h *Handler) Leaderboard(c *gin.Context) {
	entries, err := h.svc.Quiz.Leaderboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (h *Handler) AdminQuizzes(c *gin.Context) {
	overview, err := h.svc.Quiz.AdminOverview(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

type createSessionRequest struct {
	Title     string `json:"title" form:"title" binding:"required"`
	StartTime string `json:"start_time" form:"start_time" binding:"required"`
	EndTime   string `json:"end_time" form:"end_time" binding:"required"`
	Duration  int    `json:"duration" form:"duration" binding:"required"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	start, err := parseLocalTime(req.StartTime, h.loc)
	if err != nil {
		writeError(c, domain.Invalid("start_time: %v", err))
		return
	}
	end, err := parseLocalTime(req.EndTime, h.loc)
	if err != nil {
		writeError(c, domain.Invalid("end_time: %v", err))
		return
	}
	session, err := h.svc.Quiz.CreateSession(c.Request.Context(), principal(c), app.NewSession{
		Title:           req.Title,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: req.Duration,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) ListQuestions(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	session, questions, err := h.svc.Quiz.ListQuestions(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "questions": questions})
}

// ImportQuestions takes the question list as a JSON body or as the json_data form field.
func (h *Handler) ImportQuestions(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var payload []byte
	if c.ContentType() == gin.MIMEJSON {
		payload, err = io.ReadAll(c.Request.Body)
		if err != nil {
			writeError(c, bindError(err))
			return
		}
	} else {
		payload = []byte(c.PostForm("json_data"))
	}
	if !json.Valid(payload) {
		writeError(c, &domain.ImportError{Issues: []domain.ImportIssue{{Index: -1, Reason: "payload is not valid JSON"}}})
		return
	}
	stored, err := h.svc.Quiz.ImportQuestions(c.Request.Context(), principal(c), id, payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": len(stored), "questions": stored})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Quiz.DeleteSession(c.Request.Context(), principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

var localLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseLocalTime reads admin-entered times; values without an offset are in loc.
func parseLocalTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

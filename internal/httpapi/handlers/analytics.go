package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/dozr/sleeptrack/internal/common"
	"github.com/dozr/sleeptrack/internal/entry"
	"github.com/dozr/sleeptrack/internal/httpapi/middleware"
)

type notesReq struct {
	EntryID string `json:"entryId"`
}

// AnalyticsNotes returns the model's assessment of one entry. The entry id is
// taken as sent; ownership is not checked here.
func (h *Handler) AnalyticsNotes(c *gin.Context) {
	var req notesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, "invalid json")
		return
	}

	text, err := h.Analytics.AnalyzeEntry(c.Request.Context(), req.EntryID)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			common.Fail(c, err.Error())
			return
		}
		log.Printf("[AnalyticsNotes] entry=%s err=%v", req.EntryID, err)
		common.Fail(c, "internal error")
		return
	}

	common.OK(c, gin.H{"data": text})
}

func (h *Handler) AnalyticsForAll(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		common.Fail(c, "Invalid session")
		return
	}

	text, err := h.Analytics.AnalyzeAllForUser(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[AnalyticsForAll] user=%s err=%v", uid, err)
		common.Fail(c, "internal error")
		return
	}

	common.OK(c, gin.H{"data": text})
}

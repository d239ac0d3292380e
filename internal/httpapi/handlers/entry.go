package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/dozr/sleeptrack/internal/common"
	"github.com/dozr/sleeptrack/internal/entry"
	"github.com/dozr/sleeptrack/internal/httpapi/middleware"
)

type addEntryReq struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Rate  int    `json:"rate"`
	Notes string `json:"notes"`
}

type deleteEntryReq struct {
	EntryID string `json:"entryId"`
}

func (h *Handler) GetEntries(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		common.Fail(c, "Invalid session")
		return
	}

	entries, err := h.Entries.GetAllForUser(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[GetEntries] user=%s err=%v", uid, err)
		common.Fail(c, "internal error")
		return
	}

	common.OK(c, gin.H{"entries": entries})
}

func (h *Handler) AddEntry(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		common.Fail(c, "Invalid session")
		return
	}

	var req addEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, "invalid json")
		return
	}

	e, err := h.Entries.Save(c.Request.Context(), &entry.Entry{
		UserID: uid,
		Start:  req.Start,
		End:    req.End,
		Rate:   req.Rate,
		Notes:  req.Notes,
	})
	if err != nil {
		log.Printf("[AddEntry] user=%s err=%v", uid, err)
		common.Fail(c, "internal error")
		return
	}

	common.OK(c, gin.H{"entryId": e.ID})
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		common.Fail(c, "Invalid session")
		return
	}

	var req deleteEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, "invalid json")
		return
	}

	e, err := h.Entries.Get(c.Request.Context(), req.EntryID)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			common.Fail(c, err.Error())
			return
		}
		log.Printf("[DeleteEntry] user=%s entry=%s err=%v", uid, req.EntryID, err)
		common.Fail(c, "internal error")
		return
	}

	// ownership is value equality on the owning user id
	if e.UserID != uid {
		common.Fail(c, "Unauthorized")
		return
	}

	if err := h.Entries.Delete(c.Request.Context(), req.EntryID); err != nil {
		log.Printf("[DeleteEntry] user=%s entry=%s err=%v", uid, req.EntryID, err)
		common.Fail(c, "internal error")
		return
	}

	common.OK(c, nil)
}

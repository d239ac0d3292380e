package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dozr/sleeptrack/internal/auth"
	"github.com/dozr/sleeptrack/internal/common"
	"github.com/dozr/sleeptrack/internal/httpapi/middleware"
	"github.com/dozr/sleeptrack/internal/user"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, "invalid json")
		return
	}
	if req.Username == "" || req.Password == "" {
		common.Fail(c, "username and password required")
		return
	}

	if _, err := h.Users.Create(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			common.Fail(c, err.Error())
			return
		}
		log.Printf("[Signup] create user username=%s err=%v", req.Username, err)
		common.Fail(c, "internal error")
		return
	}

	common.OK(c, nil)
}

func (h *Handler) Signin(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, "invalid json")
		return
	}

	principal, err := h.Authn.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		common.Fail(c, err.Error())
		return
	}

	// a fresh session id on every login, never a reused one
	sid, err := h.Sessions.Create(c.Request.Context(), principal.ID)
	if err != nil {
		log.Printf("[Signin] create session user=%s err=%v", principal.ID, err)
		common.Fail(c, "internal error")
		return
	}

	token, err := auth.SignSessionToken(sid, h.Cfg.SessionSecret, h.Cfg.SessionTTL)
	if err != nil {
		log.Printf("[Signin] sign token user=%s err=%v", principal.ID, err)
		common.Fail(c, "internal error")
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(h.Cfg.SessionTTL.Seconds()), "/", "", false, true)
	common.OK(c, nil)
}

func (h *Handler) Signout(c *gin.Context) {
	if sid, ok := middleware.SessionID(c); ok {
		if err := h.Sessions.Delete(c.Request.Context(), sid); err != nil {
			log.Printf("[Signout] delete session sid=%s err=%v", sid, err)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	common.OK(c, nil)
}

// Status reports whether the caller holds a live session. The body is just
// the success flag; no errors array even when unauthenticated.
func (h *Handler) Status(c *gin.Context) {
	authenticated := false
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		if sid, err := auth.ParseSessionToken(cookie, h.Cfg.SessionSecret); err == nil {
			if _, err := h.Sessions.Get(c.Request.Context(), sid); err == nil {
				authenticated = true
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": authenticated})
}

func (h *Handler) InvalidSession(c *gin.Context) {
	common.Fail(c, "Invalid session")
}

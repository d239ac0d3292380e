package handlers

import (
	"gorm.io/gorm"

	"github.com/dozr/sleeptrack/internal/analytics"
	"github.com/dozr/sleeptrack/internal/auth"
	"github.com/dozr/sleeptrack/internal/config"
	"github.com/dozr/sleeptrack/internal/entry"
	"github.com/dozr/sleeptrack/internal/user"
)

type Handler struct {
	Cfg       config.Config
	Users     *user.Service
	Entries   *entry.Service
	Analytics *analytics.Service
	Sessions  auth.SessionStore
	Authn     *auth.Authenticator
}

func NewHandler(db *gorm.DB, cfg config.Config, sessions auth.SessionStore, llm analytics.Completer) *Handler {
	users := user.NewService(user.NewRepo(db))
	entries := entry.NewService(entry.NewRepo(db))
	return &Handler{
		Cfg:       cfg,
		Users:     users,
		Entries:   entries,
		Analytics: analytics.NewService(entries, llm),
		Sessions:  sessions,
		Authn:     auth.NewAuthenticator(users),
	}
}

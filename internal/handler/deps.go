package handler

import (
	"wgdash/internal/app/api"
	"wgdash/internal/app/copybox"
	"wgdash/internal/app/dashboard"
	"wgdash/internal/app/login"
	"wgdash/internal/app/relay"
	"wgdash/internal/app/session"
	"wgdash/internal/app/status"
	"wgdash/internal/configs"
)

// AppDeps bundles the services the dashboard handlers use.
type AppDeps struct {
	Config    *configs.AppConfig
	Session   *session.Manager
	API       *api.Client
	Login     *login.Flow
	Dashboard *dashboard.Service
	Status    *status.Channel
	Hub       *relay.Hub
	Clipboard copybox.Writer
}

package handler

import (
	"net/http"
	"time"

	"wgdash/internal/app/copybox"
	"wgdash/internal/app/dashboard"
	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
	"wgdash/internal/pkg/req"
	"wgdash/internal/pkg/resp"
)

// HandleMe returns the signed-in account.
func HandleMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionMissing))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user":       payload.UserData,
			"expires_at": payload.ExpiresAt,
		})
	}
}

// HandlePeers returns the peer cards of the home view.
func HandlePeers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := deps.Dashboard.Load(r.Context())
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, view.Peers)
	}
}

type statusResponse struct {
	State  string                          `json:"state"`
	Loaded bool                            `json:"loaded"`
	Peers  map[string]dashboard.PeerStatus `json:"peers"`
}

// HandleStatus returns the live part of every peer card.
func HandleStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := deps.Status.Snapshot()

		resp.RespondSuccess(w, r, statusResponse{
			State:  deps.Status.State().String(),
			Loaded: snapshot != nil,
			Peers:  dashboard.Statuses(snapshot, time.Now()),
		})
	}
}

type copyRequest struct {
	Text string `json:"text"`
}

// HandleCopy puts a value on the clipboard of the machine running the dashboard.
func HandleCopy(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input copyRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Text == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := copybox.NewWithWriter(input.Text, deps.Clipboard).Copy(); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"copied":      true,
			"flash_until": time.Now().Add(copybox.FlashDuration).Unix(),
		})
	}
}

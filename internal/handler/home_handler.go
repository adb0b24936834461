package handler

import (
	"html/template"
	"net/http"
	"strconv"

	"wgdash/internal/app/dashboard"
	"wgdash/internal/pkg/errs"
	"wgdash/internal/pkg/logx"
	"wgdash/internal/pkg/resp"
	"wgdash/internal/pkg/timefmt"
)

type homePage struct {
	View       *dashboard.View
	ConfigURL  template.URL
	ConfigName string
	Never      string
}

// HandleHome renders the dashboard, or redirects to the login view when there is no
// usable session.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := deps.Dashboard.Load(r.Context())
		if err != nil {
			logx.Info("No usable session, redirecting to login", "reason", err.Error())
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		render(w, http.StatusOK, "home.html", homePage{
			View: view,
			// the config is base64 data produced by this process
			ConfigURL:  template.URL(view.ConfigDataURL()),
			ConfigName: dashboard.ConfigFileName,
			Never:      timefmt.Never,
		})
	}
}

// HandleConfigDownload serves the WireGuard config as a file.
func HandleConfigDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conf, err := deps.API.ConnectionConfig(r.Context())
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if conf == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoConnection))
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+dashboard.ConfigFileName+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(conf)))
		w.Header().Set("Cache-Control", "no-store")
		w.Write([]byte(conf))
	}
}

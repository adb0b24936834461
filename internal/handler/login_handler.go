package handler

import (
	"net/http"

	"wgdash/internal/pkg/errs"
	"wgdash/internal/pkg/logx"
	"wgdash/internal/pkg/req"
)

type loginPage struct {
	OAuthURL string
	HasCode  bool
	Error    string
}

// HandleLoginView shows the authorization link, or the join key form once the OAuth
// redirect delivered a code. The code is taken out of the URL right away.
func HandleLoginView(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if code := r.URL.Query().Get("code"); code != "" {
			deps.Login.ReceiveCode(code)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		render(w, http.StatusOK, "login.html", loginPage{
			OAuthURL: deps.Config.OAuthURL,
			HasCode:  deps.Login.HasCode(),
		})
	}
}

// HandleLoginSubmit exchanges the held code and the submitted join key for a token.
func HandleLoginSubmit(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.ParseForm(w, r); customErr != nil {
			renderLoginError(w, deps, customErr)
			return
		}

		deps.Login.SetJoinKey(r.PostFormValue("join_key"))

		payload, err := deps.Login.Submit(r.Context())
		if err != nil {
			renderLoginError(w, deps, errs.From(err))
			return
		}

		logx.Info("Dashboard login succeeded", "discord_id", payload.DiscordID)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func renderLoginError(w http.ResponseWriter, deps *AppDeps, customErr *errs.CustomError) {
	render(w, customErr.Status, "login.html", loginPage{
		OAuthURL: deps.Config.OAuthURL,
		HasCode:  deps.Login.HasCode(),
		Error:    customErr.Message,
	})
}

// HandleLogout forgets the session, stops the status channel and returns to login.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Session.Logout(); err != nil {
			logx.Error(err, "Failed to clear the stored session")
		}

		deps.Status.Stop()
		deps.Hub.Reset()
		deps.Login.Reset()

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

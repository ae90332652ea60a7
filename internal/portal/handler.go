// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package portal

import (
	"net/http"

	"github.com/nextrip/core/internal/model"
)

const tokenCookie = "nextrip_token"

func (p *Portal) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := p.templates.TmplHome.Execute(w, map[string]any{
		"User": p.currentUser(r),
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to execute template", "error", err)
		return
	}
}

func (p *Portal) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := p.templates.TmplLogin.Execute(w, map[string]any{})
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to execute template", "error", err)
		return
	}
}

func (p *Portal) loginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	token, err := p.auth.SignIn(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		p.logger.WarnContext(ctx, "signin rejected", "error", err)
		if tmplErr := p.templates.TmplLogin.Execute(w, map[string]any{"Error": "Email ou mot de passe invalide."}); tmplErr != nil {
			p.logger.ErrorContext(ctx, "failed to execute template", "error", tmplErr)
		}
		return
	}

	p.setToken(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Portal) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := p.templates.TmplRegister.Execute(w, map[string]any{})
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to execute template", "error", err)
		return
	}
}

func (p *Portal) registerSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	token, err := p.auth.SignUp(ctx, r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		p.logger.WarnContext(ctx, "signup rejected", "error", err)
		if tmplErr := p.templates.TmplRegister.Execute(w, map[string]any{"Error": "Inscription impossible avec ces identifiants."}); tmplErr != nil {
			p.logger.ErrorContext(ctx, "failed to execute template", "error", tmplErr)
		}
		return
	}

	p.setToken(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Portal) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Portal) setToken(w http.ResponseWriter, token *model.AuthToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// currentUser resolves the session cookie, nil when absent or invalid.
func (p *Portal) currentUser(r *http.Request) *model.User {
	cookie, err := r.Cookie(tokenCookie)
	if err != nil {
		return nil
	}
	user, err := p.auth.Verify(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

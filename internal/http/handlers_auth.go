package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/supabase"
)

type loginPageData struct {
	Username   string
	Password   string
	Remembered bool
	Notice     string
	Error      string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if sessionFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	// Pre-fill from the remember-me cache, same as the saved-login flow in
	// a desktop login dialog.
	username, password := s.creds.Load()
	s.render(w, r, "login_page", loginPageData{
		Username:   username,
		Password:   password,
		Remembered: username != "",
		Notice:     noticeFrom(r),
		Error:      errorFrom(r),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	// Local check first; no network call for an obviously empty form.
	if username == "" || password == "" {
		s.render(w, r, "login_page", loginPageData{
			Username: username,
			Error:    "Please enter username and password",
		})
		return
	}

	user, err := s.store.LoginUser(r.Context(), username, password)
	if err != nil {
		msg := "Invalid username or password"
		if !errors.Is(err, supabase.ErrInvalidCredentials) {
			slog.ErrorContext(r.Context(), "Login failed", "username", username, "error", err)
			msg = "Login failed. Please try again."
		}
		// The password field always comes back empty.
		s.render(w, r, "login_page", loginPageData{Username: username, Error: msg})
		return
	}

	if r.FormValue("remember") != "" {
		s.creds.Save(username, password)
	}

	s.ensureDefaultCategories(r, user.ID)

	sess := s.sessions.Create(user)
	s.setSessionCookie(w, sess)
	slog.InfoContext(r.Context(), "User logged in", "username", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClearSavedLogin(w http.ResponseWriter, r *http.Request) {
	s.creds.Clear()
	redirectWith(w, r, "/login", "notice", "saved_login_cleared")
}

type registerPageData struct {
	Username string
	Email    string
	Error    string
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register_page", registerPageData{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	data := registerPageData{Username: username, Email: email}

	// Field rules check in order, first failure wins.
	switch {
	case username == "":
		data.Error = "Username cannot be empty"
	case len(username) < 3:
		data.Error = "Username must be at least 3 characters"
	case len(password) < 6:
		data.Error = "Password must be at least 6 characters"
	case password != confirm:
		data.Error = "Passwords do not match"
	}
	if data.Error != "" {
		s.render(w, r, "register_page", data)
		return
	}

	if err := s.store.RegisterUser(r.Context(), username, password, email); err != nil {
		if errors.Is(err, supabase.ErrUsernameTaken) {
			data.Error = "Username already exists"
		} else {
			slog.ErrorContext(r.Context(), "Registration failed", "username", username, "error", err)
			data.Error = "Registration failed: " + err.Error()
		}
		s.render(w, r, "register_page", data)
		return
	}

	redirectWith(w, r, "/login", "notice", "registered")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r); sess != nil {
		s.sessions.Delete(sess.Token)
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ensureDefaultCategories seeds the stock category set on a first login.
// Failures only cost the user an empty selection list, so they are logged
// and ignored.
func (s *Server) ensureDefaultCategories(r *http.Request, userID core.ID) {
	cats, err := s.store.GetCategories(r.Context(), userID)
	if err != nil {
		slog.WarnContext(r.Context(), "Could not check categories", "user_id", userID, "error", err)
		return
	}
	if len(cats) > 0 {
		return
	}
	for _, c := range core.DefaultCategories {
		if err := s.store.AddCategory(r.Context(), userID, c.Name, c.Color); err != nil {
			slog.WarnContext(r.Context(), "Could not seed category", "name", c.Name, "error", err)
		}
	}
}

// ABOUTME: HTTP handlers and middleware of the mock backend
// ABOUTME: Mirrors the status codes and body shapes of the real jobs API

package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/saarthix/hackctl/internal/client"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeText answers with a bare string body like the real auth endpoints do
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// track counts requests and applies injected failures
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.hits[key]++
		f, fail := s.failures[key]
		s.mu.Unlock()

		if fail {
			writeMessage(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate attaches token claims to the request when the bearer token
// is valid. Invalid tokens are ignored here; protected routes answer 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := s.parseToken(token); err == nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := claimsFrom(r.Context()); !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

// logout only acknowledges; issued tokens stay valid until they expire
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out")
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	s.mu.Lock()
	u, known := s.users[claims.Subject]
	s.mu.Unlock()
	if !known {
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"email":         claims.Subject,
			"userType":      claims.UserType,
		})
		return
	}

	name := u.Name
	if name == "" {
		name = u.Email
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"name":          name,
		"email":         u.Email,
		"picture":       u.Picture,
		"userType":      u.UserType,
	})
}

type credentials struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (s *Server) industryLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	s.mu.Lock()
	u, ok := s.users[body.Email]
	s.mu.Unlock()
	switch {
	case !ok:
		writeText(w, http.StatusUnauthorized, "Invalid email")
		return
	case u.UserType != client.RoleIndustry:
		writeText(w, http.StatusUnauthorized, "Account is not an industry account")
		return
	case u.Password != body.Password:
		writeText(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token, err := s.sign(u)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    u,
		"message": "Login successful",
		"token":   token,
	})
}

func (s *Server) industryRegister(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeText(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	s.mu.Lock()
	_, exists := s.users[body.Email]
	s.mu.Unlock()
	if exists {
		writeText(w, http.StatusBadRequest, "Email already registered")
		return
	}

	s.AddUser(User{
		Name:        body.CompanyName,
		CompanyName: body.CompanyName,
		Email:       body.Email,
		Password:    body.Password,
		UserType:    client.RoleIndustry,
	})
	writeText(w, http.StatusOK, "Industry registered successfully")
}

// devLogin stands in for the OAuth flow: it issues a token for email and
// redirects to redirect_uri with ?token=...
func (s *Server) devLogin(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	token, err := s.IssueToken(email)
	if err != nil {
		writeMessage(w, http.StatusNotFound, err.Error())
		return
	}

	target := r.URL.Query().Get("redirect_uri")
	if target == "" {
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
		return
	}
	u, err := url.Parse(target)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid redirect_uri")
		return
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusFound)
}

func (s *Server) listAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.hackathonsWhere(func(*client.Hackathon) bool { return true }))
}

func (s *Server) listMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	writeJSON(w, http.StatusOK, s.hackathonsWhere(func(h *client.Hackathon) bool {
		return h.CreatedByIndustryID == claims.UserID
	}))
}

func (s *Server) getHackathon(w http.ResponseWriter, r *http.Request) {
	h, ok := s.Hackathon(mux.Vars(r)["id"])
	if !ok {
		writeMessage(w, http.StatusNotFound, "Hackathon not found")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func fromInput(in client.HackathonInput) client.Hackathon {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return client.Hackathon{
		Title:               in.Title,
		Company:             in.Company,
		Description:         in.Description,
		ProblemStatement:    in.ProblemStatement,
		SkillsRequired:      str(in.SkillsRequired),
		Phases:              in.Phases,
		EligibilityCriteria: str(in.EligibilityCriteria),
		ParticipationType:   in.ParticipationType,
		CourseBranch:        str(in.CourseBranch),
		Year:                str(in.Year),
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		Mode:                in.Mode,
		VenueLocation:       str(in.VenueLocation),
		VenueTime:           str(in.VenueTime),
		SubmissionProcedure: str(in.SubmissionProcedure),
		Requirements:        str(in.Requirements),
		SubmissionURL:       str(in.SubmissionURL),
		ParticipantLimit:    in.ParticipantLimit,
		TeamSize:            in.TeamSize,
		Prize:               str(in.Prize),
		Enabled:             in.Enabled,
	}
}

func (s *Server) createHackathon(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	if claims.UserType != client.RoleIndustry {
		writeMessage(w, http.StatusForbidden, "Only INDUSTRY users can create hackathons")
		return
	}

	var in client.HackathonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h := fromInput(in)
	h.CreatedByIndustryID = claims.UserID
	writeJSON(w, http.StatusOK, s.AddHackathon(h))
}

// owned loads hackathon id and checks the caller created it
func (s *Server) owned(w http.ResponseWriter, r *http.Request) (client.Hackathon, bool) {
	claims, _ := claimsFrom(r.Context())
	h, ok := s.Hackathon(mux.Vars(r)["id"])
	if !ok {
		writeMessage(w, http.StatusNotFound, "Hackathon not found")
		return h, false
	}
	if h.CreatedByIndustryID != claims.UserID {
		writeMessage(w, http.StatusForbidden, "You can only manage your own hackathons")
		return h, false
	}
	return h, true
}

func (s *Server) updateHackathon(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.owned(w, r)
	if !ok {
		return
	}
	var in client.HackathonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h := fromInput(in)
	h.ID = existing.ID
	h.CreatedByIndustryID = existing.CreatedByIndustryID
	h.Views = existing.Views
	h.Instructions = existing.Instructions
	writeJSON(w, http.StatusOK, s.AddHackathon(h))
}

func (s *Server) deleteHackathon(w http.ResponseWriter, r *http.Request) {
	h, ok := s.owned(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	s.removeHackathon(h.ID)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleStatus(w http.ResponseWriter, r *http.Request) {
	h, ok := s.owned(w, r)
	if !ok {
		return
	}
	h.Enabled = !h.Enabled
	writeJSON(w, http.StatusOK, s.AddHackathon(h))
}

func (s *Server) listApplicants(w http.ResponseWriter, r *http.Request) {
	h, ok := s.owned(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	apps := append([]client.Applicant{}, s.applicants[h.ID]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	s.mu.Lock()
	list := append([]client.Notification{}, s.notifications[claims.Subject]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	s.mu.Lock()
	count := 0
	for _, n := range s.notifications[claims.Subject] {
		if !n.Read {
			count++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// updateNotifications applies fn to the caller's notifications and reports
// whether any matched
func (s *Server) updateNotifications(r *http.Request, fn func([]client.Notification) ([]client.Notification, bool)) bool {
	claims, _ := claimsFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := fn(s.notifications[claims.Subject])
	s.notifications[claims.Subject] = list
	return ok
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	found := s.updateNotifications(r, func(list []client.Notification) ([]client.Notification, bool) {
		for i := range list {
			if list[i].ID == id {
				list[i].Read = true
				return list, true
			}
		}
		return list, false
	})
	if !found {
		writeMessage(w, http.StatusNotFound, "Notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request) {
	s.updateNotifications(r, func(list []client.Notification) ([]client.Notification, bool) {
		for i := range list {
			list[i].Read = true
		}
		return list, true
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	found := s.updateNotifications(r, func(list []client.Notification) ([]client.Notification, bool) {
		for i := range list {
			if list[i].ID == id {
				return append(list[:i], list[i+1:]...), true
			}
		}
		return list, false
	})
	if !found {
		writeMessage(w, http.StatusNotFound, "Notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

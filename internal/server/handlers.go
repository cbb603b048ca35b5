package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"webdesk/internal/desk"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// sessionUser resolves the request's bearer token to a user.
func (s *Server) sessionUser(r *http.Request) (*desk.User, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return nil, fmt.Errorf("missing session token")
	}
	userID, ok := s.sessions.UserID(token)
	if !ok {
		return nil, fmt.Errorf("unknown session")
	}
	u := s.svc.UserByID(userID)
	if u == nil {
		return nil, fmt.Errorf("session user no longer exists")
	}
	return u, nil
}

// handleLogin opens a session for a configured user.
// POST /api/login {"username": ..., "password": ...}
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "use POST", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	user := s.svc.UserByName(req.Username)
	if user == nil {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}
	stored, _ := s.currentConfig().PasswordFor(req.Username)
	if stored != "" && stored != HashPassword(req.Password) {
		s.logger.Warn("login rejected", "user", req.Username)
		http.Error(w, "bad credentials", http.StatusUnauthorized)
		return
	}

	token := s.sessions.Create(user.ID)
	s.logger.Info("login", "user", user.Name, "role", user.Role)
	writeJSON(w, map[string]any{"token": token, "user": user})
}

// itemView decorates an item with presentation fields.
type itemView struct {
	*desk.Item
	SizeLabel string `json:"size_label,omitempty"`
}

func viewItems(items []*desk.Item) []itemView {
	out := make([]itemView, len(items))
	for i, it := range items {
		v := itemView{Item: it}
		if it.Size > 0 {
			v.SizeLabel = humanize.Bytes(uint64(it.Size))
		}
		out[i] = v
	}
	return out
}

// handleItems lists every item visible to the session user.
// GET /api/items
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "use GET", http.StatusMethodNotAllowed)
		return
	}
	user, err := s.sessionUser(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]any{
		"version": s.svc.Version(),
		"items":   viewItems(s.svc.VisibleItems(user)),
	})
}

// handleChildren lists a folder, the trash bin or a tag view.
// GET /api/children?folder=ID
func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "use GET", http.StatusMethodNotAllowed)
		return
	}
	user, err := s.sessionUser(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = desk.RootID
	}
	items, err := s.svc.VisibleChildren(user, folder)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, map[string]any{
		"folder": folder,
		"path":   s.svc.PathString(folder),
		"items":  viewItems(items),
	})
}

// handlePath resolves a folder's ancestor chain.
// GET /api/path?folder=ID
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "use GET", http.StatusMethodNotAllowed)
		return
	}
	if _, err := s.sessionUser(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = desk.RootID
	}
	writeJSON(w, map[string]any{
		"ancestors": s.svc.ResolvePath(folder),
		"display":   s.svc.PathString(folder),
	})
}

// handleHistory lists committed actions oldest-first.
// GET /api/history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "use GET", http.StatusMethodNotAllowed)
		return
	}
	if _, err := s.sessionUser(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]any{
		"actions":  s.svc.HistorySummaries(),
		"can_undo": s.svc.CanUndo(),
		"can_redo": s.svc.CanRedo(),
	})
}

// handleTransfers lists transfer records.
// GET /api/transfers
func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "use GET", http.StatusMethodNotAllowed)
		return
	}
	if _, err := s.sessionUser(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]any{"transfers": s.svc.Transfers()})
}

// commandRequest is the union body for all commands; each command reads
// the fields it needs.
type commandRequest struct {
	ID      string   `json:"id,omitempty"`
	IDs     []string `json:"ids,omitempty"`
	Name    string   `json:"name,omitempty"`
	Target  string   `json:"target,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	A       string   `json:"a,omitempty"`
	B       string   `json:"b,omitempty"`
	Role    string   `json:"role,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Kind    string   `json:"kind,omitempty"`
	Size    int64    `json:"size,omitempty"`
	Content string   `json:"content,omitempty"`
}

func (req *commandRequest) point() *desk.Point {
	if req.X == nil || req.Y == nil {
		return nil
	}
	return &desk.Point{X: *req.X, Y: *req.Y}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, desk.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, desk.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// handleCommand dispatches POST /api/command/{name}. Rejections are
// already notified out-of-band through the event stream; the status
// code here is a courtesy for non-streaming callers.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "use POST", http.StatusMethodNotAllowed)
		return
	}
	user, err := s.sessionUser(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/command/")
	var req commandRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
	}

	var cmdErr error
	result := map[string]any{}
	switch name {
	case "rename":
		cmdErr = s.svc.Rename(user, req.ID, req.Name)
	case "move":
		cmdErr = s.svc.Move(user, req.IDs, req.Target, req.point())
	case "reposition":
		p := req.point()
		if p == nil {
			http.Error(w, "x and y required", http.StatusBadRequest)
			return
		}
		cmdErr = s.svc.Reposition(user, req.ID, *p)
	case "swap":
		cmdErr = s.svc.SwapOrder(user, req.A, req.B)
	case "trash":
		cmdErr = s.svc.MoveToTrash(user, req.IDs)
	case "restore":
		cmdErr = s.svc.Restore(user, req.IDs)
	case "delete":
		cmdErr = s.svc.PermanentDelete(user, req.IDs)
	case "empty-trash":
		cmdErr = s.svc.EmptyTrash(user)
	case "create-folder":
		var created *desk.Item
		created, cmdErr = s.svc.CreateFolder(user, req.Target, req.Name)
		if cmdErr == nil {
			result["item"] = created
		}
	case "copy":
		cmdErr = s.svc.Copy(user, req.IDs)
	case "paste":
		cmdErr = s.svc.Paste(user, req.Target)
	case "upload":
		var tr *desk.Transfer
		tr, cmdErr = s.svc.StartUpload(user, req.Target, req.Name, desk.Kind(req.Kind), req.Size, req.Content)
		if cmdErr == nil {
			result["transfer"] = tr
		}
	case "download":
		var tr *desk.Transfer
		tr, cmdErr = s.svc.StartDownload(user, req.ID)
		if cmdErr == nil {
			result["transfer"] = tr
		}
	case "visibility":
		cmdErr = s.svc.ToggleVisibility(user, req.ID, desk.Role(req.Role))
	case "tags":
		cmdErr = s.svc.UpdateTags(user, req.ID, req.Tags)
	case "undo":
		result["applied"] = s.svc.Undo()
	case "redo":
		result["applied"] = s.svc.Redo()
	default:
		http.Error(w, "unknown command: "+name, http.StatusNotFound)
		return
	}

	if cmdErr != nil {
		w.WriteHeader(statusFor(cmdErr))
		writeJSON(w, map[string]any{"status": "rejected", "message": cmdErr.Error()})
		return
	}
	result["status"] = "ok"
	result["version"] = s.svc.Version()
	writeJSON(w, result)
}

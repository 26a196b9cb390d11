// Package server exposes the town over HTTP: a JSON API for the dashboard
// and task operations, plus static files from ui/.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/usecase"
)

// Deps carries everything the handlers need. The CLI builds this from the
// app container so the server package stays independent of wiring.
type Deps struct {
	Tasks    domain.TaskRepository
	Audit    domain.AuditLog
	Sessions domain.SessionManager
	Logger   domain.Logger
	WorkDir  string

	AddTask    *usecase.AddTask
	DeleteTask *usecase.DeleteTask
	Sling      *usecase.Sling
	Done       *usecase.Done
	Nudge      *usecase.Nudge
	Beads      *usecase.Beads
}

// Server is the HTTP front end.
type Server struct {
	deps Deps
	mux  *http.ServeMux
}

// New builds a Server with all routes registered.
func New(deps Deps) *Server {
	s := &Server{deps: deps, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/logs/{task}/{agent}", s.handleLogs)
	s.mux.HandleFunc("GET /api/prompts/{role}", s.handlePrompt)
	s.mux.HandleFunc("GET /api/agents/{agent}/files", s.handleAgentFiles)
	s.mux.HandleFunc("GET /api/tasks/{task}/history", s.handleHistory)
	s.mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{task}", s.handleDeleteTask)
	s.mux.HandleFunc("POST /api/start", s.handleStart)
	s.mux.HandleFunc("POST /api/done/{task}", s.handleDone)
	s.mux.HandleFunc("POST /api/nudge", s.handleNudge)
	s.mux.Handle("/", http.FileServer(http.Dir("ui")))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe runs the server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrLogNotFound),
		errors.Is(err, domain.ErrNoActiveTask):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTaskExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyTitle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type taskView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Assignee string `json:"assignee,omitempty"`
	Engine   string `json:"engine,omitempty"`
	Created  string `json:"created"`
}

func toTaskView(t *domain.Task) taskView {
	return taskView{
		ID:       t.ID,
		Title:    t.Title,
		Status:   string(t.Status),
		Assignee: t.Assignee,
		Engine:   t.Engine,
		Created:  t.Created.Format("2006-01-02 15:04:05"),
	}
}

type dashboardResponse struct {
	Tasks        []taskView           `json:"tasks"`
	ActiveAgents []string             `json:"active_agents"`
	Trail        []domain.AuditRecord `json:"trail"`
	Stats        dashboardStats       `json:"stats"`
}

type dashboardStats struct {
	Open         int     `json:"open"`
	InProgress   int     `json:"in_progress"`
	Closed       int     `json:"closed"`
	Total        int     `json:"total"`
	Progress     float64 `json:"progress"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Beads.Execute(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	tasks, err := s.deps.Tasks.List()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	views := make([]taskView, 0, len(tasks))
	agents := make([]string, 0)
	for _, t := range tasks {
		views = append(views, toTaskView(t))
		if t.Status == domain.StatusInProgress && t.Assignee != "" {
			if s.deps.Sessions.IsRunning(domain.WorkerSessionName(t.Assignee)) {
				agents = append(agents, t.Assignee)
			}
		}
	}
	sort.Strings(agents)

	writeJSON(w, http.StatusOK, dashboardResponse{
		Tasks:        views,
		ActiveAgents: agents,
		Trail:        report.Trail,
		Stats: dashboardStats{
			Open:         report.Open,
			InProgress:   report.InProgress,
			Closed:       report.Closed,
			Total:        report.Total,
			Progress:     report.Progress,
			TotalCostUSD: report.TotalCostUSD,
		},
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task")
	agent := r.PathValue("agent")
	path := domain.TaskLogPath(s.deps.WorkDir, taskID, agent)

	content, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusNotFound, domain.ErrLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"task":    taskID,
		"agent":   agent,
		"path":    path,
		"content": string(content),
	})
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	path := domain.RolePromptPath(s.deps.WorkDir, role)

	content, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no prompt for role %q", role))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"role":    role,
		"content": string(content),
	})
}

func (s *Server) handleAgentFiles(w http.ResponseWriter, r *http.Request) {
	agent := r.PathValue("agent")
	dir := domain.WorkerDir(s.deps.WorkDir, agent)

	entries, err := os.ReadDir(dir)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no workspace for agent %q", agent))
		return
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		files = append(files, name)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent": agent,
		"files": files,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task")
	task, err := s.deps.Tasks.Get(taskID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, domain.ErrTaskNotFound)
		return
	}

	records, err := s.deps.Audit.History(taskID, task.Assignee)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task":    taskID,
		"history": records,
	})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}
	task, err := s.deps.AddTask.Execute(r.Context(), usecase.AddTaskInput{ID: req.ID, Title: req.Title})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskView(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task")
	if err := s.deps.DeleteTask.Execute(r.Context(), taskID); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": taskID})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Task   string `json:"task"`
		Agent  string `json:"agent"`
		Engine string `json:"engine"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}
	out, err := s.deps.Sling.Execute(r.Context(), usecase.SlingInput{
		TaskID: req.Task,
		Agent:  req.Agent,
		Engine: req.Engine,
		Role:   req.Role,
		Actor:  "web",
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"task":    out.Task.ID,
		"agent":   out.Task.Assignee,
		"engine":  out.Engine,
		"session": out.SessionName,
	})
}

func (s *Server) handleDone(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task")
	out, err := s.deps.Done.Execute(r.Context(), usecase.DoneInput{TaskID: taskID, Actor: "web"})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task":   out.Task.ID,
		"status": string(out.Task.Status),
		"nuked":  out.NukedAgent,
	})
}

func (s *Server) handleNudge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Agent   string `json:"agent"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}
	out, err := s.deps.Nudge.Execute(r.Context(), usecase.NudgeInput{
		Agent:   req.Agent,
		Message: req.Message,
		Actor:   "web",
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":     req.Agent,
		"delivered": out.Delivered,
	})
}

// Package web serves the task planner HTML pages: the task list with its
// add/toggle/delete forms, the subscribe form, and the verification and
// unsubscribe pages linked from emails.
package web

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	netmail "net/mail"
	"strings"
	"sync"

	"github.com/plannerhq/taskplanner/internal/metrics"
	"github.com/plannerhq/taskplanner/mail"
	"github.com/plannerhq/taskplanner/subscription"
	"github.com/plannerhq/taskplanner/task"
)

// Options configures the web handler.
type Options struct {
	Tasks         task.Repository
	Subscriptions subscription.Repository
	Composer      *mail.Composer
	Sender        mail.Sender
	Logger        *slog.Logger
}

// Handler serves the planner pages.
type Handler struct {
	tasks         task.Repository
	subscriptions subscription.Repository
	composer      *mail.Composer
	sender        mail.Sender
	logger        *slog.Logger
	mux           *http.ServeMux
	templates     *template.Template

	mu    sync.Mutex
	draft *banner
}

// banner is a one-shot status message rendered on the next index view.
type banner struct {
	Message string
	Error   string
}

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	handler := &Handler{
		tasks:         opts.Tasks,
		subscriptions: opts.Subscriptions,
		composer:      opts.Composer,
		sender:        opts.Sender,
		logger:        logger,
		templates:     newTemplates(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.handleIndex)
	mux.HandleFunc("/verify", handler.handleVerify)
	mux.HandleFunc("/unsubscribe", handler.handleUnsubscribe)
	mux.HandleFunc("/healthz", handler.handleHealthz)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.renderIndex(w)
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) renderIndex(w http.ResponseWriter) {
	tasks := h.tasks.List()
	pending, completed := task.CountByStatus(tasks)
	metrics.ObserveTasks(pending, completed)

	data := indexData{Tasks: tasks}
	if draft := h.consumeBanner(); draft != nil {
		data.Message = draft.Message
		data.Error = draft.Error
	}
	h.render(w, "index", data)
}

// handleSubmit dispatches the index form. Field precedence: task-name,
// then email, then action.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setBanner(banner{Error: "Invalid form input."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	taskName := strings.TrimSpace(r.PostFormValue("task-name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	action := r.PostFormValue("action")

	switch {
	case taskName != "":
		h.setBanner(h.addTask(taskName))
	case email != "":
		h.setBanner(h.subscribe(r.Context(), email))
	case action == "toggle":
		completed := r.PostFormValue("completed") == "1"
		h.setBanner(h.toggleTask(r.PostFormValue("task_id"), completed))
	case action == "delete":
		h.setBanner(h.deleteTask(r.PostFormValue("task_id")))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) addTask(name string) banner {
	if _, err := h.tasks.Add(name); err != nil {
		h.logger.Warn("add task failed", "error", err)
		return banner{Error: "Failed to add task. Task may already exist."}
	}
	return banner{Message: "Task added successfully!"}
}

func (h *Handler) toggleTask(id string, completed bool) banner {
	if err := h.tasks.SetCompleted(id, completed); err != nil {
		h.logger.Warn("toggle task failed", "task_id", id, "error", err)
		return banner{Error: "Failed to update task status."}
	}
	return banner{Message: "Task status updated!"}
}

func (h *Handler) deleteTask(id string) banner {
	if err := h.tasks.Delete(id); err != nil {
		h.logger.Warn("delete task failed", "task_id", id, "error", err)
		return banner{Error: "Failed to delete task."}
	}
	return banner{Message: "Task deleted successfully!"}
}

func (h *Handler) subscribe(ctx context.Context, email string) banner {
	if !isValidEmail(email) {
		return banner{Error: "Please enter a valid email address."}
	}
	if err := h.requestVerification(ctx, email); err != nil {
		h.logger.Warn("subscribe failed", "email", email, "error", err)
		return banner{Error: "Failed to subscribe. You may already be subscribed."}
	}
	return banner{Message: "Verification email sent! Please check your inbox."}
}

// requestVerification stores a pending subscription and emails the
// verification link.
func (h *Handler) requestVerification(ctx context.Context, email string) error {
	code, err := h.subscriptions.Request(email)
	if err != nil {
		return err
	}
	body, err := h.composer.VerificationMessage(email, code)
	if err != nil {
		return err
	}
	if err := h.sender.Send(ctx, email, mail.VerificationSubject, body); err != nil {
		return err
	}
	metrics.VerificationEmailsSent.Inc()
	return nil
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	email := r.URL.Query().Get("email")
	code := r.URL.Query().Get("code")

	data := resultData{Title: "Subscription Verification"}
	switch {
	case email == "" || code == "":
		data.Error = "Invalid verification link. Please make sure you clicked the correct link from your email."
	default:
		if err := h.subscriptions.Verify(email, code); err != nil {
			h.logger.Warn("verification failed", "email", email, "error", err)
			data.Error = "Verification failed. The verification code may be invalid or expired."
		} else {
			data.Message = "Your subscription has been verified successfully! You will now receive task reminders."
		}
	}
	h.render(w, "result", data)
}

func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleUnsubscribeRequest(w, r)
	case http.MethodPost:
		h.handleResubscribe(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) handleUnsubscribeRequest(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	data := resultData{Title: "Unsubscribe", ShowResubscribe: true, Email: email}
	switch {
	case email == "":
		data.Error = "No email address provided for unsubscription."
	case !isValidEmail(email):
		data.Error = "Invalid email address provided."
	default:
		if err := h.subscriptions.Unsubscribe(email); err != nil {
			h.logger.Warn("unsubscribe failed", "email", email, "error", err)
			data.Error = "Unsubscribe failed. You may not be subscribed or there was an error processing your request."
		} else {
			data.Message = "You have been successfully unsubscribed from task reminders."
		}
	}
	h.render(w, "result", data)
}

// handleResubscribe starts a fresh double-opt-in for an email submitted
// on the unsubscribe page.
func (h *Handler) handleResubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "result", resultData{Title: "Unsubscribe", ShowResubscribe: true, Error: "Invalid form input."})
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))

	data := resultData{Title: "Unsubscribe", ShowResubscribe: true, Email: email}
	switch {
	case !isValidEmail(email):
		data.Error = "Please enter a valid email address for resubscription."
	default:
		if err := h.requestVerification(r.Context(), email); err != nil {
			h.logger.Warn("resubscribe failed", "email", email, "error", err)
			data.Error = "Failed to resubscribe. You may already be subscribed."
		} else {
			data.Message = "Verification email sent! Please check your inbox to complete resubscription."
		}
	}
	h.render(w, "result", data)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render page failed", "template", name, "error", err)
	}
}

func (h *Handler) consumeBanner() *banner {
	h.mu.Lock()
	defer h.mu.Unlock()
	draft := h.draft
	h.draft = nil
	return draft
}

func (h *Handler) setBanner(draft banner) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.draft = &draft
}

// isValidEmail reports whether value is a bare, well-formed address.
func isValidEmail(value string) bool {
	addr, err := netmail.ParseAddress(value)
	return err == nil && addr.Address == value
}

func writeMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

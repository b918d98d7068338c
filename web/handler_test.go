package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/plannerhq/taskplanner/mail"
	"github.com/plannerhq/taskplanner/subscription"
	"github.com/plannerhq/taskplanner/task"
)

type fakeSender struct {
	sent []sentMessage
	err  error
}

type sentMessage struct {
	To      string
	Subject string
	Body    string
}

func (s *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

type fixture struct {
	handler       *Handler
	tasks         *task.Store
	subscriptions *subscription.Store
	sender        *fakeSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	sender := &fakeSender{}
	tasks := task.NewStore(dir)
	subscriptions := subscription.NewStore(dir)
	handler := NewHandler(Options{
		Tasks:         tasks,
		Subscriptions: subscriptions,
		Composer:      mail.NewComposer("http://localhost:8080"),
		Sender:        sender,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &fixture{
		handler:       handler,
		tasks:         tasks,
		subscriptions: subscriptions,
		sender:        sender,
	}
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (f *fixture) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func expectRedirectHome(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("redirect location = %q, want %q", loc, "/")
	}
}

func TestIndexListsTasks(t *testing.T) {
	f := newFixture(t)
	if _, err := f.tasks.Add("water the plants"); err != nil {
		t.Fatal(err)
	}

	rec := f.get(t, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "water the plants") {
		t.Errorf("index does not list the task:\n%s", rec.Body.String())
	}
}

func TestIndexUnknownPath(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAddTask(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm(t, "/", url.Values{"task-name": {"buy milk"}})
	expectRedirectHome(t, rec)

	tasks := f.tasks.List()
	if len(tasks) != 1 || tasks[0].Name != "buy milk" {
		t.Fatalf("tasks = %+v, want one task named %q", tasks, "buy milk")
	}

	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Task added successfully!") {
		t.Errorf("missing success banner:\n%s", body)
	}
}

func TestAddDuplicateTask(t *testing.T) {
	f := newFixture(t)
	if _, err := f.tasks.Add("Buy Milk"); err != nil {
		t.Fatal(err)
	}

	rec := f.postForm(t, "/", url.Values{"task-name": {"buy milk"}})
	expectRedirectHome(t, rec)

	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Failed to add task. Task may already exist.") {
		t.Errorf("missing duplicate banner:\n%s", body)
	}
	if len(f.tasks.List()) != 1 {
		t.Errorf("duplicate was stored")
	}
}

func TestBannerShownOnce(t *testing.T) {
	f := newFixture(t)
	f.postForm(t, "/", url.Values{"task-name": {"buy milk"}})

	first := f.get(t, "/").Body.String()
	if !strings.Contains(first, "Task added successfully!") {
		t.Fatalf("first view missing banner")
	}
	second := f.get(t, "/").Body.String()
	if strings.Contains(second, "Task added successfully!") {
		t.Errorf("banner repeated on second view")
	}
}

func TestToggleTask(t *testing.T) {
	f := newFixture(t)
	created, err := f.tasks.Add("buy milk")
	if err != nil {
		t.Fatal(err)
	}

	rec := f.postForm(t, "/", url.Values{
		"action":    {"toggle"},
		"task_id":   {created.ID},
		"completed": {"1"},
	})
	expectRedirectHome(t, rec)

	tasks := f.tasks.List()
	if !tasks[0].Completed {
		t.Errorf("task not marked completed")
	}
	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Task status updated!") {
		t.Errorf("missing toggle banner:\n%s", body)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	f := newFixture(t)

	f.postForm(t, "/", url.Values{
		"action":    {"toggle"},
		"task_id":   {"missing"},
		"completed": {"1"},
	})

	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Failed to update task status.") {
		t.Errorf("missing error banner:\n%s", body)
	}
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	created, err := f.tasks.Add("buy milk")
	if err != nil {
		t.Fatal(err)
	}

	rec := f.postForm(t, "/", url.Values{
		"action":  {"delete"},
		"task_id": {created.ID},
	})
	expectRedirectHome(t, rec)

	if len(f.tasks.List()) != 0 {
		t.Errorf("task not deleted")
	}
	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Task deleted successfully!") {
		t.Errorf("missing delete banner:\n%s", body)
	}
}

func TestSubscribeSendsVerificationEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm(t, "/", url.Values{"email": {"sam@example.com"}})
	expectRedirectHome(t, rec)

	if len(f.sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(f.sender.sent))
	}
	msg := f.sender.sent[0]
	if msg.To != "sam@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.Subject != mail.VerificationSubject {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "/verify?email=sam%40example.com&code=") {
		t.Errorf("body missing verification link:\n%s", msg.Body)
	}

	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Verification email sent! Please check your inbox.") {
		t.Errorf("missing subscribe banner:\n%s", body)
	}
}

func TestSubscribeInvalidEmail(t *testing.T) {
	f := newFixture(t)

	f.postForm(t, "/", url.Values{"email": {"not-an-address"}})

	if len(f.sender.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(f.sender.sent))
	}
	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Please enter a valid email address.") {
		t.Errorf("missing validation banner:\n%s", body)
	}
}

func TestSubscribeAlreadySubscribed(t *testing.T) {
	f := newFixture(t)
	code, err := f.subscriptions.Request("sam@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.subscriptions.Verify("sam@example.com", code); err != nil {
		t.Fatal(err)
	}

	f.postForm(t, "/", url.Values{"email": {"sam@example.com"}})

	if len(f.sender.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(f.sender.sent))
	}
	body := f.get(t, "/").Body.String()
	if !strings.Contains(body, "Failed to subscribe. You may already be subscribed.") {
		t.Errorf("missing error banner:\n%s", body)
	}
}

func TestVerifyWithCorrectCode(t *testing.T) {
	f := newFixture(t)
	code, err := f.subscriptions.Request("sam@example.com")
	if err != nil {
		t.Fatal(err)
	}

	rec := f.get(t, "/verify?email=sam%40example.com&code="+code)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Your subscription has been verified successfully!") {
		t.Errorf("missing success message:\n%s", rec.Body.String())
	}

	subscribers := f.subscriptions.Subscribers()
	if len(subscribers) != 1 || subscribers[0] != "sam@example.com" {
		t.Errorf("subscribers = %v", subscribers)
	}
}

func TestVerifyWithWrongCode(t *testing.T) {
	f := newFixture(t)
	if _, err := f.subscriptions.Request("sam@example.com"); err != nil {
		t.Fatal(err)
	}

	rec := f.get(t, "/verify?email=sam%40example.com&code=000000")
	if !strings.Contains(rec.Body.String(), "Verification failed.") {
		t.Errorf("missing failure message:\n%s", rec.Body.String())
	}
	if len(f.subscriptions.Subscribers()) != 0 {
		t.Errorf("subscriber added despite wrong code")
	}
}

func TestVerifyMissingParams(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/verify")
	if !strings.Contains(rec.Body.String(), "Invalid verification link.") {
		t.Errorf("missing invalid-link message:\n%s", rec.Body.String())
	}
}

func TestUnsubscribe(t *testing.T) {
	f := newFixture(t)
	code, err := f.subscriptions.Request("sam@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.subscriptions.Verify("sam@example.com", code); err != nil {
		t.Fatal(err)
	}

	rec := f.get(t, "/unsubscribe?email=sam%40example.com")
	if !strings.Contains(rec.Body.String(), "You have been successfully unsubscribed from task reminders.") {
		t.Errorf("missing success message:\n%s", rec.Body.String())
	}
	if len(f.subscriptions.Subscribers()) != 0 {
		t.Errorf("subscriber still present")
	}
}

func TestUnsubscribeMissingEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/unsubscribe")
	if !strings.Contains(rec.Body.String(), "No email address provided for unsubscription.") {
		t.Errorf("missing message:\n%s", rec.Body.String())
	}
}

func TestUnsubscribeNotSubscribed(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/unsubscribe?email=sam%40example.com")
	if !strings.Contains(rec.Body.String(), "Unsubscribe failed.") {
		t.Errorf("missing failure message:\n%s", rec.Body.String())
	}
}

func TestResubscribe(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm(t, "/unsubscribe", url.Values{"email": {"sam@example.com"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Verification email sent! Please check your inbox to complete resubscription.") {
		t.Errorf("missing success message:\n%s", rec.Body.String())
	}
	if len(f.sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(f.sender.sent))
	}
}

func TestResubscribeInvalidEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm(t, "/unsubscribe", url.Values{"email": {"nope"}})
	if !strings.Contains(rec.Body.String(), "Please enter a valid email address for resubscription.") {
		t.Errorf("missing validation message:\n%s", rec.Body.String())
	}
	if len(f.sender.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(f.sender.sent))
	}
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

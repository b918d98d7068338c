package mail

import (
	"strings"
	"testing"

	"github.com/plannerhq/taskplanner/task"
)

func TestVerificationMessage(t *testing.T) {
	composer := NewComposer("http://localhost:8080")

	body, err := composer.VerificationMessage("a@b.com", "123456")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if !strings.Contains(body, "/verify?email=a%40b.com") {
		t.Errorf("body missing escaped verification link:\n%s", body)
	}
	if !strings.Contains(body, "code=123456") {
		t.Errorf("body missing code:\n%s", body)
	}
	if !strings.Contains(body, `id="verification-link"`) {
		t.Error("body missing verification link anchor")
	}
}

func TestVerificationMessageTrimsTrailingSlash(t *testing.T) {
	composer := NewComposer("http://localhost:8080/")

	body, err := composer.VerificationMessage("a@b.com", "123456")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if strings.Contains(body, "8080//verify") {
		t.Errorf("link has doubled slash:\n%s", body)
	}
}

func TestReminderMessage(t *testing.T) {
	composer := NewComposer("http://localhost:8080")

	pending := []task.Task{
		{ID: "a", Name: "Buy milk"},
		{ID: "b", Name: "Walk the dog"},
	}
	body, err := composer.ReminderMessage("a@b.com", pending)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if !strings.Contains(body, "Buy milk") || !strings.Contains(body, "Walk the dog") {
		t.Errorf("body missing task names:\n%s", body)
	}
	if !strings.Contains(body, "/unsubscribe?email=a%40b.com") {
		t.Errorf("body missing unsubscribe link:\n%s", body)
	}
	if !strings.Contains(body, `id="unsubscribe-link"`) {
		t.Error("body missing unsubscribe link anchor")
	}
}

func TestReminderMessageEscapesTaskNames(t *testing.T) {
	composer := NewComposer("http://localhost:8080")

	pending := []task.Task{{ID: "a", Name: "<script>alert(1)</script>"}}
	body, err := composer.ReminderMessage("a@b.com", pending)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Errorf("task name not escaped:\n%s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Errorf("expected escaped task name:\n%s", body)
	}
}

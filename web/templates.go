package web

import (
	"html/template"

	"github.com/plannerhq/taskplanner/task"
)

type indexData struct {
	Tasks   []task.Task
	Message string
	Error   string
}

type resultData struct {
	Title           string
	Message         string
	Error           string
	ShowResubscribe bool
	Email           string
}

func newTemplates() *template.Template {
	return template.Must(template.New("pages").Parse(pagesTemplate))
}

const pagesTemplate = `
{{define "style"}}
<style>
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
    max-width: 640px;
    margin: 2rem auto;
    padding: 0 1rem;
    color: #333;
    background-color: #f4f4f9;
  }
  h1, h2 { color: #4a4a8a; }
  .card {
    background: #fff;
    border-radius: 8px;
    box-shadow: 0 1px 4px rgba(0, 0, 0, 0.1);
    padding: 1.5rem;
    margin-bottom: 1.5rem;
  }
  .message {
    padding: 0.75rem 1rem;
    border-radius: 4px;
    margin-bottom: 1rem;
    background-color: #e7f6e7;
    color: #2d662d;
  }
  .error {
    padding: 0.75rem 1rem;
    border-radius: 4px;
    margin-bottom: 1rem;
    background-color: #fbe3e4;
    color: #8a1f11;
  }
  ul.tasks { list-style: none; padding: 0; }
  ul.tasks li {
    display: flex;
    align-items: center;
    gap: 0.5rem;
    padding: 0.5rem 0;
    border-bottom: 1px solid #eee;
  }
  ul.tasks li span.done { text-decoration: line-through; color: #999; }
  ul.tasks li span.name { flex: 1; }
  input[type="text"], input[type="email"] {
    padding: 0.5rem;
    border: 1px solid #ccc;
    border-radius: 4px;
    width: 60%;
  }
  button {
    padding: 0.5rem 1rem;
    border: none;
    border-radius: 4px;
    background-color: #4a4a8a;
    color: #fff;
    cursor: pointer;
  }
  button.danger { background-color: #c0392b; }
  button.small { padding: 0.25rem 0.5rem; font-size: 0.85rem; }
</style>
{{end}}

{{define "index"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Task Planner</title>
  {{template "style"}}
</head>
<body>
  <h1>Task Planner</h1>

  {{if .Message}}<div class="message">{{.Message}}</div>{{end}}
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}

  <div class="card">
    <h2>Add a Task</h2>
    <form method="POST" action="/">
      <input type="text" name="task-name" placeholder="What needs doing?" required>
      <button type="submit">Add Task</button>
    </form>
  </div>

  <div class="card">
    <h2>Tasks</h2>
    {{if .Tasks}}
    <ul class="tasks">
      {{range .Tasks}}
      <li>
        <form method="POST" action="/">
          <input type="hidden" name="action" value="toggle">
          <input type="hidden" name="task_id" value="{{.ID}}">
          <input type="hidden" name="completed" value="{{if .Completed}}0{{else}}1{{end}}">
          <button type="submit" class="small">{{if .Completed}}&#x2611;{{else}}&#x2610;{{end}}</button>
        </form>
        <span class="name{{if .Completed}} done{{end}}">{{.Name}}</span>
        <form method="POST" action="/">
          <input type="hidden" name="action" value="delete">
          <input type="hidden" name="task_id" value="{{.ID}}">
          <button type="submit" class="small danger">Delete</button>
        </form>
      </li>
      {{end}}
    </ul>
    {{else}}
    <p>No tasks yet.</p>
    {{end}}
  </div>

  <div class="card">
    <h2>Task Reminders</h2>
    <p>Subscribe to receive email reminders about your pending tasks.</p>
    <form method="POST" action="/">
      <input type="email" name="email" placeholder="you@example.com" required>
      <button type="submit">Subscribe</button>
    </form>
  </div>
</body>
</html>
{{end}}

{{define "result"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} - Task Planner</title>
  {{template "style"}}
</head>
<body>
  <h1>{{.Title}}</h1>

  <div class="card">
    {{if .Message}}<div class="message">{{.Message}}</div>{{end}}
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}

    {{if .ShowResubscribe}}
    <h2>Changed your mind?</h2>
    <p>Enter your email address to subscribe again.</p>
    <form method="POST" action="/unsubscribe">
      <input type="email" name="email" value="{{.Email}}" placeholder="you@example.com" required>
      <button type="submit">Resubscribe</button>
    </form>
    {{end}}

    <p><a href="/">Back to Task Planner</a></p>
  </div>
</body>
</html>
{{end}}
`

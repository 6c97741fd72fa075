package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"synchrony/app/config"
	"synchrony/app/models"
	"synchrony/app/store"
)

// TaskSummary is the read-only rollup the assistant exposes over the
// whole dataset.
type TaskSummary struct {
	Total        int `json:"total"`
	ToDo         int `json:"to_do"`
	InProgress   int `json:"in_progress"`
	Completed    int `json:"completed"`
	HighPriority int `json:"high_priority"`
}

// AssistantService answers productivity questions. When an API key is
// configured it proxies to the external chat-completions endpoint with
// a bounded timeout; on any failure it falls back to the local
// rule-based responder. Respond never fails.
type AssistantService struct {
	store  store.Store
	cfg    config.AssistantConfig
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(st store.Store, cfg config.AssistantConfig, logger *slog.Logger) *AssistantService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AssistantService{
		store:  st,
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
		now:    time.Now,
	}
}

// Summary counts tasks across every project.
func (s *AssistantService) Summary(ctx context.Context) (*TaskSummary, error) {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("task summary: %w", err)
	}

	summary := &TaskSummary{}
	for _, project := range dataset.Projects {
		for _, task := range project.Tasks {
			summary.Total++
			switch task.Status {
			case models.StatusToDo:
				summary.ToDo++
			case models.StatusInProgress:
				summary.InProgress++
			case models.StatusComplete:
				summary.Completed++
			}
			if task.Priority == models.PriorityHigh {
				summary.HighPriority++
			}
		}
	}
	return summary, nil
}

// Respond answers a chat message. External failures are recovered
// locally and never surfaced to the caller.
func (s *AssistantService) Respond(ctx context.Context, message string) string {
	if s.cfg.APIKey != "" {
		reply, err := s.remote(ctx, message)
		if err == nil {
			return reply
		}
		s.logger.Warn("assistant api call failed, using local responder", "error", err)
	}
	return s.localRespond(ctx, message)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *AssistantService) remote(ctx context.Context, message string) (string, error) {
	system := "You are a helpful productivity assistant for a project management team. " +
		"You help with task organization, prioritization, and productivity tips. " +
		"Keep responses friendly, practical, and under 300 words.\n\n" +
		"Current task context:\n" + s.taskContext(ctx)

	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: message},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant api returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("assistant api returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (s *AssistantService) taskContext(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("Current tasks:\n")
	for _, task := range s.allTasks(ctx) {
		fmt.Fprintf(&b, "- %s: %s, Priority: %s, Due: %s\n", task.Title, task.Status, task.Priority, task.Deadline)
	}
	return b.String()
}

// localRespond is the rule-based fallback: a lowercase keyword match
// over the message, with task-aware answers computed from the dataset.
func (s *AssistantService) localRespond(ctx context.Context, message string) string {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, "hi", "hello", "hey", "good morning", "good afternoon"):
		return "Hi there! Ready to tackle your tasks today? Ask me about your tasks, priorities, or deadlines."
	case containsAny(msg, "thank"):
		return "You're welcome! Happy to help you stay productive."
	case containsAny(msg, "bye", "goodbye", "see you"):
		return "Goodbye! Keep up the great work on your projects."
	case containsAny(msg, "help", "what can you do", "commands"):
		return "I'm your project assistant. Try: \"show me my tasks\", \"what should I work on next?\", " +
			"\"how are my deadlines?\", or ask for productivity tips."
	case containsAny(msg, "task", "todo", "work"):
		return s.taskAnalysis(ctx)
	case containsAny(msg, "priority", "prioritize", "important", "urgent"):
		return s.priorityAnswer(ctx)
	case containsAny(msg, "deadline", "due", "schedule"):
		return s.deadlineAnswer(ctx)
	case containsAny(msg, "productivity", "efficient", "tips", "advice"):
		return "Productivity tips: block similar tasks together, schedule demanding work during your peak hours, " +
			"and break large tasks into subtasks you can finish in one sitting."
	case containsAny(msg, "stress", "overwhelmed", "busy"):
		return "Feeling overwhelmed? Write everything down, pick the 1-3 most important tasks for today, " +
			"and break big items into smaller pieces. The rest can wait."
	case containsAny(msg, "start", "begin", "next", "what should i"):
		return s.nextTaskAnswer(ctx)
	default:
		return "I can help with your tasks, priorities, deadlines, and productivity. " +
			"Ask me \"what should I work on next?\" or say \"help\" to see what I can do."
	}
}

func (s *AssistantService) taskAnalysis(ctx context.Context) string {
	tasks := s.allTasks(ctx)
	if len(tasks) == 0 {
		return "You don't have any tasks yet. Create a project and add some tasks, and I'll help you manage them."
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		return "I couldn't read your tasks just now. Please try again."
	}

	now := s.now()
	overdue := 0
	for _, task := range tasks {
		if task.OverdueOn(now) {
			overdue++
		}
	}

	answer := fmt.Sprintf("You have %d tasks: %d to do, %d in progress, %d complete.",
		summary.Total, summary.ToDo, summary.InProgress, summary.Completed)
	if summary.HighPriority > 0 {
		answer += fmt.Sprintf(" %d are high priority.", summary.HighPriority)
	}
	if overdue > 0 {
		answer += fmt.Sprintf(" %d are overdue - tackle those first!", overdue)
	}
	return answer
}

func (s *AssistantService) priorityAnswer(ctx context.Context) string {
	pending := []models.Task{}
	for _, task := range s.allTasks(ctx) {
		if task.Priority == models.PriorityHigh && task.Status != models.StatusComplete {
			pending = append(pending, task)
		}
	}
	if len(pending) == 0 {
		return "Good news - no high-priority tasks are pending. A good time for important but not urgent work."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d high-priority tasks need attention:\n", len(pending))
	for i, task := range pending {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "- %s (due %s)\n", task.Title, orUnset(task.Deadline))
	}
	b.WriteString("Tackle these when your energy is highest.")
	return b.String()
}

func (s *AssistantService) deadlineAnswer(ctx context.Context) string {
	now := s.now()
	week := now.AddDate(0, 0, 7)

	var upcoming, overdue []models.Task
	for _, task := range s.allTasks(ctx) {
		if task.Status == models.StatusComplete || task.Deadline == "" {
			continue
		}
		due, err := time.Parse(models.DeadlineLayout, task.Deadline)
		if err != nil {
			continue
		}
		if task.OverdueOn(now) {
			overdue = append(overdue, task)
		} else if due.Before(week) {
			upcoming = append(upcoming, task)
		}
	}

	if len(upcoming) == 0 && len(overdue) == 0 {
		return "No urgent deadlines in the next week. Good time to work on important but not urgent tasks."
	}

	var b strings.Builder
	for _, task := range overdue {
		fmt.Fprintf(&b, "OVERDUE: %s (was due %s)\n", task.Title, task.Deadline)
	}
	for _, task := range upcoming {
		fmt.Fprintf(&b, "Due soon: %s (%s)\n", task.Title, task.Deadline)
	}
	b.WriteString("Use time-blocking to dedicate focused time to deadline-driven work.")
	return b.String()
}

func (s *AssistantService) nextTaskAnswer(ctx context.Context) string {
	pending := []models.Task{}
	for _, task := range s.allTasks(ctx) {
		if task.Status != models.StatusComplete {
			pending = append(pending, task)
		}
	}
	if len(pending) == 0 {
		return "Everything is complete - nothing to pick up right now!"
	}

	next := SortByPriorityThenDeadline(pending)[0]
	return fmt.Sprintf("I'd start with %q (%s priority, due %s).", next.Title, next.Priority, orUnset(next.Deadline))
}

func (s *AssistantService) allTasks(ctx context.Context) []models.Task {
	dataset, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("assistant could not load dataset", "error", err)
		return nil
	}
	var tasks []models.Task
	for _, project := range dataset.Projects {
		tasks = append(tasks, project.Tasks...)
	}
	return tasks
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func orUnset(deadline string) string {
	if deadline == "" {
		return "no deadline"
	}
	return deadline
}

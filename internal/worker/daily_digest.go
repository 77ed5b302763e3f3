package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avoronova/taskflow/internal/models"
	"github.com/google/uuid"
)

type DigestStore interface {
	ListProjects() ([]models.Project, error)
	ListProjectTasks(projectID uuid.UUID) ([]models.Task, error)
	ListProjectMembers(projectID uuid.UUID) ([]models.User, error)
}

type Mailer interface {
	Send(to []string, subject, htmlBody, textBody string) error
}

// DailyDigest раз в день считает сводку по задачам каждого проекта и
// шлёт её участникам письмом. Результат никем не ожидается: все ошибки
// логируются, сбой одного проекта не прерывает остальные.
type DailyDigest struct {
	store  DigestStore
	mailer Mailer
	hour   int
	minute int
}

// NewDailyDigest принимает время запуска в формате "HH:MM" серверного
// времени; при невалидном значении берётся 18:30.
func NewDailyDigest(store DigestStore, mailer Mailer, at string) *DailyDigest {
	hour, minute := 18, 30
	if h, m, err := parseClock(at); err == nil {
		hour, minute = h, m
	}

	return &DailyDigest{
		store:  store,
		mailer: mailer,
		hour:   hour,
		minute: minute,
	}
}

func parseClock(s string) (int, int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	return hour, minute, nil
}

// Start блокируется до отмены контекста, запуская сводку раз в сутки.
// Запускается отдельной горутиной при старте процесса.
func (w *DailyDigest) Start(ctx context.Context) {
	log.Printf("Daily digest scheduled at %02d:%02d", w.hour, w.minute)

	for {
		timer := time.NewTimer(time.Until(w.nextRun(time.Now())))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			w.Run()
		}
	}
}

func (w *DailyDigest) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), w.hour, w.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run обходит все проекты. Проект без адресов пропускается целиком.
func (w *DailyDigest) Run() {
	projects, err := w.store.ListProjects()
	if err != nil {
		log.Printf("Daily digest: failed to list projects: %v", err)
		return
	}

	for i := range projects {
		if err := w.runProject(&projects[i]); err != nil {
			log.Printf("Daily digest: project %s failed: %v", projects[i].ID, err)
		}
	}
}

func (w *DailyDigest) runProject(project *models.Project) error {
	tasks, err := w.store.ListProjectTasks(project.ID)
	if err != nil {
		return err
	}

	done, pending, blocked := countTasks(tasks)

	members, err := w.store.ListProjectMembers(project.ID)
	if err != nil {
		return err
	}

	to := make([]string, 0, len(members))
	for _, member := range members {
		if member.Email != "" {
			to = append(to, member.Email)
		}
	}
	if len(to) == 0 {
		return nil
	}

	subject := "Daily Summary - " + project.Name
	html := renderHTML(project.Name, done, pending, blocked)
	text := renderText(project.Name, done, pending, blocked)

	return w.mailer.Send(to, subject, html, text)
}

// countTasks делит задачи на done/pending/blocked. pending — всё, что не
// completed, поэтому blocked входит и в pending.
func countTasks(tasks []models.Task) (done, pending, blocked int) {
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusCompleted:
			done++
		case models.TaskStatusBlocked:
			blocked++
			pending++
		default:
			pending++
		}
	}
	return
}

func renderHTML(name string, done, pending, blocked int) string {
	return fmt.Sprintf(
		"<h3>Daily Summary - %s</h3>"+
			"<p><strong>Done:</strong> %d</p>"+
			"<p><strong>Pending:</strong> %d</p>"+
			"<p><strong>Blocked:</strong> %d</p>",
		name, done, pending, blocked)
}

func renderText(name string, done, pending, blocked int) string {
	return fmt.Sprintf("Daily Summary - %s\nDone: %d\nPending: %d\nBlocked: %d\n",
		name, done, pending, blocked)
}

package analytics

import (
	"log"
	"time"

	"restaurant-manager-go/pkg/model"
)

// SummaryMailer delivers the daily revenue summary. The notification
// package provides the SMTP implementation.
type SummaryMailer interface {
	SendDailySummary(to string, rows []model.DailyRevenue) error
}

// Reporter emails the previous day's revenue to an admin once a day.
// It runs in a single background goroutine started from main.
type Reporter struct {
	analytics *AnalyticsService
	mailer    SummaryMailer
	to        string
}

// NewReporter creates a daily report sender
func NewReporter(analytics *AnalyticsService, mailer SummaryMailer, to string) *Reporter {
	return &Reporter{analytics: analytics, mailer: mailer, to: to}
}

// RunDailyReports blocks, sending one summary shortly after each
// midnight. Call it in a goroutine.
func (r *Reporter) RunDailyReports() {
	log.Printf("[REPORTER] Daily revenue summaries will be sent to %s", r.to)

	for {
		time.Sleep(untilNextRun(time.Now()))
		r.sendSummary()
	}
}

// sendSummary mails yesterday's revenue figures.
func (r *Reporter) sendSummary() {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[REPORTER] Recovered from panic during daily summary: %v", rec)
		}
	}()

	today := dayStart(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	rows, err := r.analytics.DailyRevenue(yesterday, today)
	if err != nil {
		log.Printf("[REPORTER] Error fetching daily revenue: %v", err)
		return
	}
	if len(rows) == 0 {
		log.Printf("[REPORTER] No revenue recorded for %s, skipping summary", yesterday.Format("2006-01-02"))
		return
	}

	if err := r.mailer.SendDailySummary(r.to, rows); err != nil {
		log.Printf("[REPORTER] Error sending daily summary: %v", err)
	}
}

// untilNextRun returns the wait until five minutes past the next
// midnight, local time.
func untilNextRun(now time.Time) time.Duration {
	next := dayStart(now).AddDate(0, 0, 1).Add(5 * time.Minute)
	return next.Sub(now)
}

// dayStart returns midnight of now's day in now's location. The report
// window and the schedule must agree on the same day boundary.
func dayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/LuffyPiratesYeah/malmoi-server/db"
	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
)

var mailer services.Mailer

// StartCronJobs runs the lesson reminder sweep every minute and purges dead
// verification codes hourly.
func StartCronJobs(m services.Mailer) {
	mailer = m
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", sendLessonReminders); err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}
	if _, err := c.AddFunc("0 * * * *", purgeVerificationCodes); err != nil {
		log.Fatalf("Failed to add purge cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started")
}

// sendLessonReminders emails students whose approved lessons start in about
// an hour. Dates and times are naive strings, so the window check happens
// after parsing in the server's local zone.
func sendLessonReminders() {
	var schedules []models.Schedule
	err := db.DB.Preload("Class").Preload("Student").
		Where("status = ? AND reminder_sent = ?", models.StatusScheduled, false).
		Where("date >= ?", time.Now().AddDate(0, 0, -1).Format("2006-01-02")).
		Find(&schedules).Error
	if err != nil {
		log.Printf("Error fetching schedules for reminders: %v", err)
		return
	}

	now := time.Now()
	for _, schedule := range schedules {
		startsAt, err := schedule.StartsAt()
		if err != nil {
			continue
		}
		until := startsAt.Sub(now)
		if until < 55*time.Minute || until > 65*time.Minute {
			continue
		}
		if schedule.Student == nil || schedule.Class == nil {
			continue
		}
		if err := mailer.Send(schedule.Student.Email, reminderSubject(&schedule), reminderBody(&schedule)); err != nil {
			log.Printf("Failed to send reminder for schedule %s: %v", schedule.ID, err)
			continue
		}
		if err := db.DB.Model(&models.Schedule{}).Where("id = ?", schedule.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to mark reminder sent for schedule %s: %v", schedule.ID, err)
		}
		log.Printf("Sent reminder for schedule %s to %s", schedule.ID, schedule.Student.Email)
	}
}

// purgeVerificationCodes deletes code rows that are consumed or more than a
// day past expiry.
func purgeVerificationCodes() {
	cutoff := time.Now().Add(-24 * time.Hour)
	result := db.DB.Where("consumed = ? OR expires_at < ?", true, cutoff).
		Delete(&models.EmailVerificationCode{})
	if result.Error != nil {
		log.Printf("Error purging verification codes: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d verification codes", result.RowsAffected)
	}
}

func reminderSubject(schedule *models.Schedule) string {
	return fmt.Sprintf("Reminder: upcoming lesson - %s", schedule.Class.Title)
}

func reminderBody(schedule *models.Schedule) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your lesson starting in one hour.</p>
		<ul>
			<li><strong>Class:</strong> %s</li>
			<li><strong>Tutor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Zoom link: %s</p>
	`, schedule.Student.Name, schedule.Class.Title, schedule.Class.TutorName,
		schedule.Date, schedule.Time, schedule.ZoomLink)
}

package events

import "TickerBrief/internal/models"

const NewsletterSchedule = "newsletter-schedule"

// Event is the envelope delivered through the queue. ID doubles as the run
// id, so a redelivered event resumes the same run instead of starting a
// fresh one.
type Event struct {
	ID   string                   `json:"id"`
	Name string                   `json:"name"`
	Data models.NewsletterRequest `json:"data"`
}

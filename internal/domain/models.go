// Package domain defines the persistence models for contact messages and
// portfolio projects. These types are mapped with GORM and form the core
// data layer of the portfolio backend.
package domain

import (
	"strings"
	"time"
)

// Message represents one inbound contact-form submission. Rows are created
// by the contact pipeline and, apart from the read flag, never mutated
// afterwards.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Name / Email / Subject / Body: the four required form fields, stored
//     trimmed; Email is additionally lower-cased.
//   - IPAddress: origin network address as text (45 chars fits IPv6).
//   - UserAgent: client User-Agent string, free text, may be empty.
//   - SpamScore: heuristic risk value in [0,1]; gates notification only.
//   - IsRead: operator-facing read flag, defaults false.
//   - CreatedAt: set at persistence time, UTC.
type Message struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(120);not null;index"`
	Subject   string    `json:"subject"    gorm:"type:varchar(200);not null"`
	Body      string    `json:"message"    gorm:"type:text;not null"`
	IPAddress string    `json:"-"          gorm:"type:varchar(45)"`
	UserAgent string    `json:"-"          gorm:"type:text"`
	SpamScore float64   `json:"-"          gorm:"not null;default:0"`
	IsRead    bool      `json:"is_read"    gorm:"not null;default:false"`
	CreatedAt time.Time `json:"date_sent"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Preview returns at most n runes of the body, with an ellipsis appended
// when truncation occurred. Used by the debug message listing.
func (m Message) Preview(n int) string {
	runes := []rune(m.Body)
	if n <= 0 || len(runes) <= n {
		return m.Body
	}
	return string(runes[:n]) + "..."
}

// Project represents a portfolio entry. Projects are created by the
// administrative seeding command and are read-only everywhere else.
//
// Technologies is stored as a comma-delimited string; use TechnologyList
// for the derived slice form.
type Project struct {
	ID           uint      `json:"id"           gorm:"primaryKey"`
	Title        string    `json:"title"        gorm:"type:varchar(200);not null;uniqueIndex"`
	Description  string    `json:"description"  gorm:"type:text;not null"`
	Technologies string    `json:"-"            gorm:"type:varchar(500)"`
	GithubURL    string    `json:"github_url"   gorm:"type:varchar(500)"`
	LiveURL      string    `json:"live_url"     gorm:"type:varchar(500)"`
	ImageURL     string    `json:"image_url"    gorm:"type:varchar(500)"`
	Featured     bool      `json:"featured"     gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"-"`
}

// TableName returns the database table name for Project.
func (Project) TableName() string { return "projects" }

// TechnologyList splits the stored comma-delimited technologies string into
// an ordered slice of trimmed tags. An empty string yields an empty slice,
// never nil, so JSON encodes it as [].
func (p Project) TechnologyList() []string {
	if strings.TrimSpace(p.Technologies) == "" {
		return []string{}
	}
	parts := strings.Split(p.Technologies, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

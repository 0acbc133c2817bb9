package models

import (
	"encoding/json"
	"time"
)

const (
	DefaultCategory  = "General"
	DefaultMilestone = "In Progress"

	// UploadDateLayout renders dates as M/D/YYYY.
	UploadDateLayout = "1/2/2006"

	// CreatedAtLayout always prints three fractional digits.
	CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Project struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	GithubURL       string    `json:"github"`
	LiveDemoURL     string    `json:"liveDemo"`
	Milestone       string    `json:"milestone"`
	Media           []string  `json:"media"`
	StudentUsername string    `json:"studentUsername"`
	StudentName     string    `json:"studentName"`
	CreatedAt       time.Time `json:"createdAt"`
	UploadDate      string    `json:"uploadDate"`
}

// NewProject fills defaults for a submission made by owner at time now.
// The ID is left zero; the project store assigns it on append.
func NewProject(owner SessionUser, title, description, category, github, liveDemo, milestone string, media []string, now time.Time) Project {
	if category == "" {
		category = DefaultCategory
	}
	if milestone == "" {
		milestone = DefaultMilestone
	}
	if media == nil {
		media = []string{}
	}
	uploadDate := now.Local().Format(UploadDateLayout)
	now = now.UTC().Truncate(time.Millisecond)
	return Project{
		Title:           title,
		Description:     description,
		Category:        category,
		GithubURL:       github,
		LiveDemoURL:     liveDemo,
		Milestone:       milestone,
		Media:           media,
		StudentUsername: owner.Username,
		StudentName:     owner.Name,
		CreatedAt:       now,
		UploadDate:      uploadDate,
	}
}

type projectJSON Project

// MarshalJSON writes createdAt as UTC with millisecond precision.
func (p Project) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		projectJSON
		CreatedAt string `json:"createdAt"`
	}{projectJSON(p), p.CreatedAt.UTC().Format(CreatedAtLayout)})
}

func (p *Project) UnmarshalJSON(data []byte) error {
	aux := struct {
		*projectJSON
		CreatedAt string `json:"createdAt"`
	}{projectJSON: (*projectJSON)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt == "" {
		p.CreatedAt = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339, aux.CreatedAt)
	if err != nil {
		return err
	}
	p.CreatedAt = t.UTC()
	return nil
}

package athletes

import "time"

type Athlete struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Sport       string     `json:"sport"`
	Team        string     `json:"team,omitempty"`
	Position    string     `json:"position,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

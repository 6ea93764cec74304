package model

// Curriculum content is static JSON shipped with the server; these types are
// the schema it is validated against at load time, not database tables.

type CurriculumActivity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    int          `json:"duration"` // minutes
	Difficulty  int          `json:"difficulty"`
	Order       int          `json:"order"`
	Tags        []string     `json:"tags,omitempty"`
}

type CurriculumWeek struct {
	ID          string               `json:"id"` // "week-1" .. "week-8"
	Level       CEFRLevel            `json:"level"`
	WeekNumber  int                  `json:"weekNumber"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Objectives  []string             `json:"objectives"`
	// EstimatedTime is the sum the content team publishes, not a derived value.
	EstimatedTime int                  `json:"estimatedTime"` // minutes
	Order         int                  `json:"order"`
	Activities    []CurriculumActivity `json:"activities"`
}

package types

type EducationTopic struct {
  Title       string          `json:"title"`
  Summary     string          `json:"summary,omitempty"`
  Points      []string        `json:"points"`
}

type EducationSection struct {
  ID          string              `json:"id"`
  Title       string              `json:"title"`
  Description string              `json:"description,omitempty"`
  Points      []string            `json:"points,omitempty"`
  Topics      []EducationTopic    `json:"topics,omitempty"`
}

type EducationContent struct {
  Intro       string              `json:"intro"`
  Sections    []EducationSection  `json:"sections"`
  Closing     string              `json:"closing"`
}

package services

import (
  "github.com/asthmaai/asthmaai-backend/internal/types"
)

type EducationService interface {
  GetContent() types.EducationContent
}

type educationService struct{}

func NewEducationService() EducationService {
  return &educationService{}
}

// GetContent returns a fresh copy each call so callers may not mutate the shared content.
func (es *educationService) GetContent() types.EducationContent {
  out := educationContent
  out.Sections = make([]types.EducationSection, len(educationContent.Sections))
  for i, s := range educationContent.Sections {
    s.Points = append([]string(nil), s.Points...)
    topics := make([]types.EducationTopic, len(s.Topics))
    for j, t := range s.Topics {
      t.Points = append([]string(nil), t.Points...)
      topics[j] = t
    }
    if len(topics) == 0 {
      topics = nil
    }
    s.Topics = topics
    out.Sections[i] = s
  }
  return out
}

var educationContent = types.EducationContent{
  Intro: "Comprehensive information and tips to help you manage your asthma effectively. " +
    "Remember, this information is general guidance - always consult your healthcare provider for personalized advice.",
  Sections: []types.EducationSection{
    {
      ID:          "emergency",
      Title:       "Emergency Action",
      Description: "Seek emergency medical care immediately if you experience:",
      Points: []string{
        "Severe difficulty breathing",
        "Blue lips or fingernails",
        "Unable to speak in full sentences",
        "Quick-relief inhaler not helping",
      },
    },
    {
      ID:    "daily-management",
      Title: "Daily Management",
      Points: []string{
        "Take medications as prescribed",
        "Monitor and record your symptoms",
        "Avoid known triggers",
        "Keep your rescue inhaler nearby",
        "Follow your asthma action plan",
      },
    },
    {
      ID:    "triggers",
      Title: "Common Triggers",
      Topics: []types.EducationTopic{
        {
          Title:  "Environmental",
          Points: []string{"Pollen and mold", "Dust mites", "Pet dander", "Air pollution"},
        },
        {
          Title:  "Activities",
          Points: []string{"Exercise", "Cold air exposure", "Strong emotions", "Respiratory infections"},
        },
      },
    },
    {
      ID:    "medications",
      Title: "Understanding Medications",
      Topics: []types.EducationTopic{
        {
          Title:   "Controller Medications",
          Summary: "Taken daily to prevent symptoms and reduce inflammation",
          Points:  []string{"Inhaled corticosteroids", "Long-acting beta agonists", "Combination inhalers"},
        },
        {
          Title:   "Quick-Relief Medications",
          Summary: "Used for immediate relief of symptoms",
          Points:  []string{"Short-acting beta agonists", "Rescue inhalers", "Nebulizer treatments"},
        },
      },
    },
    {
      ID:    "lifestyle",
      Title: "Lifestyle Management",
      Topics: []types.EducationTopic{
        {
          Title: "Home Environment",
          Points: []string{
            "Use HEPA air purifiers",
            "Maintain humidity between 30-50%",
            "Vacuum regularly with a HEPA filter",
            "Use allergen-proof bed covers",
            "Remove carpets if possible",
            "Keep pets out of bedrooms",
          },
        },
        {
          Title: "Daily Habits",
          Points: []string{
            "Monitor air quality",
            "Exercise in appropriate conditions",
            "Practice stress management",
            "Maintain a healthy diet",
            "Stay hydrated",
            "Get enough sleep",
          },
        },
      },
    },
  },
  Closing: "Need More Help? Our AI assistant can provide more detailed information and answer specific questions about asthma management.",
}

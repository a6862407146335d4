package model

// SeedEvents returns the events every new page starts with, in display order.
func SeedEvents() []Event {
	return []Event{
		{
			Title:       "Music Fest 2024",
			Date:        "2024-11-15",
			Location:    "Los Angeles, CA",
			Description: "Enjoy live music, food, and fun!",
			Image:       "https://cdn.pixabay.com/photo/2023/02/23/10/16/ai-generated-7808455_960_720.jpg",
			User:        "John Doe",
			Deadline:    "2024-11-10",
			IsExpired:   false,
		},
		{
			Title:       "Expired Event",
			Date:        "2024-10-15",
			Location:    "New York, NY",
			Description: "This is an expired event example.",
			User:        "Jane Doe",
			Deadline:    "2024-10-01",
			IsExpired:   true,
		},
	}
}

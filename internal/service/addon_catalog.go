package service

import "spryte/internal/contract"

// addonCatalog is the static addon registry. Server code treats it as
// read-only; per-user state is only the list of enabled ids.
var addonCatalog = []contract.Addon{
	{
		ID:             "common",
		Name:           "Common",
		Description:    "Essential tools available to all users.",
		Icon:           "Sparkles",
		IsFree:         true,
		IsAlwaysActive: true,
		Features: []string{
			"Quick date/time insertion",
			"Reminder scheduling",
			"Drawing tools",
		},
		Templates: []contract.AddonTemplate{
			{
				ID:          "now",
				Name:        "Now",
				Description: "Insert current date and time",
				Icon:        "Clock",
				Pattern:     "@Now",
				IsInline:    true,
			},
		},
		Actions: []contract.AddonAction{
			{
				ID:          "reminder",
				Name:        "Reminder",
				Description: "Set a reminder for a specific date/time",
				Icon:        "Bell",
				Pattern:     "@Reminder",
				Template:    "🔔 Reminder: [MM/DD/YYYY] [HH:MM AM/PM] - \"Your reminder text here\"",
			},
		},
		UIComponents: []contract.AddonUIComponent{
			{
				ID:          "drawing",
				Name:        "Drawing",
				Description: "Draw shapes on the canvas",
				Icon:        "Pencil",
				Type:        "dropdown",
				Items: []contract.AddonUIItem{
					{ID: "line", Name: "Line", Icon: "Minus", ShapeType: "line"},
					{ID: "arrow", Name: "Arrow", Icon: "ArrowRight", ShapeType: "arrow"},
					{ID: "circle", Name: "Circle", Icon: "Circle", ShapeType: "circle"},
					{ID: "rectangle", Name: "Rectangle", Icon: "Square", ShapeType: "rectangle"},
					{ID: "triangle", Name: "Triangle", Icon: "Triangle", ShapeType: "triangle"},
				},
			},
		},
	},
	{
		ID:          "class_notes",
		Name:        "Class Notes",
		Description: "Specialized tools for taking lecture notes and studying.",
		Icon:        "GraduationCap",
		IsFree:      true,
		Features: []string{
			"Lecture capture templates",
			"Auto-summarization for study guides",
			"Flashcard generation",
		},
		Templates: []contract.AddonTemplate{
			{
				ID:          "class_note",
				Name:        "Class Note",
				Description: "A structured template for lecture notes",
				Icon:        "FileText",
				Content:     "<p>📚 <strong>Class Note</strong></p><p></p><p>📅 <strong>Date:</strong> </p><p>📖 <strong>Subject:</strong> </p><p>👨‍🏫 <strong>Instructor:</strong> </p><p></p><hr><p></p><p><strong>Key Topics</strong></p><ul><li><p></p></li></ul><p></p><p><strong>Notes</strong></p><p></p><p></p><p><strong>Questions</strong></p><ul><li><p></p></li></ul><p></p><p><strong>Action Items</strong></p><ul><li><p>☐ </p></li></ul>",
			},
		},
		Actions: []contract.AddonAction{},
	},
	{
		ID:          "work",
		Name:        "Work",
		Description: "Professional tools for meetings, projects, and workplace productivity.",
		Icon:        "Briefcase",
		IsFree:      true,
		Features: []string{
			"Meeting notes templates",
			"Action item tracking",
		},
		Templates: []contract.AddonTemplate{
			{
				ID:          "meeting_notes",
				Name:        "Meeting Notes",
				Description: "A structured template for capturing meeting discussions",
				Icon:        "Users",
				Content:     "<h1>📋 Meeting Notes</h1><p></p><p>📅 <strong>Date:</strong> </p><p>📍 <strong>Location:</strong> </p><p></p><p><strong>Attendees</strong></p><ul><li><p></p></li></ul><p></p><hr><p></p><p><strong>Agenda</strong></p><ol><li><p></p></li></ol><p></p><p><strong>Notes:</strong></p><p></p><p></p><p><strong>Action Items</strong></p><ul><li><p>☐ </p></li></ul>",
			},
		},
		Actions: []contract.AddonAction{},
	},
}

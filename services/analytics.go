package services

import (
	"fmt"
	"sort"
	"time"

	"minerva/models"
)

// Analytics values are recomputed from a collection snapshot on every
// call; nothing here caches or mutates state.

type Stats struct {
	TotalNotes           int                     `json:"total_notes"`
	TotalProjects        int                     `json:"total_projects"`
	LastUpdated          string                  `json:"last_updated"`
	NotesByCategory      map[models.Category]int `json:"notes_by_category"`
	ProjectsByStatus     map[models.Status]int   `json:"projects_by_status"`
	NoteVersioningPct    float64                 `json:"note_versioning_pct"`
	ProjectVersioningPct float64                 `json:"project_versioning_pct"`
}

type Suggestion struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Milestone struct {
	Title       string `json:"title"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

type RoadmapItem struct {
	Project    models.Project `json:"project"`
	Milestones []Milestone    `json:"milestones"`
}

// LastUpdatedNone is the sentinel reported when no notes exist.
const LastUpdatedNone = "none"

func ComputeStats(notes []models.Note, projects []models.Project) Stats {
	stats := Stats{
		TotalNotes:    len(notes),
		TotalProjects: len(projects),
		LastUpdated:   LastUpdatedNone,
		NotesByCategory: map[models.Category]int{
			models.CategoryInProgress: 0,
			models.CategoryNewProject: 0,
			models.CategoryGeneral:    0,
		},
		ProjectsByStatus: map[models.Status]int{
			models.StatusInProgress: 0,
			models.StatusNew:        0,
		},
	}

	var last time.Time
	for _, note := range notes {
		if note.Timestamp.After(last) {
			last = note.Timestamp
		}
		category := note.Category
		if category == "" {
			category = models.CategoryGeneral
		}
		stats.NotesByCategory[category]++
	}
	if !last.IsZero() {
		stats.LastUpdated = last.Format(time.RFC3339)
	}

	for _, project := range projects {
		stats.ProjectsByStatus[project.Status]++
	}

	stats.NoteVersioningPct = versioningPct(len(notes), countVersioned(notes, nil))
	stats.ProjectVersioningPct = versioningPct(len(projects), countVersioned(nil, projects))
	return stats
}

// Suggestions evaluates the advice rules in fixed priority order. Rules
// are independent, several may fire at once; when none fires the single
// fallback suggestion is returned.
func Suggestions(notes []models.Note, projects []models.Project) []Suggestion {
	stats := ComputeStats(notes, projects)
	inProgressNotes := stats.NotesByCategory[models.CategoryInProgress]
	inProgressProjects := stats.ProjectsByStatus[models.StatusInProgress]
	newProjects := stats.ProjectsByStatus[models.StatusNew]

	var suggestions []Suggestion

	if inProgressNotes == 0 && stats.TotalNotes > 0 {
		suggestions = append(suggestions, Suggestion{
			Type: "warning",
			Text: `You have no notes categorized as "in-progress projects". Consider organizing your notes better.`,
		})
	}
	if stats.NoteVersioningPct < 30 && stats.TotalNotes >= 3 {
		suggestions = append(suggestions, Suggestion{
			Type: "info",
			Text: fmt.Sprintf("Only %.0f%% of your notes have multiple versions. Consider updating your notes regularly.", stats.NoteVersioningPct),
		})
	}
	if inProgressProjects > newProjects && inProgressProjects >= 3 {
		suggestions = append(suggestions, Suggestion{
			Type: "warning",
			Text: fmt.Sprintf("You have %d projects in progress. Consider completing some of them before starting new ones.", inProgressProjects),
		})
	}
	if stats.TotalProjects > 0 {
		suggestions = append(suggestions, Suggestion{
			Type: "success",
			Text: "Consider creating a roadmap for your projects, defining milestones and objectives.",
		})
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, Suggestion{
			Type: "success",
			Text: "Great work! Your organization looks effective. Keep it up!",
		})
	}
	return suggestions
}

// Roadmap annotates each project with the fixed milestone heuristic,
// in-progress projects first (stable otherwise).
func Roadmap(projects []models.Project) []RoadmapItem {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Status == models.StatusInProgress && sorted[j].Status != models.StatusInProgress
	})

	items := make([]RoadmapItem, 0, len(sorted))
	for _, project := range sorted {
		inProgress := project.Status == models.StatusInProgress
		items = append(items, RoadmapItem{
			Project: project,
			Milestones: []Milestone{
				{
					Title:       "Planning",
					Completed:   inProgress,
					Description: "Define the objectives and the resources required",
				},
				{
					Title:       "Development",
					Completed:   inProgress && project.Version > 1,
					Description: "Implement the main features",
				},
				{
					Title:       "Testing",
					Completed:   false,
					Description: "Verify quality and fix problems",
				},
				{
					Title:       "Release",
					Completed:   false,
					Description: "Finalize and ship the project",
				},
			},
		})
	}
	return items
}

func countVersioned(notes []models.Note, projects []models.Project) int {
	count := 0
	for _, note := range notes {
		if note.Version > 1 {
			count++
		}
	}
	for _, project := range projects {
		if project.Version > 1 {
			count++
		}
	}
	return count
}

func versioningPct(total, versioned int) float64 {
	if total == 0 {
		return 0
	}
	return float64(versioned) / float64(total) * 100
}

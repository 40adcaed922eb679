package qualification

import (
	"math/rand"
	"strings"
)

// Expertise values offered on the demo setup step.
var Expertises = []string{"Developer", "Video Editor", "Designer", "Marketing", "Writing", "General"}

func IsExpertise(value string) bool {
	for _, e := range Expertises {
		if e == value {
			return true
		}
	}
	return false
}

// BuildSkills turns the chosen expertise and a comma separated list of
// extra skills into the stored skill list.
func BuildSkills(expertise, extra string) []string {
	skills := []string{expertise}
	seen := map[string]struct{}{expertise: {}}
	for _, s := range strings.Split(extra, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		skills = append(skills, s)
	}
	return skills
}

type DemoCategory string

const (
	DemoDeveloper   DemoCategory = "developer"
	DemoVideoEditor DemoCategory = "video-editor"
	DemoDesigner    DemoCategory = "designer"
	DemoMarketing   DemoCategory = "marketing"
	DemoWriting     DemoCategory = "writing"
	DemoGeneral     DemoCategory = "general"
)

var demoOrder = []struct {
	skill    string
	category DemoCategory
}{
	{"developer", DemoDeveloper},
	{"video editor", DemoVideoEditor},
	{"designer", DemoDesigner},
	{"marketing", DemoMarketing},
	{"writing", DemoWriting},
}

// CategoryForSkills is a case-insensitive membership check, in a fixed order.
func CategoryForSkills(skills []string) DemoCategory {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[strings.ToLower(s)] = struct{}{}
	}
	for _, d := range demoOrder {
		if _, ok := have[d.skill]; ok {
			return d.category
		}
	}
	return DemoGeneral
}

type DemoTask struct {
	Category    DemoCategory `json:"category"`
	Title       string       `json:"title"`
	Task        string       `json:"task"`
	Deliverable string       `json:"deliverable"`
}

var demoTasks = map[DemoCategory]DemoTask{
	DemoDeveloper: {
		Title:       "Developer Demo Task",
		Task:        "Build a small functional web application, such as a mini CRUD app with basic validation and success/error states.",
		Deliverable: "GitHub repository link and, if possible, a live demo URL.",
	},
	DemoVideoEditor: {
		Title:       "Video Editor Demo Task",
		Task:        "Edit a short video from raw footage with basic cuts, transitions, background music and at least one title overlay.",
		Deliverable: "Link to the final video and a short note on tools used.",
	},
	DemoDesigner: {
		Title:       "Designer Demo Task",
		Task:        "Design a landing page screen with a hero section, at least 2 additional sections and clear CTAs.",
		Deliverable: "Figma or design link and a short explanation of your decisions.",
	},
	DemoMarketing: {
		Title:       "Marketing Demo Task",
		Task:        "Prepare a simple campaign plan for any product or service, outlining channels and strategy.",
		Deliverable: "Link to your document or slides summarizing your campaign.",
	},
	DemoWriting: {
		Title:       "Writing Demo Task",
		Task:        "Write a short piece (article, blog post or landing page copy) with introduction, body and conclusion.",
		Deliverable: "Document link or the complete text pasted in your submission.",
	},
	DemoGeneral: {
		Title:       "Demo Task",
		Task:        "Share a work sample you can complete within a few hours and explain which skills it demonstrates.",
		Deliverable: "Link to your work and a brief description.",
	},
}

// DemoTaskFor returns the prompt shown to a worker with the given skills.
func DemoTaskFor(skills []string) DemoTask {
	category := CategoryForSkills(skills)
	task := demoTasks[category]
	task.Category = category
	return task
}

// DemoScorer grades a demo task submission.
type DemoScorer interface {
	Score(category DemoCategory, submission string) int
}

const (
	MinDemoScore = 70
	MaxDemoScore = 100
)

// RandomScorer returns a uniform score in [MinDemoScore, MaxDemoScore].
type RandomScorer struct{}

func (RandomScorer) Score(DemoCategory, string) int {
	return MinDemoScore + rand.Intn(MaxDemoScore-MinDemoScore+1)
}

// FixedScorer always returns the same score. Used in tests.
type FixedScorer int

func (f FixedScorer) Score(DemoCategory, string) int {
	return int(f)
}

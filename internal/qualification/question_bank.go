package qualification

// SetKey identifies one of the fixed quiz banks.
type SetKey string

const (
	SetDev       SetKey = "dev"
	SetDesign    SetKey = "design"
	SetContent   SetKey = "content"
	SetMarketing SetKey = "marketing"
	SetGeneral   SetKey = "general"
)

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"-"`
}

var questionSets = map[SetKey][]Question{
	SetDev: {
		{
			Question:      "In React, which hook is used to manage component state?",
			Options:       []string{"useEffect", "useState", "useMemo", "useRef"},
			CorrectAnswer: 1,
		},
		{
			Question:      "In Node.js, which object is used to handle HTTP requests?",
			Options:       []string{"http.Server", "http.Request", "http.Client", "http.Handler"},
			CorrectAnswer: 0,
		},
		{
			Question:      "Which HTTP status code means 'Not Found'?",
			Options:       []string{"200", "301", "404", "500"},
			CorrectAnswer: 2,
		},
	},
	SetDesign: {
		{
			Question:      "Which principle means 'space around elements'?",
			Options:       []string{"Hierarchy", "Contrast", "White space", "Alignment"},
			CorrectAnswer: 2,
		},
		{
			Question:      "Which tool is best suited for UI design?",
			Options:       []string{"Figma", "Excel", "VS Code", "Slack"},
			CorrectAnswer: 0,
		},
		{
			Question: "In video editing, what does FPS stand for?",
			Options: []string{
				"Frames Per Second",
				"First Primary Shot",
				"Fast Play Speed",
				"Frame Processing System",
			},
			CorrectAnswer: 0,
		},
	},
	SetContent: {
		{
			Question: "What is the main goal of a blog article?",
			Options: []string{
				"Entertain only",
				"Provide value to the reader",
				"Use as many keywords as possible",
				"Write as long as possible",
			},
			CorrectAnswer: 1,
		},
		{
			Question:      "Which is MOST important for good web copy?",
			Options:       []string{"Fancy words", "Short paragraphs", "Slang", "All caps text"},
			CorrectAnswer: 1,
		},
	},
	SetMarketing: {
		{
			Question: "What does SEO stand for?",
			Options: []string{
				"Search Engine Optimization",
				"Social Engagement Outreach",
				"Simple Email Operations",
				"Sales Engagement Objective",
			},
			CorrectAnswer: 0,
		},
		{
			Question:      "Which metric tells you how many people clicked your ad?",
			Options:       []string{"CTR", "CPC", "ROI", "ARPU"},
			CorrectAnswer: 0,
		},
	},
	SetGeneral: {
		{
			Question:      "Which of these is MOST important when working remotely?",
			Options:       []string{"Fast typing", "Clear communication", "Fancy laptop", "Dark mode"},
			CorrectAnswer: 1,
		},
		{
			Question: "If you are stuck on a task, what should you do?",
			Options: []string{
				"Ignore it",
				"Guess and submit",
				"Ask for clarification from the manager",
				"Wait for someone to notice",
			},
			CorrectAnswer: 2,
		},
	},
}

// Skill lists are checked in this order, first match wins.
var skillSets = []struct {
	key    SetKey
	skills []string
}{
	{SetDev, []string{"React", "Node.js", "Python", "Java", "PHP", "Angular", "Vue.js"}},
	{SetDesign, []string{"UI/UX Design", "Graphic Design", "Adobe Premiere", "After Effects", "Video Editing"}},
	{SetContent, []string{"Content Writing"}},
	{SetMarketing, []string{"Digital Marketing", "SEO"}},
}

// Questions returns a copy of the set so callers cannot mutate the bank.
func Questions(key SetKey) []Question {
	set := questionSets[key]
	out := make([]Question, len(set))
	copy(out, set)
	return out
}

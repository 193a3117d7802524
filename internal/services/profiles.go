package services

// CharacterAffinity describes a character archetype the viewer connects with.
type CharacterAffinity struct {
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// ViewerProfile is the static classification record for a primary genre.
type ViewerProfile struct {
	ViewerType       string
	Description      string
	Themes           []string
	RelatedInterests []string
	CharacterTypes   []CharacterAffinity
}

// profileFor maps a primary genre name (catalog naming) to its profile,
// falling back to the eclectic profile for anything unmapped.
func profileFor(primaryGenre string) ViewerProfile {
	if profile, ok := viewerProfiles[primaryGenre]; ok {
		return profile
	}
	return eclecticProfile
}

var viewerProfiles = map[string]ViewerProfile{
	"Action & Adventure": {
		ViewerType:       "Thrill Seeker",
		Description:      "Based on your watch history, you gravitate toward fast-paced, adrenaline-fueled content with bold characters and high stakes. You enjoy stories that keep you on the edge of your seat.",
		Themes:           []string{"Action", "Adventure", "Heroism", "Survival", "Excitement"},
		RelatedInterests: []string{"Action Films", "Adventure Games", "Superhero Comics", "Survival Literature"},
		CharacterTypes: []CharacterAffinity{
			{Type: "Bold Heroes", Icon: "🦸", Color: "#1a237e", Description: "You connect with courageous protagonists who take decisive action in the face of danger."},
			{Type: "Strategic Masterminds", Icon: "🧠", Color: "#b71c1c", Description: "You appreciate characters who can outsmart their opponents using intelligence and planning."},
			{Type: "Reluctant Champions", Icon: "👤", Color: "#ffc107", Description: "You resonate with ordinary people who rise to extraordinary challenges when needed."},
		},
	},
	"Comedy": {
		ViewerType:       "Comedy Enthusiast",
		Description:      "Your viewing preferences show you appreciate content that brings joy and laughter, with clever writing and relatable situations. You enjoy shows that offer both humor and heart.",
		Themes:           []string{"Humor", "Satire", "Relationships", "Social Commentary", "Life Lessons"},
		RelatedInterests: []string{"Comedy Specials", "Humorous Essays", "Satire", "Sitcom Analysis"},
		CharacterTypes: []CharacterAffinity{
			{Type: "Witty Underdogs", Icon: "😏", Color: "#1a237e", Description: "You connect with characters who use humor as a coping mechanism while facing life's challenges."},
			{Type: "Lovable Eccentrics", Icon: "🤪", Color: "#b71c1c", Description: "You enjoy unique, quirky characters who march to their own beat and bring color to their world."},
			{Type: "Ensemble Players", Icon: "👥", Color: "#ffc107", Description: "You appreciate well-developed friend groups or families where the comedy comes from their dynamics."},
		},
	},
	"Sci-Fi & Fantasy": {
		ViewerType:       "Imagination Explorer",
		Description:      "Based on your watch history, you're drawn to imaginative worlds, speculative concepts, and unique visions of possible futures or alternate realities. You value creativity and big ideas in storytelling.",
		Themes:           []string{"World-building", "Technology", "Magic", "Human Potential", "Ethical Dilemmas"},
		RelatedInterests: []string{"Speculative Fiction", "Role-playing Games", "Futurism", "Scientific Discovery"},
		CharacterTypes: []CharacterAffinity{
			{Type: "Visionary Innovators", Icon: "💡", Color: "#1a237e", Description: "You connect with forward-thinking characters who push boundaries and explore new possibilities."},
			{Type: "Ethical Navigators", Icon: "⚖️", Color: "#b71c1c", Description: "You appreciate characters who wrestle with moral questions in unfamiliar or complex situations."},
			{Type: "Adaptive Survivors", Icon: "🛡️", Color: "#ffc107", Description: "You resonate with characters who show resilience and ingenuity in strange or challenging environments."},
		},
	},
	"Drama": {
		ViewerType:       "Character-driven Explorer",
		Description:      "Based on your watch history, you gravitate toward shows with complex characters and narrative depth. You enjoy exploring the human condition through storytelling and prefer shows that make you think.",
		Themes:           []string{"Character Development", "Moral Ambiguity", "Psychological Depth", "Relationships", "Ethical Dilemmas"},
		RelatedInterests: []string{"Literary Fiction", "Character Studies", "Indie Films", "Psychological Thrillers"},
		CharacterTypes: []CharacterAffinity{
			{Type: "Complex Protagonists", Icon: "👤", Color: "#1a237e", Description: "You gravitate toward morally ambiguous main characters who undergo significant personal growth."},
			{Type: "Enigmatic Antagonists", Icon: "👻", Color: "#b71c1c", Description: "You appreciate villains with compelling backstories and understandable motivations."},
			{Type: "Intellectual Mentors", Icon: "🧠", Color: "#ffc107", Description: "You respond to wise, thoughtful characters who challenge others to grow intellectually."},
		},
	},
	"Crime": {
		ViewerType:       "Mystery Analyzer",
		Description:      "Your watch history reveals you enjoy piecing together clues and analyzing complex situations with high stakes and moral questions. You're drawn to narratives that challenge your problem-solving skills.",
		Themes:           []string{"Justice", "Morality", "Suspense", "Investigation", "Truth"},
		RelatedInterests: []string{"Mystery Novels", "True Crime Podcasts", "Puzzles", "Investigative Journalism"},
		CharacterTypes: []CharacterAffinity{
			{Type: "Brilliant Detectives", Icon: "🔍", Color: "#1a237e", Description: "You connect with observant, analytical characters who see what others miss."},
			{Type: "Flawed Justice-Seekers", Icon: "⚖️", Color: "#b71c1c", Description: "You appreciate characters driven by a strong moral compass, even when they themselves struggle."},
			{Type: "Procedural Experts", Icon: "📋", Color: "#ffc107", Description: "You resonate with methodical professionals who approach problems systematically."},
		},
	},
	"Documentary": {
		ViewerType:       "Knowledge Seeker",
		Description:      "Your viewing choices suggest you value learning about the real world and expanding your understanding of different subjects, people, and phenomena. You appreciate factual content that informs and challenges.",
		Themes:           []string{"Education", "History", "Society", "Nature", "Human Experience"},
		RelatedInterests: []string{"Non-fiction Books", "Podcasts", "Museums", "Cultural Events"},
		CharacterTypes: []CharacterAffinity{
			{Type: "Revolutionary Thinkers", Icon: "💭", Color: "#1a237e", Description: "You're drawn to historical or contemporary figures who changed paradigms with new ideas."},
			{Type: "Passionate Experts", Icon: "👨‍🔬", Color: "#b71c1c", Description: "You connect with specialists who deeply understand their field and communicate with enthusiasm."},
			{Type: "Cultural Witnesses", Icon: "👁️", Color: "#ffc107", Description: "You appreciate individuals who observe, document, and share important events or phenomena."},
		},
	},
}

var eclecticProfile = ViewerProfile{
	ViewerType:       "Eclectic Viewer",
	Description:      "Your watch history shows diverse tastes that span multiple genres, demonstrating an appreciation for various types of storytelling and content. You value variety and are open to different viewing experiences.",
	Themes:           []string{"Variety", "Character", "Storytelling", "Emotional Range", "Versatility"},
	RelatedInterests: []string{"Multi-genre Fiction", "Varied Media", "Cultural Exploration", "Artistic Diversity"},
	CharacterTypes: []CharacterAffinity{
		{Type: "Adaptable Protagonists", Icon: "🔄", Color: "#1a237e", Description: "You connect with versatile characters who thrive in different situations and settings."},
		{Type: "Genre-Spanning Icons", Icon: "🌟", Color: "#b71c1c", Description: "You appreciate characters who effectively blend elements from different storytelling traditions."},
		{Type: "Unexpected Heroes", Icon: "🦸", Color: "#ffc107", Description: "You're drawn to characters who defy expectations and conventional categorization."},
	},
}

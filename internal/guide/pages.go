package guide

func defaultPages() []Page {
	return []Page{
		{
			Name:       "HomePage",
			Overview:   "Main dashboard with quick access to wellness features",
			Tags:       []string{"home", "dashboard", "mood", "quick access", "start"},
			NavigateTo: []string{"ProfilePage", "MindToolsPage", "JournalPage"},
			Actions:    []string{"Set mood emoji", "Access quick shortcuts", "See recommended content"},
			HowToReach: "This is the default page after login or app launch",
		},
		{
			Name:       "ProfilePage",
			Overview:   "Personal profile with mood tracking, streaks, and reminders",
			Tags:       []string{"profile", "mood tracking", "streak", "reminders", "progress", "check-in"},
			NavigateTo: []string{"HomePage", "GamificationPage", "AccountPage"},
			Actions:    []string{"View mood journey", "Set check-in reminders", "View achievements", "Edit profile"},
			HowToReach: "From HomePage, tap the user avatar at the top-left corner",
		},
		{
			Name:       "MindToolsPage",
			Overview:   "Quick wellness tools - breathing, grounding, music, affirmations",
			Tags:       []string{"stress relief", "breathing", "grounding", "music", "tools", "anxiety", "calm"},
			NavigateTo: []string{"BreathingPage", "GroundingPage", "MusicTherapyPage", "HomePage"},
			Actions:    []string{"Start breathing exercise", "Use 5-4-3-2-1 grounding", "Play therapy music", "Read affirmations"},
			HowToReach: "From HomePage, tap Mind Tools shortcut",
		},
		{
			Name:       "JournalPage",
			Overview:   "Create and manage journal entries with text, voice, and photos",
			Tags:       []string{"journal", "voice", "entries", "memories", "reflection", "write"},
			NavigateTo: []string{"HomePage", "CreateJournalPage", "MindToolsPage"},
			Actions:    []string{"Create new entry", "Record voice note", "Attach photo", "Share journal", "Delete entries"},
			HowToReach: "From HomePage, tap Journal shortcut",
		},
		{
			Name:       "BreathingPage",
			Overview:   "Guided breathing exercises with animation and timer",
			Tags:       []string{"breathing", "relaxation", "anxiety", "stress", "meditation", "calm down"},
			NavigateTo: []string{"MindToolsPage"},
			Actions:    []string{"Start breathing", "Pause session", "View timer", "Exit exercise"},
			HowToReach: "From MindToolsPage, tap Breathing Timer",
		},
		{
			Name:       "GroundingPage",
			Overview:   "5-4-3-2-1 grounding technique using five senses",
			Tags:       []string{"grounding", "anxiety", "present", "senses", "mindfulness", "5-4-3-2-1"},
			NavigateTo: []string{"MindToolsPage"},
			Actions:    []string{"Name 5 things you see", "Feel 4 things", "Hear 3 things", "Smell 2 things", "Taste 1 thing"},
			HowToReach: "From MindToolsPage, tap 5-4-3-2-1 Grounding",
		},
		{
			Name:       "MusicTherapyPage",
			Overview:   "Curated therapy music library with categories (Sleep, Focus, Alone)",
			Tags:       []string{"music", "therapy", "relaxation", "sleep", "focus", "calm"},
			NavigateTo: []string{"MindToolsPage"},
			Actions:    []string{"Browse tracks", "Play music", "Add to favorites", "Create playlist"},
			HowToReach: "From MindToolsPage, tap Music Therapy",
		},
		{
			Name:       "GamificationPage",
			Overview:   "Track achievements, badges, and consistency percentage",
			Tags:       []string{"achievements", "badges", "progress", "gamification", "consistency", "motivation"},
			NavigateTo: []string{"ProfilePage"},
			Actions:    []string{"View badges", "See consistency %", "Create custom badge", "Track weekly progress"},
			HowToReach: "From ProfilePage, tap My Progress card",
		},
		{
			Name:       "SubscriptionPage",
			Overview:   "Premium plans - 3-day free trial, $9.99/month or $79.99/year",
			Tags:       []string{"subscription", "premium", "trial", "upgrade", "pricing", "features"},
			NavigateTo: []string{"ProfilePage"},
			Actions:    []string{"Start free trial", "Subscribe monthly", "Subscribe yearly", "View features"},
			HowToReach: "From ProfilePage, tap Subscription section",
		},
		{
			Name:       "CreateJournalPage",
			Overview:   "Create journal entry with mood selector, text, voice, and photos",
			Tags:       []string{"create journal", "voice journaling", "new entry", "photos"},
			NavigateTo: []string{"JournalPage"},
			Actions:    []string{"Select mood", "Write text", "Record voice", "Add photo", "Save entry", "Lock entry"},
			HowToReach: "From JournalPage, tap New Entry button",
		},
		{
			Name:       "AccountPage",
			Overview:   "Manage account settings and personal information",
			Tags:       []string{"account", "settings", "email", "password", "delete"},
			NavigateTo: []string{"ProfilePage"},
			Actions:    []string{"Edit profile picture", "Update name", "Change email", "Delete account"},
			HowToReach: "From ProfilePage, tap Settings",
		},
	}
}

package guide

import (
	"fmt"
	"sort"
	"strings"
)

// Page describes one app screen the guide agent can explain.
type Page struct {
	Name       string   `json:"name"`
	Overview   string   `json:"overview"`
	Tags       []string `json:"tags"`
	NavigateTo []string `json:"navigate_to,omitempty"`
	Actions    []string `json:"actions"`
	HowToReach string   `json:"how_to_reach"`
}

// KnowledgeBase is a static key→text lookup over app pages. It carries
// no session state; answers feed the guide agent's completion call as
// grounding context.
type KnowledgeBase struct {
	pages []Page
}

func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{pages: defaultPages()}
}

func NewKnowledgeBaseWithPages(pages []Page) *KnowledgeBase {
	if len(pages) == 0 {
		pages = defaultPages()
	}
	return &KnowledgeBase{pages: pages}
}

// Pages returns the full page listing.
func (kb *KnowledgeBase) Pages() []Page {
	out := make([]Page, len(kb.pages))
	copy(out, kb.pages)
	return out
}

// Search returns plain-text app info for a query: the best matching
// page rendered for the query's sub-intent (navigate / actions /
// location / general). Empty string means nothing matched.
func (kb *KnowledgeBase) Search(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}

	page, ok := kb.bestMatch(q)
	if !ok {
		return ""
	}

	switch {
	case hasAny(q, "go to", "open", "navigate", "take me", "show me", "visit", "access"):
		return fmt.Sprintf("%s: %s\nHow to reach: %s\nYou can: %s",
			page.Name, page.Overview, page.HowToReach, joinFirst(page.Actions, 2))
	case hasAny(q, "what can i", "how do i", "can i", "actions", "features", "what to do"):
		return fmt.Sprintf("On %s you can: %s\nHow to get there: %s",
			page.Name, strings.Join(page.Actions, "; "), page.HowToReach)
	case hasAny(q, "where", "how to reach", "how to get to", "how to access", "from where"):
		return fmt.Sprintf("To reach %s: %s\n%s", page.Name, page.HowToReach, page.Overview)
	default:
		return fmt.Sprintf("%s: %s\nHow to reach: %s\nKey actions: %s",
			page.Name, page.Overview, page.HowToReach, joinFirst(page.Actions, 3))
	}
}

// bestMatch scores pages by tag, overview and action hits, mirroring
// the app's original ranking: tags weigh 3, overview 2, actions 1.
func (kb *KnowledgeBase) bestMatch(q string) (Page, bool) {
	type scored struct {
		page  Page
		score int
	}
	var results []scored
	for _, page := range kb.pages {
		score := 0
		for _, tag := range page.Tags {
			if strings.Contains(q, tag) || strings.Contains(tag, q) {
				score += 3
			}
		}
		if strings.Contains(strings.ToLower(page.Overview), q) {
			score += 2
		}
		for _, action := range page.Actions {
			if strings.Contains(strings.ToLower(action), q) {
				score++
			}
		}
		if score > 0 {
			results = append(results, scored{page: page, score: score})
		}
	}
	if len(results) == 0 {
		return Page{}, false
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	return results[0].page, true
}

func hasAny(q string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(q, m) {
			return true
		}
	}
	return false
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

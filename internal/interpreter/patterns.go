package interpreter

import (
	"fmt"
	"regexp"
)

// actionPatterns binds one action to its ordered list of match rules. Each
// pattern has zero or one capture group; the first group, when present, is
// the command target.
type actionPatterns struct {
	Action   Action
	Patterns []*regexp.Regexp
}

// Ruleset is the static pattern table plus the action->tool bindings. It is
// built once at startup and shared read-only between interpreter instances;
// nothing mutates it after construction.
type Ruleset struct {
	entries []actionPatterns
	tools   map[Action]string
}

// DefaultTools maps every action to its forgetool subcommand. The "help"
// sentinel never reaches a subprocess.
func DefaultTools() map[Action]string {
	return map[Action]string{
		ActionOrganizeFiles:   "organize",
		ActionMonitorSystem:   "monitor",
		ActionAIMemory:        "memory",
		ActionWebScraping:     "scrape",
		ActionEmailAutomation: "email",
		ActionScheduleTask:    "schedule",
		ActionAnalytics:       "analytics",
		ActionHelp:            "help",
	}
}

// DefaultRuleset compiles the built-in pattern table. It panics only on a
// programming error in the static patterns; NewRuleset is the checked form.
func DefaultRuleset() *Ruleset {
	rs, err := NewRuleset(defaultPatternSources(), DefaultTools())
	if err != nil {
		panic(err)
	}
	return rs
}

// NewRuleset compiles a pattern table and verifies that every action with
// patterns has a tool binding. A missing binding is a configuration bug and
// is rejected at construction time rather than at dispatch time.
func NewRuleset(sources []PatternSource, tools map[Action]string) (*Ruleset, error) {
	rs := &Ruleset{tools: tools}
	for _, src := range sources {
		if _, ok := tools[src.Action]; !ok {
			return nil, fmt.Errorf("action %q has patterns but no tool binding", src.Action)
		}
		ap := actionPatterns{Action: src.Action}
		for _, expr := range src.Patterns {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("pattern %q for action %q: %w", expr, src.Action, err)
			}
			ap.Patterns = append(ap.Patterns, re)
		}
		rs.entries = append(rs.entries, ap)
	}
	return rs, nil
}

// Tool returns the tool identifier bound to an action.
func (rs *Ruleset) Tool(action Action) (string, bool) {
	t, ok := rs.tools[action]
	return t, ok
}

// PatternSource is the uncompiled form of one action's pattern list.
type PatternSource struct {
	Action   Action
	Patterns []string
}

// defaultPatternSources returns the built-in match rules. Inputs are
// lowercased before matching so the patterns are written in lowercase. The
// slice order is the tie-break order.
func defaultPatternSources() []PatternSource {
	return []PatternSource{
		{ActionOrganizeFiles, []string{
			`organize\s+(?:my\s+)?(?:files|downloads|desktop|documents)`,
			`clean\s+up\s+(?:my\s+)?(?:files|downloads|desktop|documents)`,
			`sort\s+(?:my\s+)?(?:files|downloads|desktop|documents)`,
			`arrange\s+(?:my\s+)?(?:files|downloads|desktop|documents)`,
			`organize\s+(?:the\s+)?(?:files\s+in\s+)?(.+)`,
			`clean\s+up\s+(?:the\s+)?(?:files\s+in\s+)?(.+)`,
		}},
		{ActionMonitorSystem, []string{
			`monitor\s+(?:my\s+)?(?:system|computer|mac)`,
			`check\s+(?:my\s+)?(?:system|computer|mac)\s+(?:status|health)`,
			`show\s+(?:my\s+)?(?:system|computer|mac)\s+(?:status|metrics)`,
			`how\s+is\s+(?:my\s+)?(?:system|computer|mac)\s+(?:doing|performing)`,
			`neural\s+engine\s+(?:status|monitor)`,
		}},
		{ActionAIMemory, []string{
			`show\s+(?:my\s+)?(?:ai\s+)?(?:memory|conversations)`,
			`check\s+(?:my\s+)?(?:ai\s+)?(?:memory|conversations)`,
			`ai\s+memory\s+(?:status|info)`,
			`conversation\s+(?:history|log)`,
		}},
		{ActionWebScraping, []string{
			`scrape\s+(?:the\s+)?(?:website|site|page)\s+(.+)`,
			`extract\s+(?:data\s+from\s+)?(?:the\s+)?(?:website|site|page)\s+(.+)`,
			`get\s+(?:data\s+from\s+)?(?:the\s+)?(?:website|site|page)\s+(.+)`,
			`web\s+scrape\s+(.+)`,
		}},
		{ActionEmailAutomation, []string{
			`send\s+(?:an\s+)?(?:email|message)\s+(?:to\s+)?(.+)`,
			`email\s+(.+)`,
			`automate\s+(?:my\s+)?(?:emails|email\s+sending)`,
			`setup\s+(?:email\s+)?(?:automation|workflow)`,
		}},
		{ActionScheduleTask, []string{
			`schedule\s+(?:a\s+)?(?:task|job)\s+(?:for\s+)?(.+)`,
			`set\s+(?:up\s+)?(?:a\s+)?(?:reminder|task)\s+(?:for\s+)?(.+)`,
			`remind\s+(?:me\s+)?(?:to\s+)?(.+)`,
			`automate\s+(?:this\s+)?(?:task|process)`,
		}},
		{ActionAnalytics, []string{
			`show\s+(?:me\s+)?(?:analytics|stats|statistics)`,
			`how\s+(?:many|much)\s+(?:files|emails|tasks)\s+(?:have\s+)?(?:i\s+)?(?:organized|sent|completed)`,
			`performance\s+(?:report|stats)`,
			`usage\s+(?:statistics|stats)`,
		}},
		{ActionHelp, []string{
			`help`,
			`what\s+(?:can\s+)?(?:you\s+)?(?:do|help\s+with)`,
			`how\s+(?:do\s+)?(?:i\s+)?(?:use|work\s+with)\s+(?:this|neuralforge)`,
			`commands?`,
			`options?`,
		}},
	}
}

// Filename: internal/motor/selectors.go
package motor

// roleTable maps a semantic role to its primary selector plus an
// ordered, annotated fallback chain. Fallbacks are tried only when the
// primary is present but not visible; each Reason documents the page
// state the fallback tends to survive.
var roleTable = map[string]SelectorChain{
	"tweet-text": {
		Primary: `[data-testid="tweetText"]`,
		Fallbacks: []Fallback{
			{Selector: `article div[lang]`, Reason: "language-tagged body text"},
			{Selector: `article div[dir="auto"]`, Reason: "auto-direction text node"},
		},
	},
	"reply": {
		Primary: `[data-testid="reply"]`,
		Fallbacks: []Fallback{
			{Selector: `[aria-label*="Reply"]`, Reason: "aria label survives testid rotation"},
			{Selector: `div[role="button"][aria-label*="repl" i]`, Reason: "generic role button"},
		},
	},
	"retweet": {
		Primary: `[data-testid="retweet"]`,
		Fallbacks: []Fallback{
			{Selector: `[aria-label*="Repost"]`, Reason: "post-rebrand aria label"},
			{Selector: `[aria-label*="Retweet"]`, Reason: "legacy aria label"},
		},
	},
	"like": {
		Primary: `[data-testid="like"]`,
		Fallbacks: []Fallback{
			{Selector: `[aria-label*="Like"]`, Reason: "aria label survives testid rotation"},
			{Selector: `div[role="button"] svg[viewBox="0 0 24 24"]`, Reason: "heart icon container"},
		},
	},
	"bookmark": {
		Primary: `[data-testid="bookmark"]`,
		Fallbacks: []Fallback{
			{Selector: `[aria-label*="Bookmark"]`, Reason: "aria label survives testid rotation"},
		},
	},
	"follow": {
		Primary: `[data-testid$="-follow"]`,
		Fallbacks: []Fallback{
			{Selector: `[aria-label^="Follow"]`, Reason: "aria label survives testid rotation"},
			{Selector: `div[role="button"][data-testid*="follow"]`, Reason: "loose testid match"},
		},
	},
	"home": {
		Primary: `[data-testid="AppTabBar_Home_Link"]`,
		Fallbacks: []Fallback{
			{Selector: `a[href="/home"]`, Reason: "stable navigation href"},
			{Selector: `nav a[aria-label="Home"]`, Reason: "aria label in nav rail"},
		},
	},
	"profile": {
		Primary: `[data-testid="AppTabBar_Profile_Link"]`,
		Fallbacks: []Fallback{
			{Selector: `nav a[aria-label="Profile"]`, Reason: "aria label in nav rail"},
		},
	},
	"compose": {
		Primary: `[data-testid="SideNav_NewTweet_Button"]`,
		Fallbacks: []Fallback{
			{Selector: `a[href="/compose/post"]`, Reason: "stable navigation href"},
			{Selector: `[aria-label="Post"]`, Reason: "compose button aria label"},
		},
	},
	"search": {
		Primary: `[data-testid="SearchBox_Search_Input"]`,
		Fallbacks: []Fallback{
			{Selector: `input[placeholder*="Search"]`, Reason: "placeholder text"},
			{Selector: `form[role="search"] input`, Reason: "search landmark"},
		},
	},
}

// Resolve maps a semantic role to its selector chain. Unknown roles
// degrade to treating the input as a raw selector with no fallbacks,
// so the function is total and never errors.
func Resolve(role string) SelectorChain {
	if chain, ok := roleTable[role]; ok {
		return chain
	}
	return SelectorChain{Primary: role}
}

// Roles lists the known semantic roles, for CLI help and validation.
func Roles() []string {
	out := make([]string, 0, len(roleTable))
	for role := range roleTable {
		out = append(out, role)
	}
	return out
}

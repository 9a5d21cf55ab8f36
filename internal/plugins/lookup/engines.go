package lookup

// Engine is a search target. URL holds one %s for the escaped query.
type Engine struct {
	Title string
	URL   string
}

var engines = map[string]Engine{
	"ddg":        {"DuckDuckGo", "https://duckduckgo.com/%s"},
	"crates":     {"crates.io", "https://crates.io/crates/%s"},
	"docs":       {"docs.rs", "https://docs.rs/%s"},
	"rust":       {"Rust std", "https://doc.rust-lang.org/std/?search=%s"},
	"github":     {"GitHub", "https://github.com/search?q=%s"},
	"archwiki":   {"ArchWiki", "https://wiki.archlinux.org/index.php?search=%s"},
	"dictionary": {"Dictionary", "https://www.merriam-webster.com/dictionary/%s"},
	"thesaurus":  {"Thesaurus", "https://www.merriam-webster.com/thesaurus/%s"},
}

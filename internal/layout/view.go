package layout

import "github.com/kk-code-lab/rmenu/internal/search"

// Frame carries the per-pass values the view needs besides the pages.
type Frame struct {
	Prompt string
	// Input is the query as the input formatter rendered it, InputWidth its
	// measured width and Cursor the cell offset of the text cursor inside it.
	Input      string
	InputWidth int
	Cursor     int
	Error      string
}

// Item is one candidate placed on the screen. Width is the number of cells
// the renderer may use, already clipped to the line.
type Item struct {
	Text     string
	X, Y     int
	Width    int
	Selected bool
	Out      bool
}

// View is everything the renderer draws for one frame.
type View struct {
	Prompt      string
	PromptWidth int

	Input      string
	InputX     int
	InputWidth int
	Cursor     int
	Error      string

	Items []Item

	ShowBack bool
	BackX    int
	ShowMore bool
	MoreX    int

	Page  int
	Pages int
}

// NewView lays out the page that holds the selection. page and local are the
// resolved selection; inputWidth is the policy width used to paginate.
func NewView(matched []search.Candidate, pages []Page, page, local, inputWidth int, p Params, f Frame) View {
	v := View{
		Prompt:      f.Prompt,
		PromptWidth: p.Prompt,
		Input:       f.Input,
		InputX:      p.Prompt,
		Cursor:      f.Cursor,
		Error:       f.Error,
		Page:        page,
		Pages:       len(pages),
	}
	full := max(p.Width-p.Prompt, 0)
	if len(pages) == 0 || page < 0 || page >= len(pages) {
		v.InputWidth = full
		return v
	}
	current := pages[page]

	if p.Vertical() {
		v.InputWidth = full
		for i, c := range current.Items(matched) {
			v.Items = append(v.Items, Item{
				Text:     c.Text,
				Y:        i + 1,
				Width:    p.Width,
				Selected: i == local,
				Out:      c.Out,
			})
		}
		return v
	}

	if p.Flex || p.Overrun {
		inputWidth = FlexInputWidth(inputWidth, f.InputWidth, current.Slack)
	}
	switch {
	case p.Overrun:
		v.InputWidth = min(f.InputWidth, full)
	default:
		v.InputWidth = inputWidth
	}

	x := p.Prompt + inputWidth
	if p.RightAlign {
		x += current.Slack
	}
	if page > 0 {
		v.ShowBack = true
		v.BackX = x
		x += p.Back
	} else if p.Policy.Kind == WidthItems {
		x += p.Back
	}

	v.ShowMore = page+1 < len(pages)
	right := p.Width
	if v.ShowMore {
		right -= p.More
		v.MoreX = right
	}
	for i, c := range current.Items(matched) {
		w := max(min(c.Width, right-x), 0)
		v.Items = append(v.Items, Item{
			Text:     c.Text,
			X:        x,
			Width:    w,
			Selected: i == local,
			Out:      c.Out,
		})
		x += w
	}
	return v
}

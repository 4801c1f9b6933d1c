package paging

// Page size options offered by the list views.
var (
	CenterSizes  = []int{10, 20, 50, 100, 200, PageSizeAll}
	PaymentSizes = []int{20, 50, 100, 200}
	DefaultSizes = []int{20, 50, 100, 200, PageSizeAll}
)

// SizeOption is one entry of a page-size selector.
type SizeOption struct {
	Value    int
	Label    string
	Selected bool
}

// SizeOptions renders a selector for sizes with current marked.
func SizeOptions(sizes []int, current int) []SizeOption {
	out := make([]SizeOption, len(sizes))
	for i, s := range sizes {
		out[i] = SizeOption{Value: s, Label: SizeLabel(s), Selected: s == current}
	}
	return out
}

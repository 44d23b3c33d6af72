package category

// Category is the presentation variant of a job's category tag.
type Category int

const (
	Default Category = iota
	Reminder
	Birthday
)

// Descriptor holds what a dashboard card needs to present a category.
type Descriptor struct {
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Accent string `json:"accent"`
}

// Parse maps a raw category tag to its variant. Matching is exact; anything
// unknown is Default.
func Parse(tag string) Category {
	switch tag {
	case "reminder":
		return Reminder
	case "birthday":
		return Birthday
	default:
		return Default
	}
}

func (c Category) String() string {
	switch c {
	case Reminder:
		return "reminder"
	case Birthday:
		return "birthday"
	default:
		return "default"
	}
}

func (c Category) Descriptor() Descriptor {
	switch c {
	case Reminder:
		return Descriptor{Label: "Erinnerung", Icon: "bell", Accent: "#4de3a2"}
	case Birthday:
		return Descriptor{Label: "Geburtstag", Icon: "cake", Accent: "#fdba74"}
	default:
		return Descriptor{Label: "Job", Icon: "clock", Accent: "#7dd3fc"}
	}
}

// Resolve returns the descriptor for a raw category tag.
func Resolve(tag string) Descriptor {
	return Parse(tag).Descriptor()
}

package detection

import "github.com/uiscan/uiscan/internal/imaging"

// ElementType is the closed set of UI element kinds an analyzer can emit.
//
// The spellings are part of the external contract: any substitute producer
// (for example a remote vision model) must emit exactly these values so
// downstream consumers can treat both interchangeably.
type ElementType string

const (
	TypeButton     ElementType = "button"
	TypeText       ElementType = "text"
	TypeHeading    ElementType = "heading"
	TypeInput      ElementType = "input"
	TypeTextarea   ElementType = "textarea"
	TypeSelect     ElementType = "select"
	TypeCheckbox   ElementType = "checkbox"
	TypeRadio      ElementType = "radio"
	TypeSwitch     ElementType = "switch"
	TypeCard       ElementType = "card"
	TypeImage      ElementType = "image"
	TypeContainer  ElementType = "container"
	TypeNavigation ElementType = "navigation"
	TypeForm       ElementType = "form"
	TypeBadge      ElementType = "badge"
	TypeAlert      ElementType = "alert"
	TypeTooltip    ElementType = "tooltip"
	TypeModal      ElementType = "modal"
	TypeDivider    ElementType = "divider"
	TypeBreadcrumb ElementType = "breadcrumb"
	TypeStepper    ElementType = "stepper"
	TypeTabs       ElementType = "tabs"
	TypeAccordion  ElementType = "accordion"
	TypeMenu       ElementType = "menu"
	TypeAvatar     ElementType = "avatar"
	TypeIcon       ElementType = "icon"
	TypeLink       ElementType = "link"
	TypeList       ElementType = "list"
	TypeTable      ElementType = "table"
	TypeProgress   ElementType = "progress"
	TypeSpinner    ElementType = "spinner"
)

// AllElementTypes lists every valid ElementType.
var AllElementTypes = []ElementType{
	TypeButton, TypeText, TypeHeading, TypeInput, TypeTextarea, TypeSelect,
	TypeCheckbox, TypeRadio, TypeSwitch, TypeCard, TypeImage, TypeContainer,
	TypeNavigation, TypeForm, TypeBadge, TypeAlert, TypeTooltip, TypeModal,
	TypeDivider, TypeBreadcrumb, TypeStepper, TypeTabs, TypeAccordion,
	TypeMenu, TypeAvatar, TypeIcon, TypeLink, TypeList, TypeTable,
	TypeProgress, TypeSpinner,
}

var validElementTypes = func() map[ElementType]struct{} {
	m := make(map[ElementType]struct{}, len(AllElementTypes))
	for _, t := range AllElementTypes {
		m[t] = struct{}{}
	}
	return m
}()

// Valid reports whether t is one of the closed element types.
func (t ElementType) Valid() bool {
	_, ok := validElementTypes[t]
	return ok
}

// ElementColors holds the color roles attached to an element. The
// heuristic path fills Background only; the remaining roles exist for
// substitute producers.
type ElementColors struct {
	Background *imaging.Color `json:"background,omitempty"`
	Text       *imaging.Color `json:"text,omitempty"`
	Border     *imaging.Color `json:"border,omitempty"`
	Hover      *imaging.Color `json:"hover,omitempty"`
	Focus      *imaging.Color `json:"focus,omitempty"`
	Gradient   string         `json:"gradient,omitempty"`
}

// DetectedElement is one classified UI element. Elements are created once
// by the classifier and immutable afterwards.
type DetectedElement struct {
	Type   ElementType `json:"type"`
	Bounds Rectangle   `json:"bounds"`

	// Colors is optional; heuristic classification sets Background.
	Colors *ElementColors `json:"colors,omitempty"`

	// Content is extracted text. Always empty on the heuristic path;
	// text recognition belongs to substitute producers.
	Content string `json:"content,omitempty"`

	// Confidence is a heuristic certainty in [0,1], not a calibrated
	// probability.
	Confidence float64 `json:"confidence"`

	// Optional enrichment fields, populated only by substitute producers.
	Styling        map[string]string `json:"styling,omitempty"`
	Variant        string            `json:"variant,omitempty"`
	Size           string            `json:"size,omitempty"`
	State          string            `json:"state,omitempty"`
	FormProperties map[string]any    `json:"formProperties,omitempty"`
	Accessibility  map[string]string `json:"accessibility,omitempty"`
}

package builder

// Op identifies one edit operation on the in-progress structure.
type Op string

const (
	// Shared fields
	OpSetContent Op = "set_content"
	OpSetImage   Op = "set_image"

	// True/false
	OpSetTrueFalse Op = "set_true_false"

	// Choice lists (QCM_S, QRM, QCM_PA via Side)
	OpAddOption    Op = "add_option"
	OpUpdateOption Op = "update_option"
	OpRemoveOption Op = "remove_option"

	// Paired assertions
	OpSetAssertionA Op = "set_assertion_a"
	OpSetAssertionB Op = "set_assertion_b"
	OpSetRelation   Op = "set_relation"

	// Matching
	OpAddPair    Op = "add_pair"
	OpUpdatePair Op = "update_pair"
	OpRemovePair Op = "remove_pair"

	// Ordering
	OpAddItem    Op = "add_item"
	OpUpdateItem Op = "update_item"
	OpRemoveItem Op = "remove_item"
	OpMoveItem   Op = "move_item"

	// Fill-in-blank
	OpSetBlankText   Op = "set_blank_text"
	OpSetBlankAnswer Op = "set_blank_answer"

	// Grid
	OpSetGridSize        Op = "set_grid_size"
	OpSetRowHeader       Op = "set_row_header"
	OpSetColHeader       Op = "set_col_header"
	OpToggleIntersection Op = "toggle_intersection"
)

// Column selectors for paired-activity option edits.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Action is one reducer input. Which fields are meaningful depends on
// Op; pointer fields distinguish "leave unchanged" from an explicit
// empty value on update operations.
type Action struct {
	Op      Op      `json:"op" validate:"required"`
	Text    *string `json:"text,omitempty"`
	Image   *string `json:"image,omitempty"`
	Checked *bool   `json:"checked,omitempty"`
	Left    *string `json:"left,omitempty"`
	Right   *string `json:"right,omitempty"`
	Side    string  `json:"side,omitempty" validate:"omitempty,oneof=left right"`
	Index   int     `json:"index,omitempty"`
	From    int     `json:"from,omitempty"`
	To      int     `json:"to,omitempty"`
	Value   int     `json:"value,omitempty"`
	Rows    int     `json:"rows,omitempty"`
	Cols    int     `json:"cols,omitempty"`
	Row     int     `json:"row,omitempty"`
	Col     int     `json:"col,omitempty"`
}

func (a Action) text() string {
	if a.Text == nil {
		return ""
	}
	return *a.Text
}

func (a Action) checked() bool {
	return a.Checked != nil && *a.Checked
}

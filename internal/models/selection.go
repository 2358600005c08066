package models

// Selection is the (machine, state) pair chosen in the side panel.
type Selection struct {
	Machine string `json:"machine" msgpack:"machine" query:"machine"`
	State   string `json:"state" msgpack:"state" query:"state"`
}

// FilterOptions lists the values offered by the two selection controls,
// in order of first appearance in the source.
type FilterOptions struct {
	Machines []string `json:"machines" msgpack:"machines"`
	States   []string `json:"states" msgpack:"states"`
}

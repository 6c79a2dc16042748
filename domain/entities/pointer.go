package entities

// PointerEvent is a single pointer-move sample in viewport coordinates
type PointerEvent struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
}

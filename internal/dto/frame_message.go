package dto

// FrameMessage is pushed to browser viewers over the websocket.
type FrameMessage struct {
	Title string `json:"title"`
	Image string `json:"image"` // base64 JPEG
}

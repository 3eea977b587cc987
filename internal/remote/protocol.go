// Package remote provides the client, server and protocol types for
// controlling a running slideshow over a Unix socket using NDJSON.
package remote

import "github.com/jwulff/slider/internal/session"

// Command names understood by the server.
const (
	CmdNext      = "next"
	CmdPrev      = "prev"
	CmdShow      = "show"
	CmdPause     = "pause"
	CmdResume    = "resume"
	CmdStatus    = "status"
	CmdSubscribe = "subscribe"
)

// EventSlide is the only streamed event kind.
const EventSlide = "slide"

// Command is sent from a client to the server.
type Command struct {
	Cmd   string `json:"cmd"`
	Index *int   `json:"index,omitempty"`
}

// Response is returned by the server after processing a command.
type Response struct {
	OK          bool   `json:"ok"`
	Cursor      *int   `json:"cursor,omitempty"`
	Total       *int   `json:"total,omitempty"`
	AutoAdvance *bool  `json:"autoAdvance,omitempty"`
	Title       string `json:"title,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Event is streamed from the server to subscribed clients.
type Event struct {
	Event       string `json:"event"`
	Cursor      *int   `json:"cursor,omitempty"`
	Total       *int   `json:"total,omitempty"`
	AutoAdvance *bool  `json:"autoAdvance,omitempty"`
	Title       string `json:"title,omitempty"`
}

// IntPtr returns a pointer to an int value. Convenience for building commands.
func IntPtr(i int) *int { return &i }

// BoolPtr returns a pointer to a bool value.
func BoolPtr(b bool) *bool { return &b }

func responseFromState(st session.State) Response {
	return Response{
		OK:          true,
		Cursor:      IntPtr(st.Cursor),
		Total:       IntPtr(st.Total),
		AutoAdvance: BoolPtr(st.AutoAdvance),
		Title:       st.Title(),
	}
}

func eventFromState(st session.State) Event {
	return Event{
		Event:       EventSlide,
		Cursor:      IntPtr(st.Cursor),
		Total:       IntPtr(st.Total),
		AutoAdvance: BoolPtr(st.AutoAdvance),
		Title:       st.Title(),
	}
}

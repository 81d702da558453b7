/*
Package server implements msgpack IPC for the voter search service.

Clients write msgpack-encoded requests to the server's stdin and read one
msgpack-encoded response per request from its stdout. Logs go to stderr.
On start the server writes a single ready message:

	{"status": "ready"}

# Requests

Every request carries an optional ID, echoed back in the response (one is
generated when missing), and an action. An empty action means search.

	{"id": "req_001", "action": "search", "q": "Yadav Shivaraj", "m": "name"}
	{"id": "req_002", "action": "complete", "q": "shi", "l": 5}
	{"id": "req_003", "action": "info"}
	{"id": "req_004", "action": "health"}

The mode field "m" takes id, name or all. Anything else searches all fields.

# Responses

A search returns the matching records in roll order with their count and
the time taken in microseconds:

	{"id": "req_001", "v": [{"id": "41235", "e_first_name": "Shivaraj", ...}], "c": 1, "t": 212}

Failures use a short error message and an HTTP-like code: 400 for an empty
query or a bad request, 503 while the roll is still loading, 500 otherwise.

	{"id": "req_001", "e": "Please enter a search term", "c": 400}
*/
package server

import (
	"time"

	"github.com/bastiangx/votersearch/pkg/suggest"
	"github.com/bastiangx/votersearch/pkg/voter"
)

// Actions understood by the server.
const (
	ActionSearch   = "search"
	ActionComplete = "complete"
	ActionInfo     = "info"
	ActionHealth   = "health"
)

// Request is any client message
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Query  string `msgpack:"q"`
	Mode   string `msgpack:"m,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// SearchResponse - search results
type SearchResponse struct {
	ID        string         `msgpack:"id"`
	Voters    []voter.Record `msgpack:"v"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
}

// CompletionResponse - name completions
type CompletionResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []suggest.Suggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// InfoResponse - state of the loaded roll
type InfoResponse struct {
	ID       string    `msgpack:"id"`
	Status   string    `msgpack:"status"`
	Records  int       `msgpack:"records"`
	Source   string    `msgpack:"source,omitempty"`
	LoadedAt time.Time `msgpack:"loaded_at,omitempty"`
}

// StatusResponse is sent on start and for health checks
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

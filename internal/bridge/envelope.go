package bridge

import "encoding/json"

// Mode reports which side served an operation.
type Mode string

const (
	ModeReal      Mode = "real"
	ModeSimulated Mode = "simulated"
)

// Response is the uniform result shape of every bridge operation. Data is
// populated only on success; Error carries a short human-readable message
// on failure. The console layer depends on nothing else.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error"`
	Mode    Mode   `json:"mode"`
}

// MarshalJSON keeps the wire contract exact: always the same four fields,
// with error serialized as null rather than "" when the call succeeded.
func (r Response) MarshalJSON() ([]byte, error) {
	var errMsg *string
	if r.Error != "" {
		errMsg = &r.Error
	}
	return json.Marshal(struct {
		Success bool    `json:"success"`
		Data    any     `json:"data"`
		Error   *string `json:"error"`
		Mode    Mode    `json:"mode"`
	}{r.Success, r.Data, errMsg, r.Mode})
}

func succeed(mode Mode, data any) Response {
	return Response{Success: true, Data: data, Mode: mode}
}

func failure(mode Mode, err error) Response {
	return Response{Success: false, Error: err.Error(), Mode: mode}
}

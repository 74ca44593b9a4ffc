package server

// message is a server to client frame.
type message struct {
	Patches []wirePatch `json:"patches,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// wirePatch is the JSON form of a vdom.Patch.
type wirePatch struct {
	Op     string `json:"op"`
	HID    string `json:"hid,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value"`
	HTML   string `json:"html,omitempty"`
	Index  int    `json:"index"`
	Parent string `json:"parent,omitempty"`
}

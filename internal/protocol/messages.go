package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerName      string `json:"player_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	SessionID       string         `json:"session_id"`
	Catalogs        CatalogDigests `json:"catalogs"`
	Blueprints      []BlueprintRef `json:"blueprints"`
}

type CatalogDigests struct {
	BlockPalette     DigestRef `json:"block_palette"`
	BlueprintsDigest string    `json:"blueprints_digest"`
}

type DigestRef struct {
	Digest string `json:"digest"`
	Count  int    `json:"count"`
}

type BlueprintRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Origin     string `json:"origin"`
	Blocks     int    `json:"blocks"`
}

// CMD (client -> server): one engine or inventory operation.
type CmdMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Op              string `json:"op"`

	BlueprintID string `json:"blueprint_id,omitempty"`
	Force       bool   `json:"force,omitempty"`

	// AWARD / REMOVE.
	TypeID string `json:"type_id,omitempty"`
	Count  int    `json:"count,omitempty"`

	// IMPORT_SCHEMATIC: base64 file content plus catalog metadata.
	Filename    string `json:"filename,omitempty"`
	Data        string `json:"data,omitempty"`
	Name        string `json:"name,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Description string `json:"description,omitempty"`
}

// RESULT (server -> client): the answer to one CMD.
type ResultMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	OK              bool   `json:"ok"`
	Code            string `json:"code,omitempty"`
	Message         string `json:"message,omitempty"`

	State      *StateMsg      `json:"state,omitempty"`
	CanBuild   *bool          `json:"can_build,omitempty"`
	Inventory  map[string]int `json:"inventory,omitempty"`
	Blueprints []BlueprintRef `json:"blueprints,omitempty"`
	ImportedID string         `json:"imported_id,omitempty"`
}

// StateMsg is the wire form of a reconciliation state snapshot.
type StateMsg struct {
	BlueprintID         string     `json:"blueprint_id"`
	Completed           []BlockRef `json:"completed"`
	Remaining           []BlockRef `json:"remaining"`
	Progress            float64    `json:"progress"`
	IsComplete          bool       `json:"is_complete"`
	IsPermanentlyPlaced bool       `json:"is_permanently_placed"`
}

type BlockRef struct {
	Block string `json:"block"`
	Pos   [3]int `json:"pos"`
}

// EVENT (server -> client): an engine notification push.
type EventMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Event           Event  `json:"event"`
}

// Event is a loosely typed notification payload.
type Event map[string]interface{}

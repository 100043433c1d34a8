package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello   = "HELLO"
	TypeWelcome = "WELCOME"
	TypeCmd     = "CMD"
	TypeResult  = "RESULT"
	TypeEvent   = "EVENT"
)

// Command ops carried by CMD messages.
const (
	OpSetBlueprint    = "SET_BLUEPRINT"
	OpGetState        = "GET_STATE"
	OpCanBuild        = "CAN_BUILD"
	OpBuild           = "BUILD"
	OpAward           = "AWARD"
	OpRemove          = "REMOVE"
	OpImportSchematic = "IMPORT_SCHEMATIC"
	OpListBlueprints  = "LIST_BLUEPRINTS"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

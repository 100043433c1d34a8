package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Command layer.
	ErrBadRequest       = "E_BAD_REQUEST"
	ErrUnknownBlueprint = "E_UNKNOWN_BLUEPRINT"
	ErrInvalidBlueprint = "E_INVALID_BLUEPRINT"
	ErrIncomplete       = "E_INCOMPLETE"
	ErrNoResource       = "E_NO_RESOURCE"
	ErrConflict         = "E_CONFLICT"
	ErrInternal         = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest:  {},
	ErrBadRequest:       {},
	ErrUnknownBlueprint: {},
	ErrInvalidBlueprint: {},
	ErrIncomplete:       {},
	ErrNoResource:       {},
	ErrConflict:         {},
	ErrInternal:         {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

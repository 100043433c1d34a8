// Package ws exposes builder sessions over a websocket connection: one
// HELLO/WELCOME handshake, then CMD/RESULT pairs with EVENT pushes.
package ws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"blockquest.dev/internal/blocks"
	"blockquest.dev/internal/blueprint"
	"blockquest.dev/internal/inventory"
	"blockquest.dev/internal/persistence/blueprintdb"
	"blockquest.dev/internal/protocol"
	"blockquest.dev/internal/reconcile"
	"blockquest.dev/internal/schematic"
)

// Deps carries the shared collaborators every session uses.
type Deps struct {
	Palette  *blocks.Palette
	Resolver *blocks.Resolver
	Catalog  *blueprint.Catalog
	Inv      *inventory.Memory
	Store    *blueprintdb.Store // optional
	Sink     reconcile.BuildSink
	Engine   reconcile.Config
	Log      *log.Logger

	MaxImportBytes int
}

type Server struct {
	deps Deps

	upgrader websocket.Upgrader

	mu      sync.Mutex
	engines map[string]*reconcile.Engine
}

func NewServer(deps Deps, readBuf, writeBuf int) *Server {
	s := &Server{
		deps:    deps,
		engines: map[string]*reconcile.Engine{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBuf,
			WriteBufferSize: writeBuf,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	// Inventory mutations fan out to every live session.
	deps.Inv.SetOnChange(s.broadcastInventoryChanged)
	return s
}

func (s *Server) broadcastInventoryChanged() {
	s.mu.Lock()
	engines := make([]*reconcile.Engine, 0, len(s.engines))
	for _, e := range s.engines {
		engines = append(engines, e)
	}
	s.mu.Unlock()
	for _, e := range engines {
		e.NotifyInventoryChanged()
	}
}

func (s *Server) register(e *reconcile.Engine) {
	s.mu.Lock()
	s.engines[e.SessionID()] = e
	s.mu.Unlock()
}

func (s *Server) unregister(e *reconcile.Engine) {
	s.mu.Lock()
	delete(s.engines, e.SessionID())
	s.mu.Unlock()
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		eng, out, ok := s.handshake(conn)
		if !ok {
			return
		}
		s.register(eng)
		defer func() {
			s.unregister(eng)
			eng.Close()
		}()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil || base.Type != protocol.TypeCmd {
				continue
			}
			var cmd protocol.CmdMsg
			if err := json.Unmarshal(msg, &cmd); err != nil {
				continue
			}
			if cmd.ProtocolVersion != protocol.Version {
				continue
			}
			res := s.handle(eng, cmd)
			send(out, res)
		}
	}
}

func (s *Server) handshake(conn *websocket.Conn) (*reconcile.Engine, chan []byte, bool) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, nil, false
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return nil, nil, false
	}
	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return nil, nil, false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return nil, nil, false
	}

	out := make(chan []byte, 32)

	eng := reconcile.New(s.deps.Catalog, s.deps.Inv, s.deps.Engine)
	eng.SetLogger(s.deps.Log)
	if s.deps.Sink != nil {
		eng.SetBuildSink(s.deps.Sink)
	}
	eng.Subscribe(func(ev reconcile.Event) {
		b, err := json.Marshal(protocol.EventMsg{
			Type:            protocol.TypeEvent,
			ProtocolVersion: protocol.Version,
			Event:           wireEvent(ev),
		})
		if err != nil {
			return
		}
		send(out, b)
	})

	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       eng.SessionID(),
		Catalogs: protocol.CatalogDigests{
			BlockPalette: protocol.DigestRef{
				Digest: s.deps.Palette.Digest(),
				Count:  s.deps.Palette.Size(),
			},
			BlueprintsDigest: s.deps.Catalog.Digest(),
		},
		Blueprints: s.blueprintRefs(),
	}
	b, _ := json.Marshal(welcome)
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return nil, nil, false
	}
	return eng, out, true
}

func (s *Server) handle(eng *reconcile.Engine, cmd protocol.CmdMsg) []byte {
	res := protocol.ResultMsg{
		Type:            protocol.TypeResult,
		ProtocolVersion: protocol.Version,
		ReqID:           cmd.ReqID,
	}

	switch cmd.Op {
	case protocol.OpSetBlueprint:
		if eng.SetBlueprint(cmd.BlueprintID) {
			res.OK = true
			res.State = stateMsg(eng.GetState())
		} else {
			res.Code = protocol.ErrUnknownBlueprint
			res.Message = "unknown or invalid blueprint"
		}

	case protocol.OpGetState:
		res.OK = true
		res.State = stateMsg(eng.GetState())
		res.Inventory = s.deps.Inv.Counts()

	case protocol.OpCanBuild:
		ok := eng.CanBuild(cmd.BlueprintID)
		res.OK = true
		res.CanBuild = &ok

	case protocol.OpBuild:
		if eng.Build(cmd.Force) {
			res.OK = true
			res.State = stateMsg(eng.GetState())
		} else {
			res.Code = protocol.ErrIncomplete
			res.Message = "structure not buildable"
		}

	case protocol.OpAward:
		if !s.deps.Palette.Has(cmd.TypeID) || cmd.TypeID == blocks.Air {
			res.Code = protocol.ErrBadRequest
			res.Message = "unknown block type"
			break
		}
		n := cmd.Count
		if n <= 0 {
			n = 1
		}
		s.deps.Inv.Award(cmd.TypeID, n)
		res.OK = true
		res.Inventory = s.deps.Inv.Counts()

	case protocol.OpRemove:
		if !s.deps.Palette.Has(cmd.TypeID) || cmd.TypeID == blocks.Air {
			res.Code = protocol.ErrBadRequest
			res.Message = "unknown block type"
			break
		}
		n := cmd.Count
		if n <= 0 {
			n = 1
		}
		s.deps.Inv.Remove(cmd.TypeID, n)
		res.OK = true
		res.Inventory = s.deps.Inv.Counts()

	case protocol.OpImportSchematic:
		id, code, msg := s.importSchematic(cmd)
		if code != "" {
			res.Code = code
			res.Message = msg
			break
		}
		res.OK = true
		res.ImportedID = id

	case protocol.OpListBlueprints:
		res.OK = true
		res.Blueprints = s.blueprintRefs()

	default:
		res.Code = protocol.ErrBadRequest
		res.Message = "unknown op"
	}
	b, _ := json.Marshal(res)
	return b
}

// importSchematic decodes an uploaded file and registers it as an imported
// blueprint. The decoder is total, so the only failure modes are transport
// ones (payload size, base64) and catalog conflicts.
func (s *Server) importSchematic(cmd protocol.CmdMsg) (id, code, msg string) {
	raw, err := base64.StdEncoding.DecodeString(cmd.Data)
	if err != nil {
		return "", protocol.ErrBadRequest, "bad base64 payload"
	}
	if s.deps.MaxImportBytes > 0 && len(raw) > s.deps.MaxImportBytes {
		return "", protocol.ErrBadRequest, "payload too large"
	}

	meta := blueprint.Meta{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(cmd.Name),
		Difficulty:  blueprint.Difficulty(cmd.Difficulty),
		Description: cmd.Description,
		Origin:      blueprint.Imported,
	}
	if meta.Name == "" {
		meta.Name = cmd.Filename
	}
	if meta.Name == "" {
		meta.Name = "Imported Structure"
	}
	if !meta.Difficulty.Valid() {
		meta.Difficulty = blueprint.Medium
	}

	var bp *blueprint.Blueprint
	if pblocks, size, err := schematic.DecodeStructure(raw, cmd.Filename); err == nil {
		bp, err = blueprint.FromStructure(pblocks, size, cmd.Filename, s.deps.Resolver, meta)
		if err != nil {
			return "", protocol.ErrInvalidBlueprint, err.Error()
		}
	} else {
		decoded := schematic.Decode(raw, cmd.Filename)
		bp, err = blueprint.FromRaw(decoded, s.deps.Resolver, meta)
		if err != nil {
			return "", protocol.ErrInvalidBlueprint, err.Error()
		}
	}

	if err := s.deps.Catalog.Add(bp); err != nil {
		return "", protocol.ErrConflict, err.Error()
	}
	if s.deps.Store != nil {
		s.deps.Store.Put(bp, cmd.Filename)
	}
	if s.deps.Log != nil {
		s.deps.Log.Printf("ws: imported blueprint %s (%d blocks) from %q", bp.ID, len(bp.Blocks), cmd.Filename)
	}
	return bp.ID, "", ""
}

func (s *Server) blueprintRefs() []protocol.BlueprintRef {
	all := s.deps.Catalog.All()
	refs := make([]protocol.BlueprintRef, 0, len(all))
	for _, bp := range all {
		refs = append(refs, protocol.BlueprintRef{
			ID:         bp.ID,
			Name:       bp.Name,
			Difficulty: string(bp.Difficulty),
			Origin:     string(bp.Origin),
			Blocks:     len(bp.Blocks),
		})
	}
	return refs
}

func stateMsg(st *reconcile.State) *protocol.StateMsg {
	if st == nil {
		return nil
	}
	out := &protocol.StateMsg{
		BlueprintID:         st.BlueprintID,
		Completed:           blockRefs(st.Completed),
		Remaining:           blockRefs(st.Remaining),
		Progress:            st.Progress,
		IsComplete:          st.IsComplete,
		IsPermanentlyPlaced: st.IsPermanentlyPlaced,
	}
	return out
}

func blockRefs(blks []blueprint.Block) []protocol.BlockRef {
	out := make([]protocol.BlockRef, 0, len(blks))
	for _, b := range blks {
		out = append(out, protocol.BlockRef{
			Block: b.TypeID,
			Pos:   [3]int{b.Pos.X, b.Pos.Y, b.Pos.Z},
		})
	}
	return out
}

func wireEvent(ev reconcile.Event) protocol.Event {
	out := protocol.Event{"type": string(ev.Type)}
	if ev.State != nil {
		out["state"] = stateMsg(ev.State)
	}
	if ev.Built != nil {
		out["blueprint_id"] = ev.Built.BlueprintID
		out["name"] = ev.Built.Name
		out["difficulty"] = string(ev.Built.Difficulty)
		out["position"] = [3]int{ev.Built.Position.X, ev.Built.Position.Y, ev.Built.Position.Z}
		out["blocks"] = blockRefs(ev.Built.Blocks)
	}
	return out
}

// send drops the frame when the client cannot keep up; state is
// re-queryable via GET_STATE.
func send(out chan []byte, b []byte) {
	select {
	case out <- b:
	default:
	}
}

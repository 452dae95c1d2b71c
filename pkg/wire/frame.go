package wire

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/hosttree"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Subprotocol names the frame format. Handler offers it during the
// websocket handshake.
const Subprotocol = "vtree.v1"

// Frame is one server-to-client message. The first frame of a session
// carries the full markup with node ids; later frames carry the ops of one
// flush. Checksum is the hosttree checksum after the frame is applied.
type Frame struct {
	Seq      uint64        `msgpack:"s"`
	HTML     string        `msgpack:"h,omitempty"`
	Ops      []hosttree.Op `msgpack:"o,omitempty"`
	Checksum uint64        `msgpack:"c"`
}

// Event is one client-to-server message: an event raised on a node.
type Event struct {
	Node   uint64         `msgpack:"n"`
	Type   string         `msgpack:"t"`
	Value  string         `msgpack:"v,omitempty"`
	Detail map[string]any `msgpack:"d,omitempty"`
}

// vdom converts the wire event to the event handed to listeners.
func (e *Event) vdom() *vdom.Event {
	return &vdom.Event{Type: e.Type, Value: e.Value, Detail: e.Detail}
}

// EncodeFrame serializes a frame.
func EncodeFrame(f *Frame) ([]byte, error) {
	return msgpack.Marshal(f)
}

// DecodeFrame deserializes a frame.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, errors.New("W001").Wrap(err)
	}
	return &f, nil
}

// EncodeEvent serializes an event.
func EncodeEvent(e *Event) ([]byte, error) {
	return msgpack.Marshal(e)
}

// DecodeEvent deserializes and validates an event.
func DecodeEvent(data []byte) (*Event, error) {
	var e Event
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, errors.New("W001").Wrap(err)
	}
	if e.Node == 0 || e.Type == "" {
		return nil, errors.New("W001").WithDetail("An event needs a node id and a type.")
	}
	return &e, nil
}

package editor

import "github.com/matzehuels/flowboard/pkg/workflow"

// Kind names an input event.
type Kind string

// Event kinds.
const (
	KindClick      Kind = "click"
	KindEnter      Kind = "enter"
	KindLeave      Kind = "leave"
	KindReset      Kind = "reset"
	KindLabel      Kind = "label"
	KindType       Kind = "type"
	KindDelete     Kind = "delete"
	KindCreate     Kind = "create"
	KindConnect    Kind = "connect"
	KindDisconnect Kind = "disconnect"
	KindMove       Kind = "move"
	KindPrune      Kind = "prune"
)

// Kinds lists every event kind in dispatch-table order.
var Kinds = []Kind{
	KindClick, KindEnter, KindLeave, KindReset, KindLabel, KindType,
	KindDelete, KindCreate, KindConnect, KindDisconnect, KindMove, KindPrune,
}

// Event is one discrete input. Which fields matter depends on Kind:
//
//	click       Node, or Position to hit-test; neither clears the selection
//	enter       Node, or Position to hit-test
//	leave       -
//	reset       -
//	label       Text
//	type        Type
//	delete      -
//	create      Type, optional Position (default: next palette slot), optional Text
//	connect     From, To
//	disconnect  From, To
//	move        Node, Position
//	prune       -
//
// The validate tags describe well-formed events for request validation.
// [Session.Apply] itself treats malformed events as no-ops.
type Event struct {
	Kind     Kind             `json:"kind" validate:"required,oneof=click enter leave reset label type delete create connect disconnect move prune"`
	Node     *workflow.NodeID `json:"node,omitempty" validate:"required_if=Kind move"`
	From     *workflow.NodeID `json:"from,omitempty" validate:"required_if=Kind connect,required_if=Kind disconnect"`
	To       *workflow.NodeID `json:"to,omitempty" validate:"required_if=Kind connect,required_if=Kind disconnect"`
	Text     *string          `json:"text,omitempty" validate:"required_if=Kind label"`
	Type     string           `json:"type,omitempty" validate:"required_if=Kind type,required_if=Kind create"`
	Position *workflow.Point  `json:"position,omitempty" validate:"required_if=Kind move"`
}

// Result reports what an event did.
type Result struct {
	Kind       Kind                 `json:"kind"`
	Changed    bool                 `json:"changed"`
	Node       *workflow.Node       `json:"node,omitempty"`
	Connection *workflow.Connection `json:"connection,omitempty"`
	Pruned     int                  `json:"pruned,omitempty"`
}

// Click is a pointer click on node id.
func Click(id workflow.NodeID) Event { return Event{Kind: KindClick, Node: &id} }

// ClickAt is a pointer click at canvas coordinates.
func ClickAt(p workflow.Point) Event { return Event{Kind: KindClick, Position: &p} }

// Enter is the pointer entering node id.
func Enter(id workflow.NodeID) Event { return Event{Kind: KindEnter, Node: &id} }

// Leave is the pointer leaving the hovered node.
func Leave() Event { return Event{Kind: KindLeave} }

// Reset clears the selection.
func Reset() Event { return Event{Kind: KindReset} }

// SetLabel edits the selected node's label.
func SetLabel(text string) Event { return Event{Kind: KindLabel, Text: &text} }

// SetType edits the selected node's type.
func SetType(tag string) Event { return Event{Kind: KindType, Type: tag} }

// Delete removes the selected node.
func Delete() Event { return Event{Kind: KindDelete} }

// Create adds a node of type tag at p.
func Create(tag string, p workflow.Point) Event { return Event{Kind: KindCreate, Type: tag, Position: &p} }

// Connect links from to to.
func Connect(from, to workflow.NodeID) Event { return Event{Kind: KindConnect, From: &from, To: &to} }

// Disconnect removes one from→to connection.
func Disconnect(from, to workflow.NodeID) Event {
	return Event{Kind: KindDisconnect, From: &from, To: &to}
}

// Move repositions node id.
func Move(id workflow.NodeID, p workflow.Point) Event { return Event{Kind: KindMove, Node: &id, Position: &p} }

// Prune drops invalid connections.
func Prune() Event { return Event{Kind: KindPrune} }

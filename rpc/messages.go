// Package rpc exposes the search engine as a gRPC service and lets a
// remote engine take part in a match as an ai.Player.
package rpc

import (
	"github.com/golang/protobuf/proto"
)

// ChooseMoveRequest asks for a move in Position, written in the
// one-line form of notation.FormatPosition. Depth 0 selects the
// server's default.
type ChooseMoveRequest struct {
	Position             string   `protobuf:"bytes,1,opt,name=position,proto3" json:"position,omitempty"`
	Depth                int32    `protobuf:"varint,2,opt,name=depth,proto3" json:"depth,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *ChooseMoveRequest) Reset()         { *m = ChooseMoveRequest{} }
func (m *ChooseMoveRequest) String() string { return proto.CompactTextString(m) }
func (*ChooseMoveRequest) ProtoMessage()    {}

func (m *ChooseMoveRequest) GetPosition() string {
	if m != nil {
		return m.Position
	}
	return ""
}

func (m *ChooseMoveRequest) GetDepth() int32 {
	if m != nil {
		return m.Depth
	}
	return 0
}

type ChooseMoveResponse struct {
	Move                 string   `protobuf:"bytes,1,opt,name=move,proto3" json:"move,omitempty"`
	Value                float64  `protobuf:"fixed64,2,opt,name=value,proto3" json:"value,omitempty"`
	Evaluated            uint64   `protobuf:"varint,3,opt,name=evaluated,proto3" json:"evaluated,omitempty"`
	Depth                int32    `protobuf:"varint,4,opt,name=depth,proto3" json:"depth,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *ChooseMoveResponse) Reset()         { *m = ChooseMoveResponse{} }
func (m *ChooseMoveResponse) String() string { return proto.CompactTextString(m) }
func (*ChooseMoveResponse) ProtoMessage()    {}

func (m *ChooseMoveResponse) GetMove() string {
	if m != nil {
		return m.Move
	}
	return ""
}

func (m *ChooseMoveResponse) GetValue() float64 {
	if m != nil {
		return m.Value
	}
	return 0
}

func (m *ChooseMoveResponse) GetEvaluated() uint64 {
	if m != nil {
		return m.Evaluated
	}
	return 0
}

func (m *ChooseMoveResponse) GetDepth() int32 {
	if m != nil {
		return m.Depth
	}
	return 0
}

func init() {
	proto.RegisterType((*ChooseMoveRequest)(nil), "othello.ChooseMoveRequest")
	proto.RegisterType((*ChooseMoveResponse)(nil), "othello.ChooseMoveResponse")
}

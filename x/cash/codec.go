package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
)

// Balance is the set of coins owned by a single address.
type Balance struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

// Configuration of the cash extension.
type Configuration struct {
	// NativeTicker is the currency used when a transfer does not name an
	// asset explicitly.
	NativeTicker string `protobuf:"bytes,1,opt,name=native_ticker,json=nativeTicker,proto3" json:"native_ticker,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// SendMsg moves coins from one account to another.
type SendMsg struct {
	Source      quorum.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/iov-one/quorum.Address" json:"source,omitempty"`
	Destination quorum.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/quorum.Address" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is an optional human readable message.
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

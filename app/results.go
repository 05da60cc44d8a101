package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ResultSet is the protobuf list a query response carries in its Key
// and Value fields.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func encodeResults(models []quorum.Model) (keys, values []byte, err error) {
	var k, v ResultSet
	for _, m := range models {
		k.Results = append(k.Results, m.Key)
		v.Results = append(v.Results, m.Value)
	}
	if keys, err = proto.Marshal(&k); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrModel, "keys: %s", err)
	}
	if values, err = proto.Marshal(&v); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrModel, "values: %s", err)
	}
	return keys, values, nil
}

// JoinResults pairs the keys and values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]quorum.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]quorum.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = quorum.Model{Key: k, Value: values.Results[i]}
	}
	return models, nil
}

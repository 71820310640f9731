package tx

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/types"
)

const (
	// RawTransactionSalt domain separates transaction signing messages.
	RawTransactionSalt = "APTOS::RawTransaction"
	// TransactionSalt domain separates transaction hashes.
	TransactionSalt = "APTOS::Transaction"
)

// ChainID identifies the chain a transaction is valid on.
type ChainID uint8

var (
	rawTransactionPrefix = types.Sha3Hash([]byte(RawTransactionSalt))
	transactionPrefix    = types.Sha3Hash([]byte(TransactionSalt))
)

var (
	_ bcs.Marshaler   = RawTransaction{}
	_ bcs.Unmarshaler = (*RawTransaction)(nil)
)

// RawTransaction is the unsigned transaction. Its BCS encoding, prefixed by the
// hashed salt, is the message every authenticator signs.
type RawTransaction struct {
	Sender                  types.AccountAddress
	SequenceNumber          uint64
	Payload                 TransactionPayload
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 ChainID
}

func (raw RawTransaction) MarshalBCS(s *bcs.Serializer) error {
	if raw.Payload == nil {
		return errorsmod.Wrap(ErrInvalidPayload, "empty payload")
	}

	if err := raw.Sender.MarshalBCS(s); err != nil {
		return err
	}
	if err := s.SerializeU64(raw.SequenceNumber); err != nil {
		return err
	}
	if err := s.Serialize(raw.Payload); err != nil {
		return err
	}
	if err := s.SerializeU64(raw.MaxGasAmount); err != nil {
		return err
	}
	if err := s.SerializeU64(raw.GasUnitPrice); err != nil {
		return err
	}
	if err := s.SerializeU64(raw.ExpirationTimestampSecs); err != nil {
		return err
	}

	return s.SerializeU8(uint8(raw.ChainID))
}

func (raw *RawTransaction) UnmarshalBCS(d *bcs.Deserializer) (err error) {
	if err = raw.Sender.UnmarshalBCS(d); err != nil {
		return err
	}
	if raw.SequenceNumber, err = d.DeserializeU64(); err != nil {
		return err
	}

	var payload payloadBox
	if err = d.Deserialize(&payload); err != nil {
		return err
	}
	raw.Payload = payload.TransactionPayload

	if raw.MaxGasAmount, err = d.DeserializeU64(); err != nil {
		return err
	}
	if raw.GasUnitPrice, err = d.DeserializeU64(); err != nil {
		return err
	}
	if raw.ExpirationTimestampSecs, err = d.DeserializeU64(); err != nil {
		return err
	}

	chainID, err := d.DeserializeU8()
	raw.ChainID = ChainID(chainID)
	return err
}

// Bytes returns the BCS encoding of the raw transaction.
func (raw RawTransaction) Bytes() ([]byte, error) {
	return bcs.Marshal(raw)
}

// SigningMessage returns sha3_256(RawTransactionSalt) | bcs(raw).
func (raw RawTransaction) SigningMessage() ([]byte, error) {
	bz, err := raw.Bytes()
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, len(rawTransactionPrefix)+len(bz))
	msg = append(msg, rawTransactionPrefix[:]...)
	return append(msg, bz...), nil
}

// BuildSigningMessage returns the exact byte string signers sign for raw.
func BuildSigningMessage(raw RawTransaction) ([]byte, error) {
	return raw.SigningMessage()
}

// DecodeRawTransaction decodes a BCS encoded raw transaction.
func DecodeRawTransaction(bz []byte) (RawTransaction, error) {
	var raw RawTransaction
	if err := bcs.Unmarshal(bz, &raw); err != nil {
		return RawTransaction{}, err
	}

	return raw, nil
}
